package compression

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// Run represents a single run of a particular symbol.
type Run struct {
	// Symbol is the character for this run. It's always between 0 and 255
	// inclusive, the code point of the input byte it was mapped from.
	Symbol rune
	// RunLength gives the number of times the symbol occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value less than 1
	// indicates either EOF was encountered, or an error occurred.
	RunLength int
}

// InvalidRun is returned by [RunLengthGrouper.GetNextRun] along with an error.
var InvalidRun = Run{Symbol: 0, RunLength: 0}

// RunLengthGrouper splits a byte stream into runs of identical symbols.
type RunLengthGrouper struct {
	rd *bufio.Reader
}

// NewRunLengthGrouper returns a grouper reading raw bytes from `rd`, decoding
// each byte to the character with the same code point.
func NewRunLengthGrouper(rd io.Reader) RunLengthGrouper {
	decoded := charmap.ISO8859_1.NewDecoder().Reader(rd)
	return RunLengthGrouper{rd: bufio.NewReader(decoded)}
}

// GetNextRun returns a [Run] for the next symbol or run of symbols in the
// stream. At the end of the stream it returns [InvalidRun] and [io.EOF].
func (grouper RunLengthGrouper) GetNextRun() (Run, error) {
	firstSymbol, _, err := grouper.rd.ReadRune()
	// Bail if any error occurred, including EOF.
	if err != nil {
		return InvalidRun, err
	}

	var runLength int
	for runLength = 1; ; runLength++ {
		currentSymbol, _, err := grouper.rd.ReadRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return InvalidRun, err
		}
		if currentSymbol != firstSymbol {
			// Hit a different symbol, back up and return.
			grouper.rd.UnreadRune()
			break
		}
	}
	return Run{Symbol: firstSymbol, RunLength: runLength}, nil
}
