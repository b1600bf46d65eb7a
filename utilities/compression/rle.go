package compression

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/dargueta/squeeze"
	"golang.org/x/text/encoding/charmap"
)

// CompressRLE reads bytes from the input and writes run-length encoded data to
// the output until the input is exhausted. The return value is the number of
// bytes written, only valid if no error occurred.
//
// An empty input fails with [squeeze.ErrEmptyInput]; nothing is written.
func CompressRLE(input io.Reader, output io.Writer) (int64, error) {
	grouper := NewRunLengthGrouper(input)
	encoder := charmap.ISO8859_1.NewEncoder()
	writer := bufio.NewWriter(output)

	token := make([]byte, 0, 24)
	totalBytesWritten := int64(0)
	totalRuns := 0
	for {
		run, err := grouper.GetNextRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
		}
		totalRuns++

		token = utf8.AppendRune(token[:0], run.Symbol)
		token = strconv.AppendInt(token, int64(run.RunLength), 10)
		encoded, err := encoder.Bytes(token)
		if err != nil {
			// Can't happen, every symbol came from a single byte.
			return totalBytesWritten, squeeze.ErrInvalidEncoding.Wrap(err)
		}

		n, err := writer.Write(encoded)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
		}
	}

	if totalRuns == 0 {
		return 0, squeeze.ErrEmptyInput
	}
	if err := writer.Flush(); err != nil {
		return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
	}
	return totalBytesWritten, nil
}

// DecompressRLE is the inverse of [CompressRLE]. Run lengths are read greedily,
// so a run whose symbol is an ASCII digit is merged into the length before it.
func DecompressRLE(input io.Reader, output io.Writer) (int64, error) {
	return DecompressRLEWithLimit(input, output, 0)
}

// DecompressRLEWithLimit is like [DecompressRLE] but fails with
// [squeeze.ErrInvalidEncoding] before writing a run that would take the output
// past maxOutputSize bytes. A maxOutputSize of zero or less means no limit.
func DecompressRLEWithLimit(
	input io.Reader, output io.Writer, maxOutputSize int64,
) (int64, error) {
	source := bufio.NewReader(charmap.ISO8859_1.NewDecoder().Reader(input))
	writer := bufio.NewWriter(output)

	digits := make([]byte, 0, 20)
	offset := 0
	totalBytesWritten := int64(0)
	for {
		symbol, _, err := source.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
		}
		symbolOffset := offset
		offset++

		digits = digits[:0]
		for {
			r, _, err := source.ReadRune()
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
			}
			if r < '0' || r > '9' {
				source.UnreadRune()
				break
			}
			digits = append(digits, byte(r))
			offset++
		}

		if len(digits) == 0 {
			return totalBytesWritten, squeeze.ErrInvalidEncoding.WithMessage(
				fmt.Sprintf("missing run length after symbol at offset %d", symbolOffset))
		}
		runLength, err := strconv.Atoi(string(digits))
		if err != nil || runLength < 1 {
			return totalBytesWritten, squeeze.ErrInvalidEncoding.WithMessage(
				fmt.Sprintf("invalid run length %q at offset %d", digits, symbolOffset+1))
		}

		if maxOutputSize > 0 && int64(runLength) > maxOutputSize-totalBytesWritten {
			writer.Flush()
			return totalBytesWritten, squeeze.ErrInvalidEncoding.WithMessage(
				fmt.Sprintf(
					"run of %d at offset %d exceeds the %d-byte output limit",
					runLength,
					symbolOffset,
					maxOutputSize))
		}

		// Every symbol maps back to exactly one byte.
		value := byte(symbol)
		for i := 0; i < runLength; i++ {
			if err = writer.WriteByte(value); err != nil {
				return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
			}
			totalBytesWritten++
		}
	}

	if offset == 0 {
		return 0, squeeze.ErrEmptyInput
	}
	if err := writer.Flush(); err != nil {
		return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
	}
	return totalBytesWritten, nil
}
