package huffman

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dargueta/squeeze"
)

// Encode compresses a sequence of symbols and returns the bit string along with
// the code table used to produce it.
func Encode(symbols []Symbol) (string, CodeTable, error) {
	freqs, err := CountFrequencies(symbols)
	if err != nil {
		return "", nil, err
	}

	root, err := BuildTree(freqs)
	if err != nil {
		return "", nil, err
	}
	codes := GenerateCodes(root)

	totalBits := int64(0)
	for symbol, code := range codes {
		totalBits += freqs.Count(symbol) * int64(len(code))
	}

	var builder strings.Builder
	builder.Grow(int(totalBits))
	for _, symbol := range symbols {
		builder.WriteString(codes[symbol])
	}
	return builder.String(), codes, nil
}

// SymbolsFromText splits UTF-8 text into symbols. It fails with
// [squeeze.ErrInvalidEncoding] if the text isn't valid UTF-8.
func SymbolsFromText(text []byte) ([]Symbol, error) {
	if !utf8.Valid(text) {
		return nil, squeeze.ErrInvalidEncoding.WithMessage("input is not valid UTF-8 text")
	}

	symbols := make([]Symbol, 0, utf8.RuneCount(text))
	for _, r := range string(text) {
		symbols = append(symbols, Symbol(r))
	}
	return symbols, nil
}

// NormalizeNewlines converts "\r\n" and lone "\r" line endings to "\n", so a
// file gets the same codes whatever platform wrote it.
func NormalizeNewlines(text []byte) []byte {
	if bytes.IndexByte(text, '\r') < 0 {
		return text
	}
	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(text, []byte("\r"), []byte("\n"))
}

// Encoder is the Huffman [squeeze.Compressor]. It holds no state between calls,
// so one value can be shared by any number of goroutines.
type Encoder struct {
	// PackBits selects the packed output format produced by [PackBits] instead
	// of '0'/'1' text.
	PackBits bool
}

// Compress implements [squeeze.Compressor]. The code table is discarded.
func (e Encoder) Compress(input io.Reader, output io.Writer) (int64, error) {
	_, n, err := e.CompressWithTable(input, output)
	return n, err
}

// CompressWithTable reads all of `input` as UTF-8 text and writes its encoded
// form to `output`. It returns the code table needed to decode the output and
// the number of bytes written.
//
// Every failure, including an empty input, is returned as
// [squeeze.ErrCompressionFailed] wrapping the underlying error.
func (e Encoder) CompressWithTable(
	input io.Reader, output io.Writer,
) (CodeTable, int64, error) {
	codes, n, err := e.compress(input, output)
	if err != nil {
		return nil, n, squeeze.ErrCompressionFailed.WithMessage("huffman").Wrap(err)
	}
	return codes, n, nil
}

func (e Encoder) compress(input io.Reader, output io.Writer) (CodeTable, int64, error) {
	content, err := io.ReadAll(input)
	if err != nil {
		return nil, 0, squeeze.ErrIOFailed.Wrap(err)
	}
	if len(content) == 0 {
		return nil, 0, squeeze.ErrEmptyInput
	}

	symbols, err := SymbolsFromText(NormalizeNewlines(content))
	if err != nil {
		return nil, 0, err
	}

	bits, codes, err := Encode(symbols)
	if err != nil {
		return nil, 0, err
	}

	writer := bufio.NewWriter(output)
	var n int
	if e.PackBits {
		packed, packErr := PackBits(bits)
		if packErr != nil {
			return nil, 0, packErr
		}
		n, err = writer.Write(packed)
	} else {
		n, err = writer.WriteString(bits)
	}
	if err != nil {
		return nil, int64(n), squeeze.ErrIOFailed.Wrap(err)
	}
	if err = writer.Flush(); err != nil {
		return nil, int64(n), squeeze.ErrIOFailed.Wrap(err)
	}
	return codes, int64(n), nil
}
