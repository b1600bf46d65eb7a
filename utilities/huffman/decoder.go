package huffman

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dargueta/squeeze"
)

type decodeNode struct {
	children [2]*decodeNode
	symbol   Symbol
	isLeaf   bool
}

// buildDecodeTree rebuilds a binary tree from a validated code table.
func buildDecodeTree(table CodeTable) *decodeNode {
	root := &decodeNode{}
	for symbol, code := range table {
		node := root
		for i := 0; i < len(code); i++ {
			branch := code[i] - '0'
			if node.children[branch] == nil {
				node.children[branch] = &decodeNode{}
			}
			node = node.children[branch]
		}
		node.symbol = symbol
		node.isLeaf = true
	}
	return root
}

// DecodeBits maps a bit string produced by [Encode] back to the original symbols
// using the table produced alongside it.
//
// It fails with [squeeze.ErrInvalidEncoding] if the string contains anything
// other than '0' and '1', contains a path that isn't in the table, or ends in
// the middle of a code.
func DecodeBits(bits string, table CodeTable) ([]Symbol, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	root := buildDecodeTree(table)
	symbols := make([]Symbol, 0, len(bits)/2+1)
	node := root
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return nil, squeeze.ErrInvalidEncoding.WithMessage(
				fmt.Sprintf("invalid character %q at offset %d", bits[i], i))
		}

		node = node.children[bits[i]-'0']
		if node == nil {
			return nil, squeeze.ErrInvalidEncoding.WithMessage(
				fmt.Sprintf("no code matches the bits ending at offset %d", i))
		}
		if node.isLeaf {
			symbols = append(symbols, node.symbol)
			node = root
		}
	}

	if node != root {
		// Input ends in the middle of a code.
		return nil, squeeze.ErrInvalidEncoding.Wrap(io.ErrUnexpectedEOF)
	}
	return symbols, nil
}

// Decoder is the Huffman [squeeze.Expander]. It needs the code table written by
// the encoder for the same input.
type Decoder struct {
	Table CodeTable
	// PackedBits must match [Encoder.PackBits] of the encoder that produced the
	// input.
	PackedBits bool
}

// Expand implements [squeeze.Expander]. The output is UTF-8 text.
func (d Decoder) Expand(input io.Reader, output io.Writer) (int64, error) {
	content, err := io.ReadAll(input)
	if err != nil {
		return 0, squeeze.ErrIOFailed.Wrap(err)
	}

	var bits string
	if d.PackedBits {
		bits, err = UnpackBits(content)
		if err != nil {
			return 0, err
		}
	} else {
		bits = string(content)
	}

	if len(bits) == 0 {
		return 0, squeeze.ErrEmptyInput
	}

	symbols, err := DecodeBits(bits, d.Table)
	if err != nil {
		return 0, err
	}

	writer := bufio.NewWriter(output)
	totalBytesWritten := int64(0)
	for _, symbol := range symbols {
		n, err := writer.WriteRune(rune(symbol))
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
		}
	}
	if err = writer.Flush(); err != nil {
		return totalBytesWritten, squeeze.ErrIOFailed.Wrap(err)
	}
	return totalBytesWritten, nil
}
