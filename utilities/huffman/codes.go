package huffman

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dargueta/squeeze"
)

// CodeTable maps each symbol to its code, a non-empty string of '0' and '1'
// characters. A table is only meaningful for the tree it was generated from.
type CodeTable map[Symbol]string

// GenerateCodes walks the tree rooted at `root` and returns the code of every
// leaf. A tree consisting of a single leaf gets the code "0".
func GenerateCodes(root *Node) CodeTable {
	table := make(CodeTable)
	if root == nil {
		return table
	}
	if root.IsLeaf() {
		table[root.Symbol] = "0"
		return table
	}

	var walk func(node *Node, path []byte)
	walk = func(node *Node, path []byte) {
		if node.IsLeaf() {
			table[node.Symbol] = string(path)
			return
		}
		// Left = 0, Right = 1
		walk(node.Left, append(path, '0'))
		walk(node.Right, append(path, '1'))
	}
	walk(root, make([]byte, 0, 32))
	return table
}

// Validate checks that every code is a non-empty string of '0' and '1', that no
// two symbols share a code, and that no code is a prefix of another.
func (table CodeTable) Validate() error {
	if len(table) == 0 {
		return squeeze.ErrInvalidCodeTable.WithMessage("table is empty")
	}

	codes := make([]string, 0, len(table))
	for symbol, code := range table {
		if code == "" {
			return squeeze.ErrInvalidCodeTable.WithMessage(
				fmt.Sprintf("symbol %q has an empty code", rune(symbol)))
		}
		if strings.Trim(code, "01") != "" {
			return squeeze.ErrInvalidCodeTable.WithMessage(
				fmt.Sprintf("code %q for symbol %q isn't binary", code, rune(symbol)))
		}
		codes = append(codes, code)
	}

	// After sorting, any code that's a prefix of another sorts directly before
	// some code it prefixes, so checking neighbors is enough.
	sort.Strings(codes)
	for i := 1; i < len(codes); i++ {
		if strings.HasPrefix(codes[i], codes[i-1]) {
			return squeeze.ErrInvalidCodeTable.WithMessage(
				fmt.Sprintf("code %q is a prefix of %q", codes[i-1], codes[i]))
		}
	}
	return nil
}

// Symbols returns the symbols in the table in ascending order.
func (table CodeTable) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(table))
	for symbol := range table {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
