package huffman

import (
	"github.com/dargueta/squeeze"
)

// Symbol is a single Unicode code point of the input text.
type Symbol rune

// FrequencyTable maps every symbol occurring in an input to the number of times
// it occurs. It also remembers the order in which symbols first appeared.
type FrequencyTable struct {
	counts map[Symbol]int64
	order  []Symbol
	total  int64
}

// CountFrequencies builds a [FrequencyTable] for the given symbols. It fails with
// [squeeze.ErrEmptyInput] if there are none.
func CountFrequencies(symbols []Symbol) (*FrequencyTable, error) {
	if len(symbols) == 0 {
		return nil, squeeze.ErrEmptyInput.WithMessage("nothing to count")
	}

	table := &FrequencyTable{counts: make(map[Symbol]int64)}
	for _, symbol := range symbols {
		if _, seen := table.counts[symbol]; !seen {
			table.order = append(table.order, symbol)
		}
		table.counts[symbol]++
	}
	table.total = int64(len(symbols))
	return table, nil
}

// Count returns the number of times `symbol` occurred, or 0 if it didn't.
func (t *FrequencyTable) Count(symbol Symbol) int64 {
	return t.counts[symbol]
}

// Len gives the number of distinct symbols.
func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// Total gives the sum of all counts, equal to the length of the input.
func (t *FrequencyTable) Total() int64 {
	return t.total
}

// Symbols returns the distinct symbols in the order they first appeared.
func (t *FrequencyTable) Symbols() []Symbol {
	symbols := make([]Symbol, len(t.order))
	copy(symbols, t.order)
	return symbols
}
