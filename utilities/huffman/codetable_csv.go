package huffman

import (
	"fmt"
	"io"

	"github.com/dargueta/squeeze"
	"github.com/gocarina/gocsv"
)

// CodeTableFileSuffix is appended to an output path to get the path of its code
// table.
const CodeTableFileSuffix = ".codes.csv"

// codeTableRow is one line of a code table file. The symbol is stored as a
// decimal code point so that control characters, quotes and line breaks don't
// need escaping.
type codeTableRow struct {
	Symbol int32  `csv:"symbol"`
	Code   string `csv:"code"`
}

// WriteCodeTable writes `table` as CSV, one row per symbol in ascending order.
func WriteCodeTable(w io.Writer, table CodeTable) error {
	rows := make([]*codeTableRow, 0, len(table))
	for _, symbol := range table.Symbols() {
		rows = append(rows, &codeTableRow{Symbol: int32(symbol), Code: table[symbol]})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return squeeze.ErrIOFailed.Wrap(err)
	}
	return nil
}

// ReadCodeTable reads a table written by [WriteCodeTable] and validates it.
func ReadCodeTable(r io.Reader) (CodeTable, error) {
	var rows []*codeTableRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, squeeze.ErrInvalidCodeTable.Wrap(err)
	}

	table := make(CodeTable, len(rows))
	for i, row := range rows {
		symbol := Symbol(row.Symbol)
		if _, exists := table[symbol]; exists {
			return nil, squeeze.ErrInvalidCodeTable.WithMessage(
				fmt.Sprintf("duplicate definition for symbol %d found on row %d", row.Symbol, i+1))
		}
		table[symbol] = row.Code
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
