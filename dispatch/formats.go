package dispatch

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dargueta/squeeze"
	"github.com/gocarina/gocsv"
)

// Format describes one accepted file extension.
type Format struct {
	Extension   string       `csv:"extension"`
	Kind        squeeze.Kind `csv:"kind"`
	Description string       `csv:"description"`
}

//go:embed formats.csv
var formatsRawCSV string
var formatsByExtension map[string]Format

// LookupExtension returns the format registered for a file extension. The
// extension may have a leading dot and is case-insensitive.
func LookupExtension(extension string) (Format, error) {
	key := strings.ToLower(strings.TrimPrefix(extension, "."))
	format, ok := formatsByExtension[key]
	if ok {
		return format, nil
	}
	return Format{}, squeeze.ErrUnsupportedKind.WithMessage(
		fmt.Sprintf("no format registered for extension %q", extension))
}

// KindForFilename derives the declared kind of a file from its extension. The
// file's contents are never looked at.
func KindForFilename(filename string) (squeeze.Kind, error) {
	extension := filepath.Ext(filename)
	if extension == "" {
		return "", squeeze.ErrUnsupportedKind.WithMessage(
			fmt.Sprintf("%q has no extension", filename))
	}

	format, err := LookupExtension(extension)
	if err != nil {
		return "", err
	}
	return format.Kind, nil
}

// Formats returns every registered format, sorted by extension.
func Formats() []Format {
	formats := make([]Format, 0, len(formatsByExtension))
	for _, format := range formatsByExtension {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool {
		return formats[i].Extension < formats[j].Extension
	})
	return formats
}

func init() {
	csvReader := csv.NewReader(strings.NewReader(formatsRawCSV))
	csvReader.Comma = '|'

	var rows []Format
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		panic(fmt.Errorf("failed to decode format table: %w", err))
	}

	formatsByExtension = make(map[string]Format, len(rows))
	for i, row := range rows {
		if _, exists := formatsByExtension[row.Extension]; exists {
			message := fmt.Errorf(
				"duplicate definition for extension %q found on row %d", row.Extension, i+1)
			panic(message)
		}
		if _, exists := handlersByKind[row.Kind]; !exists {
			panic(fmt.Errorf("extension %q on row %d has unknown kind %q", row.Extension, i+1, row.Kind))
		}
		formatsByExtension[row.Extension] = row
	}
}
