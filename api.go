package squeeze

import (
	"io"
)

// Kind is the declared type of an input file. It's derived from the file
// extension alone; file contents are never inspected.
type Kind string

const (
	KindText Kind = "text"
	KindJPEG Kind = "jpeg"
	KindPNG  Kind = "png"
)

// Compressor is the interface implemented by every codec's encoding side.
type Compressor interface {
	// Compress consumes the entire input and writes the encoded form to output.
	// The returned int64 gives the number of bytes written. If an error occurred
	// the value is undefined and should not be used, and anything already
	// written to output must be discarded.
	Compress(input io.Reader, output io.Writer) (int64, error)
}

// Expander is the inverse of [Compressor].
type Expander interface {
	Expand(input io.Reader, output io.Writer) (int64, error)
}

// FileCompressor compresses the file at inputPath into a new file at
// outputPath. It returns nothing on success beyond the written file.
type FileCompressor func(inputPath, outputPath string) error
