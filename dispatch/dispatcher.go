package dispatch

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dargueta/squeeze"
	"github.com/dargueta/squeeze/utilities/compression"
	"github.com/dargueta/squeeze/utilities/huffman"
)

// Dispatcher routes a file to the codec for its declared kind.
//
// A Dispatcher holds no state that changes between calls, so it may be used
// from several goroutines at once as long as no two calls share an output path.
type Dispatcher struct {
	// Options enables the optional Huffman artifacts. It has no effect on image
	// kinds.
	Options squeeze.Option
	// Logger receives one line per finished compression. If nil,
	// [log.Default] is used.
	Logger *log.Logger
	// MaxExpandedSize caps the size of a file written by [Dispatcher.Expand]
	// for image kinds. Zero means [DefaultMaxExpandedSize]; a negative value
	// removes the cap.
	MaxExpandedSize int64
}

// DefaultMaxExpandedSize is the expansion cap used when
// [Dispatcher.MaxExpandedSize] is zero.
const DefaultMaxExpandedSize = 1 << 30

type kindHandler struct {
	codecName string
	compress  func(d Dispatcher, inputPath, outputPath string) error
	expand    func(d Dispatcher, inputPath, outputPath, codeTablePath string) error
}

// handlersByKind is the dispatch table. JPEG and PNG deliberately share the same
// implementation; they're separate kinds only so callers can route by name.
var handlersByKind = map[squeeze.Kind]kindHandler{
	squeeze.KindText: {"huffman", Dispatcher.compressText, Dispatcher.expandText},
	squeeze.KindJPEG: {"rle", Dispatcher.compressImage, Dispatcher.expandImage},
	squeeze.KindPNG:  {"rle", Dispatcher.compressImage, Dispatcher.expandImage},
}

// HuffmanCompress compresses a text file with the baseline Huffman coder.
func HuffmanCompress(inputPath, outputPath string) error {
	return Dispatcher{}.Compress(squeeze.KindText, inputPath, outputPath)
}

// JPEGCompress run-length encodes a JPEG file.
func JPEGCompress(inputPath, outputPath string) error {
	return Dispatcher{}.Compress(squeeze.KindJPEG, inputPath, outputPath)
}

// PNGCompress run-length encodes a PNG file.
func PNGCompress(inputPath, outputPath string) error {
	return Dispatcher{}.Compress(squeeze.KindPNG, inputPath, outputPath)
}

var (
	_ squeeze.FileCompressor = HuffmanCompress
	_ squeeze.FileCompressor = JPEGCompress
	_ squeeze.FileCompressor = PNGCompress
)

// CodecName returns the name of the codec used for `kind`.
func CodecName(kind squeeze.Kind) (string, error) {
	handler, err := lookupHandler(kind)
	if err != nil {
		return "", err
	}
	return handler.codecName, nil
}

func lookupHandler(kind squeeze.Kind) (kindHandler, error) {
	handler, ok := handlersByKind[kind]
	if !ok {
		return kindHandler{}, squeeze.ErrUnsupportedKind.WithMessage(
			fmt.Sprintf("no codec for kind %q", kind))
	}
	return handler, nil
}

func (d Dispatcher) maxExpandedSize() int64 {
	if d.MaxExpandedSize == 0 {
		return DefaultMaxExpandedSize
	}
	return d.MaxExpandedSize
}

func (d Dispatcher) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

// Compress compresses the file at inputPath with the codec for `kind` and
// writes the result to outputPath.
//
// Any failure after the kind is resolved is returned as
// [squeeze.ErrCompressionFailed]. The output file is only created once the
// compressed data is complete, but a failed write can leave a partial file that
// must be discarded.
func (d Dispatcher) Compress(kind squeeze.Kind, inputPath, outputPath string) error {
	handler, err := lookupHandler(kind)
	if err != nil {
		return err
	}

	err = handler.compress(d, inputPath, outputPath)
	if err != nil {
		d.logger().Printf("%s compression failed: %s", kind, err.Error())
		return err
	}
	d.logger().Printf("%s compression completed: %s", kind, outputPath)
	return nil
}

// CompressFile is like [Dispatcher.Compress] but derives the kind from the input
// file's extension.
func (d Dispatcher) CompressFile(inputPath, outputPath string) error {
	kind, err := KindForFilename(inputPath)
	if err != nil {
		return err
	}
	return d.Compress(kind, inputPath, outputPath)
}

// Expand reverses [Dispatcher.Compress]. Text needs the code table written with
// [squeeze.OptionWriteCodeTable]; if codeTablePath is empty it's looked for next
// to the input. The dispatcher's [squeeze.OptionPackBits] must match the one
// used to compress.
func (d Dispatcher) Expand(kind squeeze.Kind, inputPath, outputPath, codeTablePath string) error {
	handler, err := lookupHandler(kind)
	if err != nil {
		return err
	}
	return handler.expand(d, inputPath, outputPath, codeTablePath)
}

////////////////////////////////////////////////////////////////////////////////
// Huffman

func (d Dispatcher) compressText(inputPath, outputPath string) error {
	failed := squeeze.ErrCompressionFailed.WithMessage("huffman")

	input, err := os.Open(inputPath)
	if err != nil {
		return failed.Wrap(squeeze.ErrIOFailed.Wrap(err))
	}
	defer input.Close()

	compressed := bytes.Buffer{}
	encoder := huffman.Encoder{PackBits: d.Options.Has(squeeze.OptionPackBits)}
	codes, _, err := encoder.CompressWithTable(input, &compressed)
	if err != nil {
		return err
	}

	if err = writeOutputFile(outputPath, compressed.Bytes()); err != nil {
		return failed.Wrap(err)
	}
	if d.Options.Has(squeeze.OptionWriteCodeTable) {
		if err = writeCodeTableFile(outputPath+huffman.CodeTableFileSuffix, codes); err != nil {
			return failed.Wrap(err)
		}
	}
	return nil
}

func (d Dispatcher) expandText(inputPath, outputPath, codeTablePath string) error {
	if codeTablePath == "" {
		codeTablePath = inputPath + huffman.CodeTableFileSuffix
	}
	codes, err := readCodeTableFile(codeTablePath)
	if err != nil {
		return err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return squeeze.ErrIOFailed.Wrap(err)
	}
	defer input.Close()

	decoder := huffman.Decoder{Table: codes, PackedBits: d.Options.Has(squeeze.OptionPackBits)}
	return streamOutputFile(outputPath, func(output io.Writer) error {
		_, err := decoder.Expand(input, output)
		return err
	})
}

func writeCodeTableFile(path string, codes huffman.CodeTable) error {
	file, err := os.Create(path)
	if err != nil {
		return squeeze.ErrIOFailed.Wrap(err)
	}
	defer file.Close()

	if err = huffman.WriteCodeTable(file, codes); err != nil {
		return err
	}
	if err = file.Close(); err != nil {
		return squeeze.ErrIOFailed.Wrap(err)
	}
	return nil
}

func readCodeTableFile(path string) (huffman.CodeTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, squeeze.ErrIOFailed.Wrap(err)
	}
	defer file.Close()
	return huffman.ReadCodeTable(file)
}

////////////////////////////////////////////////////////////////////////////////
// RLE

func (d Dispatcher) compressImage(inputPath, outputPath string) error {
	failed := squeeze.ErrCompressionFailed.WithMessage("rle")

	input, err := os.Open(inputPath)
	if err != nil {
		return failed.Wrap(squeeze.ErrIOFailed.Wrap(err))
	}
	defer input.Close()

	compressed := bytes.Buffer{}
	if _, err = compression.CompressImage(input, &compressed); err != nil {
		return err
	}

	if err = writeOutputFile(outputPath, compressed.Bytes()); err != nil {
		return failed.Wrap(err)
	}
	return nil
}

func (d Dispatcher) expandImage(inputPath, outputPath, _ string) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return squeeze.ErrIOFailed.Wrap(err)
	}
	defer input.Close()

	limit := d.maxExpandedSize()
	return streamOutputFile(outputPath, func(output io.Writer) error {
		_, err := compression.DecompressRLEWithLimit(input, output, limit)
		return err
	})
}

func writeOutputFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return squeeze.ErrIOFailed.Wrap(err)
	}
	return nil
}

// streamOutputFile creates the file at `path` and passes it to `write`. If
// anything fails the file is removed.
func streamOutputFile(path string, write func(output io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return squeeze.ErrIOFailed.Wrap(err)
	}

	err = write(file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = squeeze.ErrIOFailed.Wrap(closeErr)
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
