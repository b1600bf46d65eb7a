package compression

import (
	"bytes"
	"io"

	"github.com/dargueta/squeeze"
)

// CompressImage run-length encodes an image file. JPEG and PNG inputs both use
// this; the file's format is never inspected.
//
// The returned int64 gives the number of bytes written to the output stream. If
// an error occurred, the value is undefined and should not be used. All errors
// are returned as [squeeze.ErrCompressionFailed] wrapping the cause.
func CompressImage(input io.Reader, output io.Writer) (int64, error) {
	n, err := CompressRLE(input, output)
	if err != nil {
		return n, squeeze.ErrCompressionFailed.WithMessage("rle").Wrap(err)
	}
	return n, nil
}

// DecompressImage takes an RLE-encoded image and decompresses it to the original
// raw bytes.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size of the image). If an error occurred, the value is undefined
// and should not be used.
func DecompressImage(input io.Reader, output io.Writer) (int64, error) {
	return DecompressRLE(input, output)
}

// DecompressImageToBytes is a convenience function wrapping [DecompressImage]. It
// returns the decompressed data in a new byte slice instead of writing to an
// [io.Writer].
func DecompressImageToBytes(input io.Reader) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := DecompressImage(input, &buffer)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ImageCodec is the [squeeze.Compressor] and [squeeze.Expander] for image
// kinds.
type ImageCodec struct{}

func (ImageCodec) Compress(input io.Reader, output io.Writer) (int64, error) {
	return CompressImage(input, output)
}

func (ImageCodec) Expand(input io.Reader, output io.Writer) (int64, error) {
	return DecompressImage(input, output)
}
