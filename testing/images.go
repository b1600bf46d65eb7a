package testing

import (
	"bytes"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dargueta/squeeze/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// LoadCompressedImage takes an RLE-compressed image and returns a stream to
// access the uncompressed data.
//
//   - Writes to the stream do not affect `compressedImageBytes`.
//   - While the stream can be written to, its size is fixed to `expectedSize`.
//     Attempting to write past the end of this buffer will trigger an error.
func LoadCompressedImage(
	t *testing.T, compressedImageBytes []byte, expectedSize int,
) io.ReadWriteSeeker {
	require.Greater(t, len(compressedImageBytes), 0, "compressed image is empty")

	imageBytes, err := compression.DecompressImageToBytes(
		bytes.NewReader(compressedImageBytes))
	require.NoError(t, err)
	require.Equal(t, expectedSize, len(imageBytes), "uncompressed image is wrong size")
	return bytesextra.NewReadWriteSeeker(imageBytes)
}

// RandomImageBytes returns `size` random bytes containing no ASCII digits, so
// that they survive an RLE round trip. About one byte in four starts a short run.
func RandomImageBytes(t *testing.T, size int) []byte {
	raw := make([]byte, size)
	_, err := rand.Read(raw)
	require.NoError(t, err)

	for i, b := range raw {
		if b >= '0' && b <= '9' {
			raw[i] = b + 10
		}
		if i > 0 && b&3 == 0 {
			raw[i] = raw[i-1]
		}
	}
	return raw
}

// WriteInputFile creates a file named `name` in `dir` with the given contents
// and returns its path.
func WriteInputFile(t *testing.T, dir, name string, data []byte) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644), "failed to write %q", path)
	return path
}

// ReadOutputFile returns a seekable in-memory copy of the file at `path`.
func ReadOutputFile(t *testing.T, path string) io.ReadWriteSeeker {
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %q", path)
	return bytesextra.NewReadWriteSeeker(data)
}
