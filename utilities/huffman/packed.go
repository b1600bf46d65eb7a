package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/squeeze"
)

// Packed format:
//
//	offset  size  field
//	0       4     magic "SQZH"
//	4       1     format version, currently 1
//	5       8     number of bits, little endian
//	13      ...   bits, eight per byte, bit i of the stream is bit (i % 8) of byte i / 8
//
// Unused bits in the last byte are zero.
const (
	packedMagic      = "SQZH"
	PackedVersion    = 1
	PackedHeaderSize = 13
)

// PackBits converts a '0'/'1' string into the packed format.
func PackBits(bits string) ([]byte, error) {
	bitCount := len(bits)
	bitBuffer := bitmap.New(bitCount)
	for i := 0; i < bitCount; i++ {
		switch bits[i] {
		case '0':
		case '1':
			bitBuffer.Set(i, true)
		default:
			return nil, squeeze.ErrInvalidEncoding.WithMessage(
				fmt.Sprintf("invalid character %q at offset %d", bits[i], i))
		}
	}

	payloadSize := (bitCount + 7) / 8
	output := make([]byte, PackedHeaderSize+payloadSize)
	copy(output[0:4], packedMagic)
	output[4] = PackedVersion
	binary.LittleEndian.PutUint64(output[5:13], uint64(bitCount))
	copy(output[PackedHeaderSize:], bitBuffer[:payloadSize])
	return output, nil
}

// UnpackBits is the inverse of [PackBits].
func UnpackBits(packed []byte) (string, error) {
	if len(packed) < PackedHeaderSize {
		return "", squeeze.ErrInvalidEncoding.WithMessage(
			fmt.Sprintf("packed data too small: %d bytes", len(packed)))
	}
	if !bytes.Equal(packed[0:4], []byte(packedMagic)) {
		return "", squeeze.ErrInvalidEncoding.WithMessage(
			fmt.Sprintf("bad magic number %q", packed[0:4]))
	}
	if packed[4] != PackedVersion {
		return "", squeeze.ErrInvalidEncoding.WithMessage(
			fmt.Sprintf("unsupported packed format version %d", packed[4]))
	}

	bitCount := binary.LittleEndian.Uint64(packed[5:13])
	payload := packed[PackedHeaderSize:]
	// Written without adding to bitCount so a huge header value can't wrap.
	neededBytes := bitCount / 8
	if bitCount%8 != 0 {
		neededBytes++
	}
	if uint64(len(payload)) != neededBytes {
		return "", squeeze.ErrInvalidEncoding.WithMessage(
			fmt.Sprintf(
				"header says %d bits, need %d bytes but have %d",
				bitCount,
				neededBytes,
				len(payload)))
	}

	bits := make([]byte, bitCount)
	for i := range bits {
		if bitmap.Get(payload, i) {
			bits[i] = '1'
		} else {
			bits[i] = '0'
		}
	}
	return string(bits), nil
}
