package squeeze_test

import (
	"errors"
	"testing"

	"github.com/dargueta/squeeze"
	"github.com/stretchr/testify/assert"
)

func TestCodecErrorWithMessage(t *testing.T) {
	newErr := squeeze.ErrInvalidEncoding.WithMessage("asdfqwerty")
	assert.Equal(
		t, "Invalid encoding: asdfqwerty", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, squeeze.ErrInvalidEncoding)
}

func TestCodecErrorWrap(t *testing.T) {
	originalErr := errors.New("original error")
	newErr := squeeze.ErrIOFailed.Wrap(originalErr)
	expectedMessage := "Input/output error: original error"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, squeeze.ErrIOFailed, "codec error not set as parent")
}

// A compression failure wrapping a narrower codec error must still match both.
func TestCodecErrorWrap__Nested(t *testing.T) {
	cause := squeeze.ErrEmptyInput.WithMessage("test.txt")
	newErr := squeeze.ErrCompressionFailed.WithMessage("huffman").Wrap(cause)

	assert.Equal(
		t,
		"Compression failed: huffman: Input is empty: test.txt",
		newErr.Error(),
		"error message is wrong")
	assert.ErrorIs(t, newErr, squeeze.ErrCompressionFailed)
	assert.ErrorIs(t, newErr, squeeze.ErrEmptyInput)
	assert.NotErrorIs(t, newErr, squeeze.ErrIOFailed)
}
