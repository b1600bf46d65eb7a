package squeeze

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type returned by every codec and by the file layer.
// Callers only need to branch on [ErrCompressionFailed]; the narrower sentinels
// stay reachable through [errors.Is].
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

var ErrBusy = rootError.WithMessage("Output is already being written")
var ErrCompressionFailed = rootError.WithMessage("Compression failed")
var ErrEmptyInput = rootError.WithMessage("Input is empty")
var ErrInvalidCodeTable = rootError.WithMessage("Invalid code table")
var ErrInvalidEncoding = rootError.WithMessage("Invalid encoding")
var ErrIOFailed = rootError.WithMessage("Input/output error")
var ErrUnsupportedKind = rootError.WithMessage("File type not supported")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
