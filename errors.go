// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"errors"
	"fmt"
)

// DecompressorError classifies a failure of the decompress or compress pipeline.
// The numeric values are stable and used as process exit codes by the cli.
type DecompressorError int

const (
	// OK indicates a successful pipeline run.
	OK DecompressorError = 0

	// ErrFileRead indicates that the input medium could not be read.
	ErrFileRead DecompressorError = 1

	// ErrFileWrite indicates that the output medium could not be written.
	ErrFileWrite DecompressorError = 2

	// ErrWrongFile indicates that the input is not a container, is malformed
	// or names an unknown codec.
	ErrWrongFile DecompressorError = 3

	// ErrDecompress indicates that the codec failed. The codec-level cause
	// is kept in the error chain, see [CodecKindOf].
	ErrDecompress DecompressorError = 4
)

// Error implements the error interface.
func (e DecompressorError) Error() string {
	switch e {
	case OK:
		return "ok"
	case ErrFileRead:
		return "file read error"
	case ErrFileWrite:
		return "file write error"
	case ErrWrongFile:
		return "wrong file"
	case ErrDecompress:
		return "decompress error"
	default:
		return fmt.Sprintf("unknown decompressor error (%d)", int(e))
	}
}

// CodecError classifies a failure inside a codec.
type CodecError int

const (
	// CodecOK indicates that the codec finished without error.
	CodecOK CodecError = 0

	// ErrCodecInit indicates that the codec context could not be set up.
	ErrCodecInit CodecError = 10

	// ErrCodecData indicates a corrupt or invalid compressed stream.
	ErrCodecData CodecError = 11

	// ErrCodecAlloc indicates memory exhaustion or an exceeded size limit.
	ErrCodecAlloc CodecError = 12
)

// Error implements the error interface.
func (e CodecError) Error() string {
	switch e {
	case CodecOK:
		return "ok"
	case ErrCodecInit:
		return "codec init error"
	case ErrCodecData:
		return "codec data error"
	case ErrCodecAlloc:
		return "codec alloc error"
	default:
		return fmt.Sprintf("unknown codec error (%d)", int(e))
	}
}

// kindError is a descriptive sentinel that unwraps to its classification.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}

var (
	// ErrNotContainer is returned if the stream does not start with a known
	// magic and version.
	ErrNotContainer error = &kindError{"not a supercell container", ErrWrongFile}

	// ErrTruncatedHeader is returned if a header field declares more bytes
	// than the stream holds.
	ErrTruncatedHeader error = &kindError{"truncated header", ErrWrongFile}

	// ErrUnknownSignature is returned if the signature tag maps to no codec.
	ErrUnknownSignature error = &kindError{"unknown signature", ErrWrongFile}

	// ErrMetadataUnsupported is returned if metadata should be written with a
	// header version that cannot carry it.
	ErrMetadataUnsupported error = &kindError{"header version does not support metadata", ErrWrongFile}

	// ErrMaxInputSizeExceeded is returned if the input exceeds the configured maximum.
	ErrMaxInputSizeExceeded error = &kindError{"maximum input size exceeded", ErrFileRead}

	// ErrMaxOutputSizeExceeded is returned if the output exceeds the configured maximum.
	ErrMaxOutputSizeExceeded error = &kindError{"maximum output size exceeded", ErrCodecAlloc}

	// ErrLZHAMUnavailable is returned by the default LZHAM strategy, see [WithTranscoder].
	ErrLZHAMUnavailable error = &kindError{"no lzham implementation available", ErrCodecInit}

	// ErrSeek is returned if a stream cannot move its cursor to the requested position.
	ErrSeek = errors.New("seek error")

	// ErrStreamClosed is returned by operations on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// KindOf returns the pipeline classification of err. A nil error yields [OK].
// Errors that carry no classification are reported as [ErrDecompress].
func KindOf(err error) DecompressorError {
	if err == nil {
		return OK
	}
	var kind DecompressorError
	if errors.As(err, &kind) {
		return kind
	}
	return ErrDecompress
}

// CodecKindOf returns the codec classification of err, or [CodecOK] if err
// does not originate from a codec.
func CodecKindOf(err error) CodecError {
	var kind CodecError
	if errors.As(err, &kind) {
		return kind
	}
	return CodecOK
}

// codecFailure makes sure that err carries a codec classification. Errors
// without one are treated as corrupt data.
func codecFailure(err error) error {
	var kind CodecError
	if errors.As(err, &kind) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCodecData, err)
}
