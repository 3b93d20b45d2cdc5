// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import "io"

// lzhamTranscoder is the default LZHAM strategy. There is no Go implementation
// of LZHAM, so both directions fail with [ErrLZHAMUnavailable] until a
// transcoder is registered with [WithTranscoder].
type lzhamTranscoder struct{}

// Compress always fails with [ErrLZHAMUnavailable].
func (lzhamTranscoder) Compress(io.Writer, io.Reader) error {
	return ErrLZHAMUnavailable
}

// Decompress always fails with [ErrLZHAMUnavailable].
func (lzhamTranscoder) Decompress(io.Writer, io.Reader) error {
	return ErrLZHAMUnavailable
}
