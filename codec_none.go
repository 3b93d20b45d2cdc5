// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import "io"

// noneTranscoder copies the payload verbatim.
type noneTranscoder struct{}

// Compress copies src to dst.
func (noneTranscoder) Compress(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

// Decompress copies src to dst.
func (noneTranscoder) Decompress(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}
