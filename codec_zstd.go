// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdTranscoder handles zstandard payloads. A new encoder or decoder is
// created for every call.
type zstdTranscoder struct {
	level     int
	maxMemory int64
}

// Compress compresses src with zstandard into dst.
func (z *zstdTranscoder) Compress(dst io.Writer, src io.Reader) error {
	enc, err := zstd.NewWriter(dst,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(z.level)),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return fmt.Errorf("%w: zstd encoder: %w", ErrCodecInit, err)
	}

	if _, err := io.Copy(enc, src); err != nil {
		enc.Close()
		return fmt.Errorf("%w: zstd compress: %w", ErrCodecData, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: zstd flush: %w", ErrCodecData, err)
	}
	return nil
}

// Decompress decompresses the zstandard stream in src into dst.
func (z *zstdTranscoder) Decompress(dst io.Writer, src io.Reader) error {
	opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if z.maxMemory > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(uint64(z.maxMemory)))
	}

	dec, err := zstd.NewReader(src, opts...)
	if err != nil {
		return fmt.Errorf("%w: zstd decoder: %w", ErrCodecInit, err)
	}
	defer dec.Close()

	if _, err := io.Copy(dst, dec); err != nil {
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
			return fmt.Errorf("%w: zstd decompress: %w", ErrCodecAlloc, err)
		}
		return fmt.Errorf("%w: zstd decompress: %w", ErrCodecData, err)
	}
	return nil
}
