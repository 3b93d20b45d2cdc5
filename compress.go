// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"context"
	"fmt"
)

// Compress writes a container to dst whose payload is src, from its current
// position to its logical end, compressed with codec.
//
// The identifier, hash and metadata are taken from hdr, which may be nil. The
// header version is hdr.Version if set, otherwise the configured
// [WithHeaderVersion]. The signature is always the canonical tag of codec.
// Failures are classified like in [Decompress]; a failing codec is reported as
// [ErrDecompress].
func Compress(ctx context.Context, dst Stream, src Stream, codec Codec, hdr *Header, cfg *Config) error {
	if cfg == nil {
		cfg = NewConfig()
	}

	// prepare telemetry capturing
	cfg.Logger().Info("compress", "codec", codec)
	td := &TelemetryData{Operation: operationCompress, Codec: codec.String()}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureDuration(td, now())

	if err := checkContext(ctx); err != nil {
		return handleError(cfg, td, "context error", err)
	}
	if err := codec.Valid(); err != nil {
		return handleError(cfg, td, "invalid codec", err)
	}

	// limit input size
	td.InputSize = src.Size() - src.Tell()
	if err := cfg.CheckInputSize(td.InputSize); err != nil {
		return handleError(cfg, td, "input too large", err)
	}

	// assemble header
	out := &Header{
		Version:   cfg.HeaderVersion(),
		Signature: codec.Signature(),
		OK:        true,
	}
	if hdr != nil {
		if hdr.Version != 0 {
			out.Version = hdr.Version
		}
		out.ID = hdr.ID
		out.Hash = hdr.Hash
		out.Metadata = hdr.Metadata
	}
	td.HeaderVersion = out.Version
	if len(out.ID) > 0 && !out.IDLooksValid() {
		cfg.Logger().Warn("identifier is all-zero", "size", len(out.ID))
	}

	// write header, which counts against the output limit
	headerLen := int64(out.Len())
	if err := cfg.CheckOutputSize(headerLen); err != nil {
		return handleError(cfg, td, "header too large", fmt.Errorf("%w: %w", ErrDecompress, err))
	}
	if err := WriteHeader(dst, out); err != nil {
		return handleError(cfg, td, "cannot write header", err)
	}
	td.OutputSize = headerLen

	// transform payload
	outputLimit := remaining(cfg.MaxOutputSize(), headerLen)
	n, err := transcode(cfg.Transcoder(codec).Compress, dst, src, cfg.MaxInputSize(), outputLimit)
	td.OutputSize += n
	if err != nil {
		return handleError(cfg, td, fmt.Sprintf("cannot compress %s payload", codec), err)
	}

	// finished
	return nil
}

// CompressBytes compresses data with codec into a new container and returns
// it. See [Compress].
func CompressBytes(ctx context.Context, data []byte, codec Codec, hdr *Header, cfg *Config) ([]byte, error) {
	src := NewBufferStream(data)
	defer src.Close()

	dst := NewBufferStream(nil)
	if err := Compress(ctx, dst, src, codec, hdr, cfg); err != nil {
		return nil, err
	}
	return dst.Bytes(), nil
}
