// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"context"
	"errors"
	"fmt"
)

// Decompress reads a container from the current position of src and writes
// the decompressed payload to dst.
//
// The header is parsed first. If src is not a container, Decompress fails
// with [ErrWrongFile], or copies src verbatim to dst if [WithPassThrough] is
// set. The signature selects the codec; an unknown signature fails with
// [ErrWrongFile] without invoking any codec. If the signature is the magic of
// a raw codec stream, it is passed to the codec as the start of the payload. Codec failures are reported as
// [ErrDecompress] and keep their [CodecError] in the chain, failures of src
// as [ErrFileRead] and failures of dst as [ErrFileWrite]. Use [KindOf] and
// [CodecKindOf] to classify the returned error.
//
// The returned header is never nil. Decompress neither closes src nor dst,
// and output already written when an error occurs is left as-is.
func Decompress(ctx context.Context, dst Stream, src Stream, cfg *Config) (*Header, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	// prepare telemetry capturing
	cfg.Logger().Info("decompress")
	td := &TelemetryData{Operation: operationDecompress}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureDuration(td, now())

	hdr := &Header{}
	if err := checkContext(ctx); err != nil {
		return hdr, handleError(cfg, td, "context error", err)
	}

	// hide trailing footer
	if n := cfg.TrailerSize(); n > 0 {
		src.SetEndOffset(n)
		cfg.Logger().Debug("excluded trailer", "size", n)
	}

	// limit input size
	td.InputSize = src.Size() - src.Tell()
	if err := cfg.CheckInputSize(td.InputSize); err != nil {
		return hdr, handleError(cfg, td, "input too large", err)
	}

	// parse header
	start := src.Tell()
	hdr, err := ParseHeader(src)
	if err != nil {
		if errors.Is(err, ErrNotContainer) && cfg.PassThrough() {
			cfg.Logger().Debug("input is not a container, passing through", "reason", err)
			return hdr, passThrough(dst, src, start, cfg, td)
		}
		return hdr, handleError(cfg, td, "cannot parse header", err)
	}
	td.HeaderVersion = hdr.Version

	// select codec
	codec, err := hdr.Codec()
	if err != nil {
		return hdr, handleError(cfg, td, "cannot select codec", err)
	}
	td.Codec = codec.String()

	// stream magic belongs to the payload
	if hdr.Signature.IsStreamMagic() {
		if err := src.SeekTo(src.Tell() - signatureLen); err != nil {
			return hdr, handleError(cfg, td, "cannot rewind input", fmt.Errorf("%w: %w", ErrFileRead, err))
		}
	}
	cfg.Logger().Debug("parsed header", "version", hdr.Version, "codec", codec, "signature", hdr.Signature, "payload", src.Size()-src.Tell())

	// check if context is canceled
	if err := checkContext(ctx); err != nil {
		return hdr, handleError(cfg, td, "context error", err)
	}

	// transform payload
	inputLimit := remaining(cfg.MaxInputSize(), src.Tell()-start)
	n, err := transcode(cfg.Transcoder(codec).Decompress, dst, src, inputLimit, cfg.MaxOutputSize())
	td.OutputSize = n
	if err != nil {
		return hdr, handleError(cfg, td, fmt.Sprintf("cannot decompress %s payload", codec), err)
	}

	// finished
	return hdr, nil
}

// passThrough rewinds src to start and copies it verbatim to dst.
func passThrough(dst Stream, src Stream, start int64, cfg *Config, td *TelemetryData) error {
	td.PassThrough = true
	td.Codec = CodecNone.String()

	if err := src.SeekTo(start); err != nil {
		return handleError(cfg, td, "cannot rewind input", fmt.Errorf("%w: %w", ErrFileRead, err))
	}

	n, err := transcode(noneTranscoder{}.Decompress, dst, src, cfg.MaxInputSize(), cfg.MaxOutputSize())
	td.OutputSize = n
	if err != nil {
		return handleError(cfg, td, "cannot copy input", err)
	}
	return nil
}

// DecompressBytes decompresses the container in data and returns the payload
// and the parsed header. See [Decompress].
func DecompressBytes(ctx context.Context, data []byte, cfg *Config) ([]byte, *Header, error) {
	src := NewBufferStream(data)
	defer src.Close()

	dst := NewBufferStream(nil)
	hdr, err := Decompress(ctx, dst, src, cfg)
	if err != nil {
		return nil, hdr, err
	}
	return dst.Bytes(), hdr, nil
}
