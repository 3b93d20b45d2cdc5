// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"context"
	"fmt"
	"io"
	"time"
)

const (
	operationCompress   = "compress"
	operationDecompress = "decompress"
)

// now is a function point that returns time.Now to the caller.
var now = time.Now

// transcodeFunc is either the Compress or the Decompress method of a [Transcoder].
type transcodeFunc func(dst io.Writer, src io.Reader) error

// transcode runs fn from src to dst and classifies its failure. At most
// inputLimit bytes are read from src and outputLimit bytes written to dst, -1
// disables a limit. A failing output medium is reported as [ErrFileWrite], a
// failing input medium as [ErrFileRead] and everything else as [ErrDecompress]
// with the codec-level cause. It returns the number of bytes written to dst.
func transcode(fn transcodeFunc, dst io.Writer, src io.Reader, inputLimit int64, outputLimit int64) (int64, error) {
	r := newLimitErrorReader(src, inputLimit)
	w := newLimitErrorWriter(dst, outputLimit)

	err := fn(w, r)
	switch {
	case err == nil:
		return w.N, nil
	case w.Exceeded:
		return w.N, fmt.Errorf("%w: %w", ErrDecompress, ErrMaxOutputSizeExceeded)
	case r.Exceeded:
		return w.N, ErrMaxInputSizeExceeded
	case w.Err != nil:
		return w.N, fmt.Errorf("%w: %w", ErrFileWrite, w.Err)
	case r.Err != nil:
		return w.N, fmt.Errorf("%w: %w", ErrFileRead, r.Err)
	default:
		return w.N, fmt.Errorf("%w: %w", ErrDecompress, codecFailure(err))
	}
}

// remaining returns what is left of limit after used bytes. A disabled limit
// of -1 stays disabled.
func remaining(limit int64, used int64) int64 {
	if limit == -1 {
		return -1
	}
	return max(limit-used, 0)
}

// checkContext reports a canceled context. Cancellation is only checked
// before output is produced, so it is classified as a read failure.
func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	return nil
}

// captureDuration captures the duration of a pipeline run
func captureDuration(td *TelemetryData, start time.Time) {
	stop := now()
	td.Duration = stop.Sub(start)
}

// handleError increases the error counter, sets the latest error, logs it and
// returns it.
func handleError(cfg *Config, td *TelemetryData, msg string, err error) error {

	// increase error counter and set error
	td.Errors++
	td.LastError = fmt.Errorf("%s: %w", msg, err)

	cfg.Logger().Error(msg, "error", err)
	return td.LastError
}
