// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import "io"

// limitErrorWriter is a wrapper around an io.Writer that returns
// ErrMaxOutputSizeExceeded when the limit is reached.
// If the limit is -1, all data is written to the underlying writer.
//
// Errors of the underlying writer are remembered in Err.
type limitErrorWriter struct {
	W        io.Writer // underlying writer
	L        int64     // limit
	N        int64     // number of bytes written
	Err      error     // last error of the underlying writer
	Exceeded bool      // limit was hit
}

// Write writes up to len(p) bytes from p to the underlying data stream. It returns
// the number of bytes written from p (0 <= n <= len(p)) and any error encountered
// that caused the write to stop early. Write returns a non-nil error when n < len(p).
// Write does not modify the slice data, even temporarily. The limit is enforced by
// returning ErrMaxOutputSizeExceeded when the limit is reached.
func (l *limitErrorWriter) Write(p []byte) (n int, err error) {
	if l.L == -1 {
		return l.write(p)
	}

	// check if we reached the limit
	if l.N+int64(len(p)) > l.L {
		l.Exceeded = true
		if l.N >= l.L {
			return 0, ErrMaxOutputSizeExceeded
		}

		// write until we reach the limit
		n, err = l.write(p[0 : l.L-l.N])
		if err == nil {
			err = ErrMaxOutputSizeExceeded
		}
		return n, err
	}

	// write normally
	return l.write(p)
}

func (l *limitErrorWriter) write(p []byte) (int, error) {
	n, err := l.W.Write(p)
	l.N += int64(n)
	if err != nil {
		l.Err = err
	}
	return n, err
}

// newLimitErrorWriter returns a new LimitErrorWriter that wraps the given writer
// and limit.
func newLimitErrorWriter(w io.Writer, l int64) *limitErrorWriter {
	return &limitErrorWriter{W: w, L: l}
}
