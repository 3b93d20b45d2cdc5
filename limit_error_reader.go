// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"io"
)

// limitErrorReader is a reader that returns an error if the limit is exceeded
// before the underlying reader is fully read.
// If the limit is -1, all data from the original reader is read.
//
// Errors of the underlying reader other than io.EOF are remembered in Err, so
// that a caller can tell a failing medium apart from a failing consumer.
type limitErrorReader struct {
	R        io.Reader // underlying reader
	L        int64     // limit
	N        int64     // number of bytes read
	Err      error     // last error of the underlying reader
	Exceeded bool      // limit was hit
}

// Read reads from the underlying reader and fills up p.
// It returns an error if the limit is exceeded, even if the underlying reader is not fully read.
// If the limit is -1, all data from the original reader is read.
func (l *limitErrorReader) Read(p []byte) (int, error) {
	// determine how many bytes to read
	m := l.L - l.N
	if l.L == -1 || m > int64(len(p)) {
		m = int64(len(p))
	}

	// check if limit has exceeded, which is only the case if data is left
	if m == 0 && len(p) > 0 {
		var next [1]byte
		n, err := l.R.Read(next[:])
		if n > 0 {
			l.Exceeded = true
			return 0, ErrMaxInputSizeExceeded
		}
		if err != nil && err != io.EOF {
			l.Err = err
		}
		return 0, err
	}

	// read from underlying reader and preserve error type
	n, err := l.R.Read(p[:m])
	l.N += int64(n)
	if err != nil && err != io.EOF {
		l.Err = err
	}
	return n, err
}

// ReadBytes returns how many bytes have been read from the underlying reader
func (l *limitErrorReader) ReadBytes() int64 {
	return l.N
}

// newLimitErrorReader returns a new LimitErrorReader that reads from r
func newLimitErrorReader(r io.Reader, limit int64) *limitErrorReader {
	return &limitErrorReader{R: r, L: limit, N: 0}
}
