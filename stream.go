// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import "io"

// Stream is a random-access byte medium with a logical end-of-stream marker.
//
// The logical end is the physical size minus a trailing region that has been
// excluded with SetEndOffset. Reads never cross the logical end, which hides
// footers such as an appended signature block from payload consumers.
//
// A Stream is owned by the code that created it and must not be used from
// multiple goroutines at the same time.
type Stream interface {
	// Read copies up to len(p) bytes starting at the cursor into p and advances
	// the cursor. The count is clamped at the logical end. A short read at the
	// boundary is not an error; once the cursor is at the logical end, Read
	// returns 0 and io.EOF.
	Read(p []byte) (int, error)

	// Write writes p at the cursor and advances it. Growable media extend as
	// needed. Fixed media, and media with an excluded trailer, write what fits
	// before the logical end and return io.ErrShortWrite.
	Write(p []byte) (int, error)

	// Tell returns the cursor offset from the start of the medium.
	Tell() int64

	// SeekTo moves the cursor to the absolute position pos. It returns an error
	// wrapping ErrSeek if pos lies outside [0, Size()].
	SeekTo(pos int64) error

	// Size returns the logical length of the stream.
	Size() int64

	// AtEnd reports whether the cursor reached the logical end.
	AtEnd() bool

	// SetEndOffset excludes the last n bytes of the physical medium from the
	// logical stream.
	SetEndOffset(n int64)

	// Close releases the underlying medium. Calling Close more than once is
	// a no-op.
	io.Closer
}

// clampEndOffset limits an end offset to the physical size of a medium.
func clampEndOffset(n int64, physical int64) int64 {
	if n < 0 {
		return 0
	}
	if n > physical {
		return physical
	}
	return n
}
