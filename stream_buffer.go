// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"fmt"
	"io"
	"slices"
)

// BufferStream is an in-memory [Stream]. A growable buffer extends when data
// is written past its end; a fixed buffer keeps its length and truncates
// writes that do not fit.
type BufferStream struct {
	buf       []byte
	pos       int64
	endOffset int64
	fixed     bool
	closed    bool
}

// NewBufferStream returns a growable stream with data as initial content. The
// stream takes ownership of data. The cursor starts at 0. Once a trailer is
// excluded with SetEndOffset, the stream no longer grows.
func NewBufferStream(data []byte) *BufferStream {
	return &BufferStream{buf: data}
}

// NewFixedBufferStream returns a stream over data that never changes its
// length. Writes beyond len(data) are truncated and report io.ErrShortWrite.
func NewFixedBufferStream(data []byte) *BufferStream {
	return &BufferStream{buf: data, fixed: true}
}

// Bytes returns the physical content of the buffer, including any region
// excluded by SetEndOffset. The slice is only valid until the next write.
func (s *BufferStream) Bytes() []byte {
	return s.buf
}

// Read implements [Stream].
func (s *BufferStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.pos >= s.Size() {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.pos:s.Size()])
	s.pos += int64(n)
	return n, nil
}

// Write implements [Stream].
func (s *BufferStream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}

	// a fixed buffer and an excluded trailer bound the writable region
	if s.fixed || s.endOffset > 0 {
		if int64(len(p)) > s.Size()-s.pos {
			n := copy(s.buf[s.pos:s.Size()], p)
			s.pos += int64(n)
			return n, io.ErrShortWrite
		}
	}

	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		s.buf = slices.Grow(s.buf, int(end)-len(s.buf))[:end]
	}

	n := copy(s.buf[s.pos:], p)
	s.pos += int64(n)
	return n, nil
}

// Tell implements [Stream].
func (s *BufferStream) Tell() int64 {
	return s.pos
}

// SeekTo implements [Stream].
func (s *BufferStream) SeekTo(pos int64) error {
	if s.closed {
		return ErrStreamClosed
	}
	if pos < 0 || pos > s.Size() {
		return fmt.Errorf("%w: position %d outside [0, %d]", ErrSeek, pos, s.Size())
	}
	s.pos = pos
	return nil
}

// Size implements [Stream].
func (s *BufferStream) Size() int64 {
	return int64(len(s.buf)) - s.endOffset
}

// AtEnd implements [Stream].
func (s *BufferStream) AtEnd() bool {
	return s.pos >= s.Size()
}

// SetEndOffset implements [Stream].
func (s *BufferStream) SetEndOffset(n int64) {
	s.endOffset = clampEndOffset(n, int64(len(s.buf)))
	if s.pos > s.Size() {
		s.pos = s.Size()
	}
}

// Close implements [Stream]. The buffer is released.
func (s *BufferStream) Close() error {
	s.closed = true
	s.buf = nil
	s.endOffset = 0
	s.pos = 0
	return nil
}
