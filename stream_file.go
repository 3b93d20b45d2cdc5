// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FileStream is a [Stream] backed by an *os.File. The file grows when data is
// written past its end, unless a trailer is excluded with SetEndOffset.
//
// The physical size is taken from the file when the stream is created and
// tracked on writes afterwards, so the file must not be modified by anyone
// else while the stream is open.
type FileStream struct {
	file      *os.File
	pos       int64
	size      int64
	endOffset int64
	closed    bool
}

// NewFileStream wraps f. The cursor starts at the current offset of f. The
// stream takes ownership of f and closes it on Close.
func NewFileStream(f *os.File) (*FileStream, error) {
	size, err := FileSize(f)
	if err != nil {
		return nil, fmt.Errorf("cannot stat file: %w", err)
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("cannot determine file offset: %w", err)
	}
	return &FileStream{file: f, pos: pos, size: size}, nil
}

// OpenFileStream opens the file at path for reading.
func OpenFileStream(path string) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	s, err := NewFileStream(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// CreateFileStream creates the file at path for reading and writing with the
// given mode (respecting umask). If the file already exists and overwrite is
// false, an error is returned; otherwise the file is truncated.
func CreateFileStream(path string, overwrite bool, mode fs.FileMode) (*FileStream, error) {
	// check for path validity and if file existence+overwrite
	if _, err := os.Lstat(path); !os.IsNotExist(err) {

		// something wrong with path
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		// check for overwrite
		if !overwrite {
			return nil, fmt.Errorf("file already exists: %s", path)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &FileStream{file: f}, nil
}

// Name returns the name of the underlying file.
func (s *FileStream) Name() string {
	return s.file.Name()
}

// Read implements [Stream].
func (s *FileStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	remaining := s.Size() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := s.file.ReadAt(p, s.pos)
	s.pos += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

// Write implements [Stream].
func (s *FileStream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}

	// an excluded trailer is never overwritten
	if s.endOffset > 0 {
		if remaining := max(s.Size()-s.pos, 0); int64(len(p)) > remaining {
			n, err := s.file.WriteAt(p[:remaining], s.pos)
			s.pos += int64(n)
			if err == nil {
				err = io.ErrShortWrite
			}
			return n, err
		}
	}

	n, err := s.file.WriteAt(p, s.pos)
	s.pos += int64(n)
	if s.pos > s.size {
		s.size = s.pos
	}
	return n, err
}

// Tell implements [Stream].
func (s *FileStream) Tell() int64 {
	return s.pos
}

// SeekTo implements [Stream].
func (s *FileStream) SeekTo(pos int64) error {
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
func (s *FileStream) Size() int64 {
	return s.size - s.endOffset
}

// AtEnd implements [Stream].
func (s *FileStream) AtEnd() bool {
	return s.pos >= s.Size()
}

// SetEndOffset implements [Stream].
func (s *FileStream) SetEndOffset(n int64) {
	s.endOffset = clampEndOffset(n, s.size)
	if s.pos > s.Size() {
		s.pos = s.Size()
	}
}

// Close implements [Stream].
func (s *FileStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}
