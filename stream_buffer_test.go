// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/hashicorp/go-sc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferStreamRead(t *testing.T) {
	s := sc.NewBufferStream([]byte("hello"))

	buf := make([]byte, 3)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "hel", string(buf[:n]))
	assert.Equal(t, int64(3), s.Tell())
	assert.False(t, s.AtEnd())

	// clamped at the end
	buf = make([]byte, 10)
	n, err = s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "lo", string(buf[:n]))
	assert.True(t, s.AtEnd())

	n, err = s.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

// TestBufferStreamReadNearEnd tests that a read one byte before the end never returns more than one byte
func TestBufferStreamReadNearEnd(t *testing.T) {
	for size := 1; size <= 16; size++ {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			s := sc.NewBufferStream(make([]byte, size))
			require.NoError(t, s.SeekTo(int64(size-1)))

			n, err := s.Read(make([]byte, size+8))
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.True(t, s.AtEnd())
		})
	}
}

func TestBufferStreamEndOffset(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		endOffset int64
		wantSize  int64
		want      string
	}{
		{
			name:      "no offset",
			data:      "0123456789",
			endOffset: 0,
			wantSize:  10,
			want:      "0123456789",
		},
		{
			name:      "hide footer",
			data:      "0123456789",
			endOffset: 2,
			wantSize:  8,
			want:      "01234567",
		},
		{
			name:      "hide everything",
			data:      "0123456789",
			endOffset: 10,
			wantSize:  0,
			want:      "",
		},
		{
			name:      "offset larger than medium",
			data:      "0123456789",
			endOffset: 20,
			wantSize:  0,
			want:      "",
		},
		{
			name:      "negative offset",
			data:      "0123456789",
			endOffset: -3,
			wantSize:  10,
			want:      "0123456789",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := sc.NewBufferStream([]byte(test.data))
			s.SetEndOffset(test.endOffset)
			assert.Equal(t, test.wantSize, s.Size())

			got, err := io.ReadAll(s)
			require.NoError(t, err)
			assert.Equal(t, test.want, string(got))
			assert.True(t, s.AtEnd())
			assert.Equal(t, test.wantSize, s.Tell())
		})
	}
}

// TestBufferStreamEndOffsetClampsCursor tests that the cursor never lies behind the logical end
func TestBufferStreamEndOffsetClampsCursor(t *testing.T) {
	s := sc.NewBufferStream([]byte("0123456789"))
	require.NoError(t, s.SeekTo(9))

	s.SetEndOffset(4)
	assert.Equal(t, int64(6), s.Tell())
	assert.True(t, s.AtEnd())

	// the physical content is untouched
	assert.Equal(t, "0123456789", string(s.Bytes()))
}

func TestBufferStreamWrite(t *testing.T) {
	s := sc.NewBufferStream(nil)

	n, err := s.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int64(3), s.Size())
	assert.Equal(t, int64(3), s.Tell())

	// overwrite and grow
	require.NoError(t, s.SeekTo(1))
	n, err = s.Write([]byte("XYZW"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "aXYZW", string(s.Bytes()))
	assert.Equal(t, int64(5), s.Size())
	assert.Equal(t, int64(5), s.Tell())

	// overwrite in place
	require.NoError(t, s.SeekTo(0))
	_, err = s.Write([]byte("A"))
	require.NoError(t, err)
	assert.Equal(t, "AXYZW", string(s.Bytes()))
	assert.Equal(t, int64(5), s.Size())
}

func TestFixedBufferStreamWrite(t *testing.T) {
	s := sc.NewFixedBufferStream(make([]byte, 4))

	n, err := s.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Write([]byte("cdef"))
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, 2, n)
	assert.Equal(t, "abcd", string(s.Bytes()))
	assert.Equal(t, int64(4), s.Size())
	assert.True(t, s.AtEnd())

	n, err = s.Write([]byte("g"))
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, 0, n)
}

// TestBufferStreamWriteKeepsTrailer tests that writes stop at the logical end once a trailer is excluded
func TestBufferStreamWriteKeepsTrailer(t *testing.T) {
	tests := []struct {
		name      string
		fixed     bool
		pos       int64
		data      string
		wantN     int
		wantErr   error
		wantBytes string
	}{
		{name: "crossing the end", pos: 6, data: "ab", wantN: 0, wantErr: io.ErrShortWrite, wantBytes: "0123456789"},
		{name: "partially before the end", pos: 5, data: "ab", wantN: 1, wantErr: io.ErrShortWrite, wantBytes: "01234a6789"},
		{name: "up to the end", pos: 4, data: "ab", wantN: 2, wantBytes: "0123ab6789"},
		{name: "fixed crossing the end", fixed: true, pos: 5, data: "abc", wantN: 1, wantErr: io.ErrShortWrite, wantBytes: "01234a6789"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := sc.NewBufferStream([]byte("0123456789"))
			if test.fixed {
				s = sc.NewFixedBufferStream([]byte("0123456789"))
			}
			s.SetEndOffset(4)
			require.NoError(t, s.SeekTo(test.pos))

			n, err := s.Write([]byte(test.data))
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, test.wantN, n)
			assert.Equal(t, test.wantBytes, string(s.Bytes()))
			assert.Equal(t, int64(6), s.Size())
			assert.LessOrEqual(t, s.Tell(), s.Size())
			assert.NoError(t, s.SeekTo(s.Tell()))
		})
	}
}

func TestBufferStreamSeek(t *testing.T) {
	tests := []struct {
		name    string
		pos     int64
		wantErr bool
	}{
		{name: "start", pos: 0},
		{name: "middle", pos: 3},
		{name: "end", pos: 5},
		{name: "negative", pos: -1, wantErr: true},
		{name: "behind end", pos: 6, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := sc.NewBufferStream([]byte("hello"))
			err := s.SeekTo(test.pos)
			if test.wantErr {
				assert.ErrorIs(t, err, sc.ErrSeek)
				assert.Equal(t, int64(0), s.Tell())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.pos, s.Tell())
		})
	}
}

// TestBufferStreamSeekRespectsEndOffset tests that the excluded region cannot be reached
func TestBufferStreamSeekRespectsEndOffset(t *testing.T) {
	s := sc.NewBufferStream([]byte("hello"))
	s.SetEndOffset(2)
	assert.ErrorIs(t, s.SeekTo(4), sc.ErrSeek)
	assert.NoError(t, s.SeekTo(3))
}

func TestBufferStreamClose(t *testing.T) {
	s := sc.NewBufferStream([]byte("hello"))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Read(make([]byte, 1))
	assert.ErrorIs(t, err, sc.ErrStreamClosed)
	_, err = s.Write([]byte("x"))
	assert.ErrorIs(t, err, sc.ErrStreamClosed)
	assert.ErrorIs(t, s.SeekTo(0), sc.ErrStreamClosed)
}
