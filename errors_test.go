package sc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-sc"
)

// TestErrorCodes tests that the numeric values of the classifications are stable
func TestErrorCodes(t *testing.T) {
	cases := []struct {
		got  int
		want int
	}{
		{got: int(sc.OK), want: 0},
		{got: int(sc.ErrFileRead), want: 1},
		{got: int(sc.ErrFileWrite), want: 2},
		{got: int(sc.ErrWrongFile), want: 3},
		{got: int(sc.ErrDecompress), want: 4},
		{got: int(sc.CodecOK), want: 0},
		{got: int(sc.ErrCodecInit), want: 10},
		{got: int(sc.ErrCodecData), want: 11},
		{got: int(sc.ErrCodecAlloc), want: 12},
	}

	for i, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("case %d: expected %d, got %d", i, tc.want, tc.got)
		}
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want sc.DecompressorError
	}{
		{name: "nil", err: nil, want: sc.OK},
		{name: "not a container", err: sc.ErrNotContainer, want: sc.ErrWrongFile},
		{name: "truncated header", err: fmt.Errorf("parse: %w", sc.ErrTruncatedHeader), want: sc.ErrWrongFile},
		{name: "unknown signature", err: sc.ErrUnknownSignature, want: sc.ErrWrongFile},
		{name: "input too large", err: sc.ErrMaxInputSizeExceeded, want: sc.ErrFileRead},
		{name: "wrapped write error", err: fmt.Errorf("%w: disk full", sc.ErrFileWrite), want: sc.ErrFileWrite},
		{name: "codec failure", err: fmt.Errorf("%w: %w", sc.ErrDecompress, sc.ErrCodecData), want: sc.ErrDecompress},
		{name: "unclassified", err: errors.New("boom"), want: sc.ErrDecompress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sc.KindOf(tc.err); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCodecKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want sc.CodecError
	}{
		{name: "nil", err: nil, want: sc.CodecOK},
		{name: "not a codec error", err: sc.ErrNotContainer, want: sc.CodecOK},
		{name: "lzham unavailable", err: sc.ErrLZHAMUnavailable, want: sc.ErrCodecInit},
		{name: "output too large", err: fmt.Errorf("%w: %w", sc.ErrDecompress, sc.ErrMaxOutputSizeExceeded), want: sc.ErrCodecAlloc},
		{name: "corrupt data", err: fmt.Errorf("%w: %w", sc.ErrDecompress, sc.ErrCodecData), want: sc.ErrCodecData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sc.CodecKindOf(tc.err); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestErrorStrings(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{err: sc.ErrFileRead, want: "file read error"},
		{err: sc.ErrWrongFile, want: "wrong file"},
		{err: sc.ErrCodecAlloc, want: "codec alloc error"},
		{err: sc.DecompressorError(99), want: "unknown decompressor error (99)"},
		{err: sc.CodecError(99), want: "unknown codec error (99)"},
		{err: sc.ErrNotContainer, want: "not a supercell container"},
	}

	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}
