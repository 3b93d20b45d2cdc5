// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ulikunitz/xz/lzma"
)

// The engine stores LZMA payloads with a shortened "lzma alone" header: the
// properties byte and the 4-byte dictionary size are followed by a 4-byte
// little-endian uncompressed size instead of the usual 8-byte one. A size of
// 0xFFFFFFFF marks a stream terminated by an end-of-stream marker.
const (
	lzmaHeaderLen   = 9
	lzmaUnknownSize = math.MaxUint32
)

// lzmaTranscoder handles LZMA payloads.
type lzmaTranscoder struct {
	dictCap int
}

// Compress compresses src with LZMA into dst. The input is buffered in memory
// because the header carries the uncompressed size.
func (l *lzmaTranscoder) Compress(dst io.Writer, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	size := int64(len(data))
	sizeInHeader := size < lzmaUnknownSize
	cfg := lzma.WriterConfig{
		Properties:   &lzma.Properties{LC: 3, LP: 0, PB: 2},
		DictCap:      l.dictCap,
		SizeInHeader: sizeInHeader,
		EOSMarker:    !sizeInHeader,
	}
	if sizeInHeader {
		cfg.Size = size
	}

	var buf bytes.Buffer
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("%w: lzma encoder: %w", ErrCodecInit, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: lzma compress: %w", ErrCodecData, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: lzma flush: %w", ErrCodecData, err)
	}

	// drop the upper half of the 8-byte size field, the lower half keeps
	// 0xFFFFFFFF for an unknown size
	out := buf.Bytes()
	if len(out) < lzma.HeaderLen {
		return fmt.Errorf("%w: lzma encoder produced %d bytes", ErrCodecData, len(out))
	}
	if _, err := dst.Write(out[:lzmaHeaderLen]); err != nil {
		return err
	}
	_, err = dst.Write(out[lzma.HeaderLen:])
	return err
}

// Decompress decompresses the LZMA stream in src into dst.
func (l *lzmaTranscoder) Decompress(dst io.Writer, src io.Reader) error {
	var short [lzmaHeaderLen]byte
	if _, err := io.ReadFull(src, short[:]); err != nil {
		return fmt.Errorf("%w: lzma header: %w", ErrCodecData, err)
	}

	// expand to the standard header
	header := make([]byte, lzma.HeaderLen)
	copy(header, short[:5])
	size := uint64(binary.LittleEndian.Uint32(short[5:]))
	if size == lzmaUnknownSize {
		size = math.MaxUint64
	}
	binary.LittleEndian.PutUint64(header[5:], size)

	r, err := lzma.NewReader(io.MultiReader(bytes.NewReader(header), src))
	if err != nil {
		return fmt.Errorf("%w: lzma decoder: %w", ErrCodecData, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("%w: lzma decompress: %w", ErrCodecData, err)
	}
	return nil
}
