// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

//go:generate mockgen -source=codec.go -destination=mock_transcoder_test.go -package=sc_test

import (
	"fmt"
	"io"
	"strings"
)

// Codec identifies the compression algorithm of a container payload.
type Codec uint8

const (
	// CodecNone stores the payload uncompressed.
	CodecNone Codec = iota

	// CodecLZMA compresses the payload with LZMA.
	CodecLZMA

	// CodecLZHAM compresses the payload with LZHAM.
	CodecLZHAM

	// CodecZstd compresses the payload with zstandard.
	CodecZstd
)

// Signature is the 4-byte tag in the container header that names the codec.
type Signature [4]byte

// String returns the tag as text if it is printable, otherwise as hex.
func (s Signature) String() string {
	for _, b := range s {
		if b < 0x20 || b > 0x7e {
			return fmt.Sprintf("%x", s[:])
		}
	}
	return string(s[:])
}

// canonical signatures, written by the compress pipeline
var (
	signatureNone  = Signature{'N', 'O', 'N', 'E'}
	signatureLZMA  = Signature{'L', 'Z', 'M', 'A'}
	signatureLZHAM = Signature{'L', 'Z', 'H', '1'}
	signatureZstd  = Signature{'Z', 'S', 'T', '1'}
)

// signatures maps the canonical tags to their codec.
var signatures = map[Signature]Codec{
	signatureNone:  CodecNone,
	signatureLZMA:  CodecLZMA,
	signatureLZHAM: CodecLZHAM,
	signatureZstd:  CodecZstd,
}

// streamMagics maps the magic bytes that prefix the raw LZHAM and zstandard
// streams of the engine's own tooling to their codec. Such a tag is the start
// of the payload, not a separate field.
// reference: https://www.rfc-editor.org/rfc/rfc8878.html
var streamMagics = map[Signature]Codec{
	{'S', 'C', 'L', 'Z'}:     CodecLZHAM,
	{0x28, 0xb5, 0x2f, 0xfd}: CodecZstd,
}

// CodecFromSignature returns the codec named by sig. An unmapped tag yields an
// error wrapping [ErrUnknownSignature].
func CodecFromSignature(sig Signature) (Codec, error) {
	if c, ok := signatures[sig]; ok {
		return c, nil
	}
	if c, ok := streamMagics[sig]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownSignature, sig)
}

// IsStreamMagic reports whether s is the magic of a raw codec stream. The
// decompress pipeline hands such a tag to the codec as part of the payload.
func (s Signature) IsStreamMagic() bool {
	_, ok := streamMagics[s]
	return ok
}

// Signature returns the canonical tag of c.
func (c Codec) Signature() Signature {
	switch c {
	case CodecLZMA:
		return signatureLZMA
	case CodecLZHAM:
		return signatureLZHAM
	case CodecZstd:
		return signatureZstd
	default:
		return signatureNone
	}
}

// String returns the human-readable name of a codec.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZMA:
		return "lzma"
	case CodecLZHAM:
		return "lzham"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Valid returns a nil error iff c is a known codec.
func (c Codec) Valid() error {
	switch c {
	case CodecNone, CodecLZMA, CodecLZHAM, CodecZstd:
		return nil
	}
	return fmt.Errorf("%w: codec %d", ErrUnknownSignature, uint8(c))
}

// ParseCodec parses a codec from its name, ignoring case.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "none":
		return CodecNone, nil
	case "lzma":
		return CodecLZMA, nil
	case "lzham":
		return CodecLZHAM, nil
	case "zstd":
		return CodecZstd, nil
	default:
		return 0, fmt.Errorf("unknown codec: %q", name)
	}
}

// Transcoder is the strategy that compresses and decompresses the payload of
// one codec. Implementations consume src up to its end and write the result to
// dst. They should classify failures with a [CodecError]; unclassified errors
// are treated as [ErrCodecData].
type Transcoder interface {
	Compress(dst io.Writer, src io.Reader) error
	Decompress(dst io.Writer, src io.Reader) error
}
