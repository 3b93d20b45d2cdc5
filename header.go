// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// magicBytes is the prefix of every container, followed by a big-endian
// uint32 version.
var magicBytes = []byte{'S', 'C'}

const (
	// HeaderVersionMin is the oldest supported header version.
	HeaderVersionMin uint32 = 1

	// HeaderVersionMetadata is the first header version that carries a
	// metadata field.
	HeaderVersionMetadata uint32 = 4

	// HeaderVersionMax is the newest supported header version.
	HeaderVersionMax uint32 = 4

	// prefixLen is the length of magic and version.
	prefixLen = 6

	// blobLenSize is the length of a blob size field.
	blobLenSize = 4

	// signatureLen is the length of the signature tag.
	signatureLen = 4

	// MinHeaderLen is the size of the smallest valid header: magic, version,
	// two empty blobs and the signature.
	MinHeaderLen = prefixLen + 2*blobLenSize + signatureLen
)

// Header is the parsed preamble of a container.
type Header struct {
	// Version is the header version that follows the magic bytes.
	Version uint32

	// ID is an opaque identifier chosen by the producer. By convention it is
	// never all-zero, see [Header.IDLooksValid].
	ID []byte

	// Hash is an opaque digest over the signature region.
	Hash []byte

	// Metadata is only present in headers of version [HeaderVersionMetadata]
	// and newer. Empty means absent.
	Metadata []byte

	// Signature names the codec of the payload.
	Signature Signature

	// OK is true if the stream was recognized as a container.
	OK bool
}

// IsContainer checks if header starts with the container magic bytes and a
// supported version.
func IsContainer(header []byte) bool {
	if len(header) < prefixLen || !bytes.Equal(header[:len(magicBytes)], magicBytes) {
		return false
	}
	return supportedVersion(binary.BigEndian.Uint32(header[len(magicBytes):prefixLen]))
}

func supportedVersion(v uint32) bool {
	return v >= HeaderVersionMin && v <= HeaderVersionMax
}

// HasMetadata reports whether the header version carries a metadata field.
func (h *Header) HasMetadata() bool {
	return h.Version >= HeaderVersionMetadata
}

// Codec returns the codec named by the signature. An unmapped tag yields an
// error wrapping [ErrUnknownSignature].
func (h *Header) Codec() (Codec, error) {
	return CodecFromSignature(h.Signature)
}

// IDLooksValid reports whether the identifier follows the producer convention
// of not being all-zero. The parser does not enforce this.
func (h *Header) IDLooksValid() bool {
	for _, b := range h.ID {
		if b != 0 {
			return true
		}
	}
	return false
}

// Len returns the encoded length of the header.
func (h *Header) Len() int {
	n := prefixLen + blobLenSize + len(h.ID) + blobLenSize + len(h.Hash) + signatureLen
	if h.HasMetadata() {
		n += blobLenSize + len(h.Metadata)
	}
	return n
}

// MarshalBinary encodes the header. It fails for unsupported versions, for
// metadata on a version that cannot carry it and for blobs that do not fit
// a 4-byte length.
func (h *Header) MarshalBinary() ([]byte, error) {
	if !supportedVersion(h.Version) {
		return nil, fmt.Errorf("%w: unsupported header version %d", ErrWrongFile, h.Version)
	}
	if !h.HasMetadata() && len(h.Metadata) > 0 {
		return nil, fmt.Errorf("%w: version %d", ErrMetadataUnsupported, h.Version)
	}

	buf := make([]byte, 0, h.Len())
	buf = append(buf, magicBytes...)
	buf = binary.BigEndian.AppendUint32(buf, h.Version)

	var err error
	if buf, err = appendBlob(buf, "identifier", h.ID); err != nil {
		return nil, err
	}
	if buf, err = appendBlob(buf, "hash", h.Hash); err != nil {
		return nil, err
	}
	if h.HasMetadata() {
		if buf, err = appendBlob(buf, "metadata", h.Metadata); err != nil {
			return nil, err
		}
	}
	return append(buf, h.Signature[:]...), nil
}

func appendBlob(buf []byte, field string, blob []byte) ([]byte, error) {
	if uint64(len(blob)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %s too large (%d bytes)", ErrWrongFile, field, len(blob))
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(blob)))
	return append(buf, blob...), nil
}

// WriteHeader encodes hdr and writes it to dst in one call. Write failures
// wrap [ErrFileWrite].
func WriteHeader(dst io.Writer, hdr *Header) error {
	b, err := hdr.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := dst.Write(b); err != nil {
		return fmt.Errorf("%w: cannot write header: %w", ErrFileWrite, err)
	}
	return nil
}

// ParseHeader reads a container header from the current position of src.
//
// If src does not start with the container magic and a supported version, the
// returned header has OK set to false and the error wraps [ErrNotContainer].
// A blob that declares more bytes than remain before the logical end yields
// [ErrTruncatedHeader] before anything is allocated. Failures of the medium
// wrap [ErrFileRead]. On success the cursor is positioned at the payload.
//
// The signature is not validated here, see [Header.Codec].
func ParseHeader(src Stream) (*Header, error) {
	hdr := &Header{}

	var prefix [prefixLen]byte
	if n, err := io.ReadFull(src, prefix[:]); err != nil {
		if isShortRead(err) {
			return hdr, fmt.Errorf("%w: stream too short (%d bytes)", ErrNotContainer, n)
		}
		return hdr, fmt.Errorf("%w: cannot read magic: %w", ErrFileRead, err)
	}
	if !bytes.Equal(prefix[:len(magicBytes)], magicBytes) {
		return hdr, fmt.Errorf("%w: bad magic %q", ErrNotContainer, prefix[:len(magicBytes)])
	}
	version := binary.BigEndian.Uint32(prefix[len(magicBytes):])
	if !supportedVersion(version) {
		return hdr, fmt.Errorf("%w: unsupported version %d", ErrNotContainer, version)
	}
	hdr.Version = version

	var err error
	if hdr.ID, err = readBlob(src, "identifier"); err != nil {
		return hdr, err
	}
	if hdr.Hash, err = readBlob(src, "hash"); err != nil {
		return hdr, err
	}
	if hdr.HasMetadata() {
		if hdr.Metadata, err = readBlob(src, "metadata"); err != nil {
			return hdr, err
		}
	}

	if _, err := io.ReadFull(src, hdr.Signature[:]); err != nil {
		return hdr, readFailure("signature", err)
	}

	hdr.OK = true
	return hdr, nil
}

// readBlob reads a big-endian uint32 length followed by that many bytes.
// A zero length yields nil.
func readBlob(src Stream, field string) ([]byte, error) {
	var lenBuf [blobLenSize]byte
	if _, err := io.ReadFull(src, lenBuf[:]); err != nil {
		return nil, readFailure(field+" size", err)
	}

	n := int64(binary.BigEndian.Uint32(lenBuf[:]))
	if n == 0 {
		return nil, nil
	}
	if remaining := src.Size() - src.Tell(); n > remaining {
		return nil, fmt.Errorf("%w: %s declares %d bytes, %d remaining", ErrTruncatedHeader, field, n, remaining)
	}

	blob := make([]byte, n)
	if _, err := io.ReadFull(src, blob); err != nil {
		return nil, readFailure(field, err)
	}
	return blob, nil
}

// readFailure classifies an error while reading a header field.
func readFailure(field string, err error) error {
	if isShortRead(err) {
		return fmt.Errorf("%w: missing %s", ErrTruncatedHeader, field)
	}
	return fmt.Errorf("%w: cannot read %s: %w", ErrFileRead, field, err)
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
