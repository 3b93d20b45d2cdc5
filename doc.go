// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package sc identifies and transcodes Supercell ".sc" containers.
//
// A container starts with the magic bytes "SC" and a version, followed by an
// opaque identifier, a hash, optional metadata and a 4-byte signature that
// names the codec of the payload: none, LZMA, LZHAM or zstandard.
//
// Input and output are [Stream] values, either backed by a file ([FileStream])
// or by memory ([BufferStream]). A stream has a logical end that can exclude a
// trailing footer from the payload view, see [Stream.SetEndOffset].
//
// [Decompress] and [Compress] run the pipelines. Configuration is done using the
// [Config], which sets the logger, the telemetry hook, size limits and the
// policy for input that is not a container. Failures are classified by
// [DecompressorError] and [CodecError].
package sc
