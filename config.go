// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"context"
	"io"
	"log/slog"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config provides a configuration struct and options to adjust the configuration.
//
// The configuration struct holds all configuration options for the decompress and
// compress pipelines. The configuration options can be adjusted using the option
// pattern style.
//
// The default configuration rejects input that is not a container and limits
// input and output size to prevent resource exhaustion.
type Config struct {
	// headerVersion is the header version written by the compress pipeline,
	// unless the caller supplied header defines one
	headerVersion uint32

	// logger stream for the pipelines
	logger logger

	// lzmaDictCap is the dictionary capacity of the lzma encoder
	lzmaDictCap int

	// maxInputSize is the maximum size of the input.
	// Set value to -1 to disable the check.
	maxInputSize int64

	// maxOutputSize is the maximum size of the output. It also bounds the
	// memory of the zstandard decoder.
	// Set value to -1 to disable the check.
	maxOutputSize int64

	// passThrough copies input that is not a container verbatim to the output
	// instead of failing
	passThrough bool

	// telemetryHook is a function to consume telemetry data after a pipeline finished
	// Important: do not adjust this value after a pipeline started
	telemetryHook TelemetryHook

	// trailerSize is the number of bytes at the end of the input that are
	// excluded from the container, e.g., an appended signature footer
	trailerSize int64

	// transcoders overrides the codec strategies
	transcoders map[Codec]Transcoder

	// zstdLevel is the zstandard compression level
	zstdLevel int
}

// CheckInputSize checks if size exceeds the configured maximum. If the maximum is
// exceeded, a [ErrMaxInputSizeExceeded] error is returned.
func (c *Config) CheckInputSize(size int64) error {

	// check if disabled
	if c.MaxInputSize() == -1 {
		return nil
	}

	// check value
	if size > c.MaxInputSize() {
		return ErrMaxInputSizeExceeded
	}
	return nil
}

// CheckOutputSize checks if size exceeds the configured maximum. If the maximum is
// exceeded, a [ErrMaxOutputSizeExceeded] error is returned.
func (c *Config) CheckOutputSize(size int64) error {

	// check if disabled
	if c.MaxOutputSize() == -1 {
		return nil
	}

	// check value
	if size > c.MaxOutputSize() {
		return ErrMaxOutputSizeExceeded
	}
	return nil
}

// HeaderVersion returns the header version written by the compress pipeline.
func (c *Config) HeaderVersion() uint32 {
	return c.headerVersion
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	return c.logger
}

// LZMADictCap returns the dictionary capacity of the lzma encoder.
func (c *Config) LZMADictCap() int {
	return c.lzmaDictCap
}

// MaxInputSize returns the maximum size of the input.
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// MaxOutputSize returns the maximum size of the output.
func (c *Config) MaxOutputSize() int64 {
	return c.maxOutputSize
}

// PassThrough returns true if input that is not a container should be copied
// verbatim instead of being rejected.
func (c *Config) PassThrough() bool {
	return c.passThrough
}

// TelemetryHook returns the telemetry hook.
func (c *Config) TelemetryHook() TelemetryHook {
	if c.telemetryHook == nil {
		return func(ctx context.Context, d *TelemetryData) {
			// noop
		}
	}
	return c.telemetryHook
}

// TrailerSize returns the number of bytes at the end of the input that are not
// part of the container.
func (c *Config) TrailerSize() int64 {
	return c.trailerSize
}

// Transcoder returns the strategy for codec. A transcoder registered with
// [WithTranscoder] takes precedence over the built-in one. It returns nil for
// an unknown codec.
func (c *Config) Transcoder(codec Codec) Transcoder {
	if t, ok := c.transcoders[codec]; ok {
		return t
	}
	switch codec {
	case CodecNone:
		return noneTranscoder{}
	case CodecLZMA:
		return &lzmaTranscoder{dictCap: c.LZMADictCap()}
	case CodecLZHAM:
		return lzhamTranscoder{}
	case CodecZstd:
		return &zstdTranscoder{level: c.ZstdLevel(), maxMemory: c.MaxOutputSize()}
	}
	return nil
}

// ZstdLevel returns the zstandard compression level.
func (c *Config) ZstdLevel() int {
	return c.zstdLevel
}

const (
	defaultHeaderVersion = HeaderVersionMax // newest header, carries metadata
	defaultLZMADictCap   = 1 << 18          // 256 Kb
	defaultMaxInputSize  = 1 << (10 * 3)    // 1 Gb
	defaultMaxOutputSize = 1 << (10 * 3)    // 1 Gb
	defaultPassThrough   = false            // reject foreign input
	defaultTrailerSize   = 0                // no trailer
	defaultZstdLevel     = 3                // zstd default level
)

var (
	// slog to discard
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	// no operation telemetry hook
	defaultTelemetryHook = func(ctx context.Context, d *TelemetryData) {
		// noop
	}
)

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style.
func NewConfig(opts ...ConfigOption) *Config {

	// setup default values
	config := &Config{
		headerVersion: defaultHeaderVersion,
		logger:        defaultLogger,
		lzmaDictCap:   defaultLZMADictCap,
		maxInputSize:  defaultMaxInputSize,
		maxOutputSize: defaultMaxOutputSize,
		passThrough:   defaultPassThrough,
		telemetryHook: defaultTelemetryHook,
		trailerSize:   defaultTrailerSize,
		zstdLevel:     defaultZstdLevel,
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// WithHeaderVersion options pattern function to set the header version written
// by the compress pipeline.
func WithHeaderVersion(version uint32) ConfigOption {
	return func(c *Config) {
		c.headerVersion = version
	}
}

// WithLogger options pattern function to set a custom logger.
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithLZMADictCap options pattern function to set the dictionary capacity of
// the lzma encoder.
func WithLZMADictCap(dictCap int) ConfigOption {
	return func(c *Config) {
		c.lzmaDictCap = dictCap
	}
}

// WithMaxInputSize options pattern function to set the maximum input size. (-1 to disable check)
func WithMaxInputSize(maxInputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxInputSize = maxInputSize
	}
}

// WithMaxOutputSize options pattern function to set the maximum output size. (-1 to disable check)
func WithMaxOutputSize(maxOutputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxOutputSize = maxOutputSize
	}
}

// WithPassThrough options pattern function to copy input that is not a
// container verbatim to the output instead of failing with [ErrWrongFile].
func WithPassThrough(enable bool) ConfigOption {
	return func(c *Config) {
		c.passThrough = enable
	}
}

// WithTelemetryHook options pattern function to set a [TelemetryHook], which is
// called after every pipeline run.
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}

// WithTrailerSize options pattern function to exclude the last n bytes of the
// input from the container.
func WithTrailerSize(n int64) ConfigOption {
	return func(c *Config) {
		c.trailerSize = n
	}
}

// WithTranscoder options pattern function to replace the strategy of codec,
// e.g., to plug in an LZHAM implementation.
func WithTranscoder(codec Codec, t Transcoder) ConfigOption {
	return func(c *Config) {
		if c.transcoders == nil {
			c.transcoders = make(map[Codec]Transcoder)
		}
		c.transcoders[codec] = t
	}
}

// WithZstdLevel options pattern function to set the zstandard compression level.
func WithZstdLevel(level int) ConfigOption {
	return func(c *Config) {
		c.zstdLevel = level
	}
}
