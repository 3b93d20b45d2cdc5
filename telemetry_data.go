// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sc

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryData holds all telemetry data of a pipeline run.
type TelemetryData struct {
	// Codec is the codec of the container
	Codec string `json:"codec"`

	// Duration is the time the pipeline took
	Duration time.Duration `json:"duration"`

	// Errors is the number of errors during the run
	Errors int64 `json:"errors"`

	// HeaderVersion is the version of the parsed or written header
	HeaderVersion uint32 `json:"header_version"`

	// InputSize is the size of the input
	InputSize int64 `json:"input_size"`

	// LastError is the last error during the run
	LastError error `json:"last_error"`

	// Operation is either "compress" or "decompress"
	Operation string `json:"operation"`

	// OutputSize is the number of bytes written to the output
	OutputSize int64 `json:"output_size"`

	// PassThrough is true if the input was copied verbatim
	PassThrough bool `json:"pass_through"`
}

// String returns a string representation of [TelemetryData].
func (m TelemetryData) String() string {
	b, _ := json.Marshal(m)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (m TelemetryData) MarshalJSON() ([]byte, error) {
	var lastError string
	if m.LastError != nil {
		lastError = m.LastError.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		LastError string `json:"last_error"`
		*Alias
	}{
		LastError: lastError,
		Alias:     (*Alias)(&m),
	})
}

// TelemetryHook is a function type that performs operations on [TelemetryData]
// after a pipeline has finished which can be used to submit the [TelemetryData]
// to a telemetry service, for example.
type TelemetryHook func(context.Context, *TelemetryData)

// Equals returns true if the given [TelemetryData] is equal to the receiver.
// Duration and LastError are not compared.
func (td *TelemetryData) Equals(other *TelemetryData) bool {
	if td == nil && other == nil {
		return true
	}
	if td == nil || other == nil {
		return false
	}
	return td.Codec == other.Codec &&
		td.Errors == other.Errors &&
		td.HeaderVersion == other.HeaderVersion &&
		td.InputSize == other.InputSize &&
		td.Operation == other.Operation &&
		td.OutputSize == other.OutputSize &&
		td.PassThrough == other.PassThrough
}
