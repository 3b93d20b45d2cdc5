// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package telemetry publishes the telemetry data of decompress and compress
// runs to Amazon CloudWatch Events.
//
// The package provides an [EventsPublisher] whose [EventsPublisher.Hook] can be
// installed with [sc.WithTelemetryHook].
package telemetry
