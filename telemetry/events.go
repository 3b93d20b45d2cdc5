// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package telemetry

//go:generate mockgen -source=events.go -destination=mock_events_api_test.go -package=telemetry_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchevents"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchevents/types"
	"github.com/hashicorp/go-sc"
)

const (
	// DefaultSource is the event source if none is configured
	DefaultSource = "hashicorp.go-sc"

	// DetailType is the detail type of every published event
	DetailType = "SC Pipeline Run"
)

// EventsAPI is the part of the CloudWatch Events client that is used by the
// [EventsPublisher].
type EventsAPI interface {
	PutEvents(ctx context.Context, params *cloudwatchevents.PutEventsInput, optFns ...func(*cloudwatchevents.Options)) (*cloudwatchevents.PutEventsOutput, error)
}

// PublisherOption is a function pointer to implement the option pattern
type PublisherOption func(*EventsPublisher)

// EventsPublisher sends [sc.TelemetryData] as events with the JSON
// representation of the data as detail.
type EventsPublisher struct {
	api      EventsAPI
	eventBus string
	logger   *slog.Logger
	source   string
}

// now is a function point that returns time.Now to the caller.
var now = time.Now

// NewEventsPublisher creates a publisher that sends events with api.
func NewEventsPublisher(api EventsAPI, opts ...PublisherOption) *EventsPublisher {
	p := &EventsPublisher{
		api:    api,
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})),
		source: DefaultSource,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithEventBus options pattern function to publish to the event bus with the
// given name or ARN instead of the default one.
func WithEventBus(name string) PublisherOption {
	return func(p *EventsPublisher) {
		p.eventBus = name
	}
}

// WithLogger options pattern function to set the logger that reports failed
// publications of [EventsPublisher.Hook].
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *EventsPublisher) {
		p.logger = logger
	}
}

// WithSource options pattern function to set the event source.
func WithSource(source string) PublisherOption {
	return func(p *EventsPublisher) {
		if source != "" {
			p.source = source
		}
	}
}

// Publish sends td as a single event.
func (p *EventsPublisher) Publish(ctx context.Context, td *sc.TelemetryData) error {
	if td == nil {
		return fmt.Errorf("no telemetry data")
	}

	entry := types.PutEventsRequestEntry{
		Detail:     aws.String(td.String()),
		DetailType: aws.String(DetailType),
		Source:     aws.String(p.source),
		Time:       aws.Time(now()),
	}
	if p.eventBus != "" {
		entry.EventBusName = aws.String(p.eventBus)
	}

	out, err := p.api.PutEvents(ctx, &cloudwatchevents.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{entry},
	})
	if err != nil {
		return fmt.Errorf("cannot put event: %w", err)
	}

	// the call succeeds even if entries are rejected
	var failed []string
	for _, e := range out.Entries {
		if e.ErrorCode != nil {
			failed = append(failed, fmt.Sprintf("%s: %s", aws.ToString(e.ErrorCode), aws.ToString(e.ErrorMessage)))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("event rejected: %s", strings.Join(failed, ", "))
	}
	return nil
}

// Hook returns a [sc.TelemetryHook] that publishes the data of every run.
// Failures are logged and otherwise ignored.
func (p *EventsPublisher) Hook() sc.TelemetryHook {
	return func(ctx context.Context, td *sc.TelemetryData) {
		if err := p.Publish(ctx, td); err != nil {
			p.logger.Error("cannot publish telemetry", "error", err)
		}
	}
}

// NewEventsClient creates a CloudWatch Events client from the shared AWS
// configuration of the environment. An empty region keeps the configured one.
func NewEventsClient(ctx context.Context, region string) (*cloudwatchevents.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot load aws config: %w", err)
	}
	return cloudwatchevents.NewFromConfig(cfg), nil
}
