// posthog_client.go wraps posthog.Client so callers need not care whether
// analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const defaultPosthogEndpoint = "https://eu.i.posthog.com"

// AnalyticsClient is a nil-safe wrapper around posthog.Client.
type AnalyticsClient struct {
	client posthog.Client
	logger *slog.Logger
}

// NewAnalyticsClient returns an uninitialized wrapper when apiKey is empty
// or the client cannot be built; every method is then a no-op.
func NewAnalyticsClient(apiKey, endpoint string, logger *slog.Logger) *AnalyticsClient {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &AnalyticsClient{logger: logger}
	}
	if endpoint == "" {
		endpoint = defaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &AnalyticsClient{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &AnalyticsClient{client: client, logger: logger}
}

// IsInitialized reports whether events are actually sent.
func (a *AnalyticsClient) IsInitialized() bool {
	return a != nil && a.client != nil
}

// Track enqueues one event.
func (a *AnalyticsClient) Track(distinctID, event string, properties map[string]any) {
	if !a.IsInitialized() {
		return
	}
	a.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctID), slog.String("event", event))
	if err := a.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		a.logger.Warn("Failed to enqueue event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (a *AnalyticsClient) Close() {
	if !a.IsInitialized() {
		return
	}
	if err := a.client.Close(); err != nil {
		a.logger.Warn("Failed to close posthog client", slog.String("error", err.Error()))
	}
}
