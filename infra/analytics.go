package infra

import (
	"log/slog"

	"github.com/segmentio/analytics-go/v3"
)

// NewSegmentClient returns nil when no write key is configured: tracking is then skipped
func NewSegmentClient(writeKey string, logger *slog.Logger) analytics.Client {
	if writeKey == "" {
		return nil
	}
	client, err := analytics.NewWithConfig(writeKey, analytics.Config{})
	if err != nil {
		logger.Warn("could not create segment client, analytics disabled", "error", err.Error())
		return nil
	}
	return client
}
