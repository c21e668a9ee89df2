package analytics

import (
	"context"

	"github.com/segmentio/analytics-go/v3"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

// TrackEvent sends an event on behalf of the user of the context. It is a no-op
// when no segment client is configured or when the context carries no credentials.
func TrackEvent(ctx context.Context, event models.AnalyticsEvent, properties map[string]interface{}) {
	client := utils.SegmentClientFromContext(ctx)
	if client == nil {
		return
	}
	creds, found := utils.CredentialsFromCtx(ctx)
	if !found {
		return
	}

	props := analytics.NewProperties()
	for key, value := range properties {
		props.Set(key, value)
	}
	props.Set("organization_id", creds.OrganizationId.String())

	err := client.Enqueue(analytics.Track{
		Event:      string(event),
		UserId:     creds.UserId.String(),
		Properties: props,
		Context: &analytics.Context{
			Extra: map[string]interface{}{
				"groupId": creds.OrganizationId.String(),
			},
		},
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "could not enqueue analytics event",
			"event", event, "error", err.Error())
	}
}
