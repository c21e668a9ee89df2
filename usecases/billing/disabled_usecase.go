package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
)

type DisabledBillingUsecase struct{}

func NewDisabledBillingUsecase() DisabledBillingUsecase {
	return DisabledBillingUsecase{}
}

func (DisabledBillingUsecase) Upgrade(ctx context.Context, organizationId uuid.UUID, input models.UpgradeInput) (models.UpgradeResult, error) {
	return models.UpgradeResult{}, models.ErrBillingNotConfigured
}

func (DisabledBillingUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return models.ErrBillingNotConfigured
}
