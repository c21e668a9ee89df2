package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/models"
)

type BillingRepository struct {
	mock.Mock
}

func (m *BillingRepository) GetPriceByLookupKey(ctx context.Context, lookupKey string) (models.Price, error) {
	args := m.Called(ctx, lookupKey)
	return args.Get(0).(models.Price), args.Error(1)
}

func (m *BillingRepository) CreateCheckoutSession(ctx context.Context, input models.CheckoutSessionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *BillingRepository) GetSubscription(ctx context.Context, subscriptionId string) (models.Subscription, error) {
	args := m.Called(ctx, subscriptionId)
	return args.Get(0).(models.Subscription), args.Error(1)
}

func (m *BillingRepository) UpdateSubscription(ctx context.Context, input models.SubscriptionUpdateInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *BillingRepository) ParseWebhookEvent(payload []byte, signature string) (models.BillingEvent, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(models.BillingEvent), args.Error(1)
}
