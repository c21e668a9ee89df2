package repositories

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/tidwall/gjson"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const (
	priceCacheSize          = 32
	DEFAULT_PRICE_CACHE_TTL = 10 * time.Minute
)

type BillingRepository interface {
	GetPriceByLookupKey(ctx context.Context, lookupKey string) (models.Price, error)
	CreateCheckoutSession(ctx context.Context, input models.CheckoutSessionInput) (string, error)
	GetSubscription(ctx context.Context, subscriptionId string) (models.Subscription, error)
	UpdateSubscription(ctx context.Context, input models.SubscriptionUpdateInput) error
	ParseWebhookEvent(payload []byte, signature string) (models.BillingEvent, error)
}

type StripeRepository struct {
	client        *client.API
	webhookSecret string
	prices        *expirable.LRU[string, models.Price]
}

// backends is nil outside of tests
func NewStripeRepository(secretKey, webhookSecret string, priceCacheTTL time.Duration, backends *stripe.Backends) *StripeRepository {
	if priceCacheTTL <= 0 {
		priceCacheTTL = DEFAULT_PRICE_CACHE_TTL
	}
	return &StripeRepository{
		client:        client.New(secretKey, backends),
		webhookSecret: webhookSecret,
		prices:        expirable.NewLRU[string, models.Price](priceCacheSize, nil, priceCacheTTL),
	}
}

func (repo *StripeRepository) GetPriceByLookupKey(ctx context.Context, lookupKey string) (models.Price, error) {
	if price, ok := repo.prices.Get(lookupKey); ok {
		return price, nil
	}

	params := &stripe.PriceListParams{LookupKeys: stripe.StringSlice([]string{lookupKey})}
	params.Context = ctx
	iter := repo.client.Prices.List(params)
	for iter.Next() {
		p := iter.Price()
		price := models.Price{Id: p.ID, LookupKey: p.LookupKey}
		repo.prices.Add(lookupKey, price)
		return price, nil
	}
	if err := iter.Err(); err != nil {
		return models.Price{}, errors.Wrap(err, "could not list stripe prices")
	}
	return models.Price{}, errors.WithDetailf(models.ErrNoPriceFound, "lookup key %s", lookupKey)
}

func (repo *StripeRepository) CreateCheckoutSession(ctx context.Context, input models.CheckoutSessionInput) (string, error) {
	params := &stripe.CheckoutSessionParams{
		ClientReferenceID:        stripe.String(input.OrganizationId),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionAuto)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(input.PriceId),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(input.SuccessUrl),
		CancelURL:  stripe.String(input.CancelUrl),
	}
	if input.CustomerId != nil && *input.CustomerId != "" {
		params.Customer = input.CustomerId
	}
	params.Context = ctx

	session, err := repo.client.CheckoutSessions.New(params)
	if err != nil {
		return "", errors.Wrap(err, "could not create stripe checkout session")
	}
	utils.LoggerFromContext(ctx).InfoContext(ctx, "created stripe checkout session",
		"session_id", session.ID, "org_id", input.OrganizationId)
	return session.URL, nil
}

func (repo *StripeRepository) GetSubscription(ctx context.Context, subscriptionId string) (models.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	sub, err := repo.client.Subscriptions.Get(subscriptionId, params)
	if err != nil {
		return models.Subscription{}, errors.Wrapf(err, "could not retrieve stripe subscription %s", subscriptionId)
	}
	return adaptSubscription(sub)
}

func (repo *StripeRepository) UpdateSubscription(ctx context.Context, input models.SubscriptionUpdateInput) error {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(false),
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(input.ItemId),
				Price: stripe.String(input.PriceId),
			},
		},
	}
	params.AddMetadata("plan", input.Plan.String())
	params.AddMetadata("period", string(input.Period))
	params.Context = ctx

	_, err := repo.client.Subscriptions.Update(input.SubscriptionId, params)
	return errors.Wrapf(err, "could not update stripe subscription %s", input.SubscriptionId)
}

func (repo *StripeRepository) ParseWebhookEvent(payload []byte, signature string) (models.BillingEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, repo.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return models.BillingEvent{}, errors.Wrap(models.BadParameterError, err.Error())
	}

	billingEvent := models.BillingEvent{
		Id:   event.ID,
		Type: models.BillingEventType(event.Type),
	}
	if event.Data == nil {
		return billingEvent, nil
	}

	object := gjson.ParseBytes(event.Data.Raw)
	switch billingEvent.Type {
	case models.BillingEventCheckoutCompleted:
		billingEvent.OrganizationId = object.Get("client_reference_id").String()
		billingEvent.CustomerId = expandableId(object.Get("customer"))
		billingEvent.SubscriptionId = expandableId(object.Get("subscription"))
	case models.BillingEventSubscriptionUpdated, models.BillingEventSubscriptionDeleted:
		billingEvent.SubscriptionId = object.Get("id").String()
		billingEvent.CustomerId = expandableId(object.Get("customer"))
		billingEvent.LookupKey = object.Get("items.data.0.price.lookup_key").String()
	}
	return billingEvent, nil
}

// Stripe references are either an id or the expanded object
func expandableId(value gjson.Result) string {
	if value.IsObject() {
		return value.Get("id").String()
	}
	return value.String()
}

func adaptSubscription(sub *stripe.Subscription) (models.Subscription, error) {
	subscription := models.Subscription{
		Id:       sub.ID,
		Status:   string(sub.Status),
		Metadata: sub.Metadata,
	}
	if sub.Customer != nil {
		subscription.CustomerId = sub.Customer.ID
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return models.Subscription{}, errors.Newf("stripe subscription %s has no item", sub.ID)
	}
	item := sub.Items.Data[0]
	subscription.ItemId = item.ID
	if item.Price != nil {
		subscription.LookupKey = item.Price.LookupKey
	}
	return subscription, nil
}
