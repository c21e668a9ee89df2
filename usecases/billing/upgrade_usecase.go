package billing

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/analytics"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/usecases/security"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type UpgradeUsecase struct {
	enforceSecurity        security.EnforceSecurity
	billingRepository      repositories.BillingRepository
	executorFactory        executor_factory.ExecutorFactory
	organizationRepository organizationRepository
}

func validateOrigin(origin string) (string, error) {
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.Wrapf(models.BadParameterError, "invalid origin %q", origin)
	}
	return strings.TrimSuffix(origin, "/"), nil
}

// Upgrade either opens a checkout session, for organizations without a
// subscription, or moves the existing subscription to the new price.
func (usecase *UpgradeUsecase) Upgrade(ctx context.Context, organizationId uuid.UUID, input models.UpgradeInput) (models.UpgradeResult, error) {
	if err := usecase.enforceSecurity.WriteOrganization(organizationId); err != nil {
		return models.UpgradeResult{}, err
	}
	if !input.Plan.IsPurchasable() {
		return models.UpgradeResult{}, errors.Wrapf(models.BadParameterError, "plan %s cannot be purchased", input.Plan)
	}
	origin, err := validateOrigin(input.Origin)
	if err != nil {
		return models.UpgradeResult{}, err
	}

	price, err := usecase.billingRepository.GetPriceByLookupKey(ctx, models.PriceLookupKey(input.Plan, input.Period))
	if err != nil {
		return models.UpgradeResult{}, err
	}

	exec := usecase.executorFactory.NewExecutor()
	org, err := usecase.organizationRepository.GetOrganizationById(ctx, exec, organizationId)
	if err != nil {
		return models.UpgradeResult{}, err
	}

	logger := utils.LoggerFromContext(ctx).With("plan", input.Plan, "period", input.Period)

	if !org.HasSubscription() {
		checkoutUrl, err := usecase.billingRepository.CreateCheckoutSession(ctx, models.CheckoutSessionInput{
			OrganizationId: org.Id.String(),
			CustomerId:     org.StripeCustomer,
			PriceId:        price.Id,
			SuccessUrl:     origin + "/billing/thank-you",
			CancelUrl:      origin + "/billing",
		})
		if err != nil {
			return models.UpgradeResult{}, err
		}
		logger.InfoContext(ctx, "checkout started")
		analytics.TrackEvent(ctx, models.AnalyticsCheckoutStarted, map[string]interface{}{
			"plan":   input.Plan,
			"period": input.Period,
		})
		return models.UpgradeResult{CheckoutUrl: &checkoutUrl}, nil
	}

	subscription, err := usecase.billingRepository.GetSubscription(ctx, *org.StripeSubscription)
	if err != nil {
		return models.UpgradeResult{}, err
	}
	err = usecase.billingRepository.UpdateSubscription(ctx, models.SubscriptionUpdateInput{
		SubscriptionId: subscription.Id,
		ItemId:         subscription.ItemId,
		PriceId:        price.Id,
		Plan:           input.Plan,
		Period:         input.Period,
	})
	if err != nil {
		return models.UpgradeResult{}, err
	}

	err = usecase.organizationRepository.UpdateOrganizationBilling(ctx, exec, models.UpdateOrganizationBillingInput{
		Id:   org.Id,
		Plan: &input.Plan,
	})
	if err != nil {
		return models.UpgradeResult{}, err
	}

	logger.InfoContext(ctx, "plan upgraded", "previous_plan", org.Plan)
	analytics.TrackEvent(ctx, models.AnalyticsPlanUpgraded, map[string]interface{}{
		"plan":          input.Plan,
		"period":        input.Period,
		"previous_plan": org.Plan,
	})
	return models.UpgradeResult{}, nil
}
