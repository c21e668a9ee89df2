package billing

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type WebhookUsecase struct {
	billingRepository      repositories.BillingRepository
	executorFactory        executor_factory.ExecutorFactory
	organizationRepository organizationRepository
}

// HandleWebhook keeps the local plan in sync with the billing provider. Events
// the backend does not act upon are acknowledged and ignored.
func (usecase *WebhookUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := usecase.billingRepository.ParseWebhookEvent(payload, signature)
	if err != nil {
		return err
	}

	utils.MetricStripeWebhookEvents.With(prometheus.Labels{"type": string(event.Type)}).Inc()
	logger := utils.LoggerFromContext(ctx).With("event_id", event.Id, "event_type", event.Type)

	switch event.Type {
	case models.BillingEventCheckoutCompleted:
		return usecase.handleCheckoutCompleted(ctx, event)
	case models.BillingEventSubscriptionUpdated:
		return usecase.handleSubscriptionUpdated(ctx, event)
	case models.BillingEventSubscriptionDeleted:
		return usecase.handleSubscriptionDeleted(ctx, event)
	default:
		logger.DebugContext(ctx, "ignoring billing event")
		return nil
	}
}

func (usecase *WebhookUsecase) handleCheckoutCompleted(ctx context.Context, event models.BillingEvent) error {
	organizationId, err := uuid.Parse(event.OrganizationId)
	if err != nil {
		return errors.Wrapf(models.BadParameterError,
			"checkout session has an invalid client reference %q", event.OrganizationId)
	}

	subscription, err := usecase.billingRepository.GetSubscription(ctx, event.SubscriptionId)
	if err != nil {
		return err
	}
	plan, err := models.PlanFromLookupKey(subscription.LookupKey)
	if err != nil {
		return err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "checkout completed",
		"org_id", organizationId, "plan", plan)
	return usecase.organizationRepository.UpdateOrganizationBilling(ctx, usecase.executorFactory.NewExecutor(),
		models.UpdateOrganizationBillingInput{
			Id:                 organizationId,
			Plan:               &plan,
			StripeCustomer:     &event.CustomerId,
			StripeSubscription: &event.SubscriptionId,
			Canceled:           utils.Ptr(false),
		})
}

func (usecase *WebhookUsecase) handleSubscriptionUpdated(ctx context.Context, event models.BillingEvent) error {
	exec := usecase.executorFactory.NewExecutor()
	org, found, err := usecase.organizationOfCustomer(ctx, exec, event.CustomerId)
	if err != nil || !found {
		return err
	}

	plan, err := models.PlanFromLookupKey(event.LookupKey)
	if err != nil {
		return err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "subscription updated",
		"org_id", org.Id, "plan", plan, "previous_plan", org.Plan)
	return usecase.organizationRepository.UpdateOrganizationBilling(ctx, exec, models.UpdateOrganizationBillingInput{
		Id:   org.Id,
		Plan: &plan,
	})
}

func (usecase *WebhookUsecase) handleSubscriptionDeleted(ctx context.Context, event models.BillingEvent) error {
	exec := usecase.executorFactory.NewExecutor()
	org, found, err := usecase.organizationOfCustomer(ctx, exec, event.CustomerId)
	if err != nil || !found {
		return err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "subscription canceled", "org_id", org.Id, "previous_plan", org.Plan)
	return usecase.organizationRepository.UpdateOrganizationBilling(ctx, exec, models.UpdateOrganizationBillingInput{
		Id:                      org.Id,
		Plan:                    utils.Ptr(models.PlanFree),
		ClearStripeSubscription: true,
		Canceled:                utils.Ptr(true),
	})
}

// An unknown customer is acknowledged, retrying the event would not help
func (usecase *WebhookUsecase) organizationOfCustomer(
	ctx context.Context,
	exec repositories.Executor,
	customerId string,
) (models.Organization, bool, error) {
	org, err := usecase.organizationRepository.GetOrganizationByStripeCustomer(ctx, exec, customerId)
	if errors.Is(err, models.NotFoundError) {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "no organization for billing customer", "customer_id", customerId)
		return models.Organization{}, false, nil
	}
	if err != nil {
		return models.Organization{}, false, err
	}
	return org, true, nil
}
