package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/usecases/security"
)

type UpgradeUsecaseInterface interface {
	Upgrade(ctx context.Context, organizationId uuid.UUID, input models.UpgradeInput) (models.UpgradeResult, error)
}

type WebhookUsecaseInterface interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type organizationRepository interface {
	GetOrganizationById(ctx context.Context, exec repositories.Executor, organizationId uuid.UUID) (models.Organization, error)
	GetOrganizationByStripeCustomer(ctx context.Context, exec repositories.Executor, customerId string) (models.Organization, error)
	UpdateOrganizationBilling(ctx context.Context, exec repositories.Executor, input models.UpdateOrganizationBillingInput) error
}

func NewUpgradeUsecase(
	enforceSecurity security.EnforceSecurity,
	billingRepository repositories.BillingRepository,
	executorFactory executor_factory.ExecutorFactory,
	organizationRepository organizationRepository,
) UpgradeUsecaseInterface {
	if billingRepository == nil {
		return NewDisabledBillingUsecase()
	}
	return &UpgradeUsecase{
		enforceSecurity:        enforceSecurity,
		billingRepository:      billingRepository,
		executorFactory:        executorFactory,
		organizationRepository: organizationRepository,
	}
}

func NewWebhookUsecase(
	billingRepository repositories.BillingRepository,
	executorFactory executor_factory.ExecutorFactory,
	organizationRepository organizationRepository,
) WebhookUsecaseInterface {
	if billingRepository == nil {
		return NewDisabledBillingUsecase()
	}
	return &WebhookUsecase{
		billingRepository:      billingRepository,
		executorFactory:        executorFactory,
		organizationRepository: organizationRepository,
	}
}
