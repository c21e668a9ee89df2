package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
)

type OrganizationRepository struct {
	mock.Mock
}

func (m *OrganizationRepository) GetOrganizationById(
	ctx context.Context,
	exec repositories.Executor,
	organizationId uuid.UUID,
) (models.Organization, error) {
	args := m.Called(ctx, exec, organizationId)
	return args.Get(0).(models.Organization), args.Error(1)
}

func (m *OrganizationRepository) GetOrganizationByStripeCustomer(
	ctx context.Context,
	exec repositories.Executor,
	customerId string,
) (models.Organization, error) {
	args := m.Called(ctx, exec, customerId)
	return args.Get(0).(models.Organization), args.Error(1)
}

func (m *OrganizationRepository) UpdateOrganization(
	ctx context.Context,
	exec repositories.Executor,
	input models.UpdateOrganizationInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *OrganizationRepository) UpdateOrganizationBilling(
	ctx context.Context,
	exec repositories.Executor,
	input models.UpdateOrganizationBillingInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *OrganizationRepository) DecrementPlayAllowance(
	ctx context.Context,
	exec repositories.Executor,
	organizationId uuid.UUID,
) (int, error) {
	args := m.Called(ctx, exec, organizationId)
	return args.Int(0), args.Error(1)
}

func (m *OrganizationRepository) ResetPlayAllowances(
	ctx context.Context,
	exec repositories.Executor,
	allowances models.PlaygroundAllowances,
) (int64, error) {
	args := m.Called(ctx, exec, allowances)
	return args.Get(0).(int64), args.Error(1)
}
