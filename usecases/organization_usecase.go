package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases/analytics"
	"github.com/promptdeck/promptdeck-backend/usecases/executor_factory"
	"github.com/promptdeck/promptdeck-backend/usecases/security"
)

type OrganizationRepository interface {
	GetOrganizationById(ctx context.Context, exec repositories.Executor, organizationId uuid.UUID) (models.Organization, error)
	UpdateOrganization(ctx context.Context, exec repositories.Executor, input models.UpdateOrganizationInput) error
}

type ProjectRepository interface {
	ListProjects(ctx context.Context, exec repositories.Executor, organizationId uuid.UUID) ([]models.Project, error)
	GetProjectById(ctx context.Context, exec repositories.Executor, projectId uuid.UUID) (models.Project, error)
	GetDailyUsage(ctx context.Context, exec repositories.Executor, filter models.UsageFilter) ([]models.DailyUsage, error)
}

type OrganizationUsecase struct {
	enforceSecurity        security.EnforceSecurity
	executorFactory        executor_factory.ExecutorFactory
	organizationRepository OrganizationRepository
	projectRepository      ProjectRepository
}

func (usecase *OrganizationUsecase) GetOrganization(ctx context.Context, organizationId uuid.UUID) (models.Organization, error) {
	if err := usecase.enforceSecurity.ReadOrganization(organizationId); err != nil {
		return models.Organization{}, err
	}
	return usecase.organizationRepository.GetOrganizationById(ctx, usecase.executorFactory.NewExecutor(), organizationId)
}

func (usecase *OrganizationUsecase) UpdateOrganization(ctx context.Context, input models.UpdateOrganizationInput) (models.Organization, error) {
	if err := usecase.enforceSecurity.WriteOrganization(input.Id); err != nil {
		return models.Organization{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return models.Organization{}, errors.Wrap(models.BadParameterError, "organization name cannot be empty")
		}
		input.Name = &name
	}

	exec := usecase.executorFactory.NewExecutor()
	if err := usecase.organizationRepository.UpdateOrganization(ctx, exec, input); err != nil {
		return models.Organization{}, err
	}
	organization, err := usecase.organizationRepository.GetOrganizationById(ctx, exec, input.Id)
	if err != nil {
		return models.Organization{}, err
	}

	analytics.TrackEvent(ctx, models.AnalyticsOrganizationUpdated, map[string]interface{}{"organization_id": organization.Id})
	return organization, nil
}

func (usecase *OrganizationUsecase) ListProjects(ctx context.Context, organizationId uuid.UUID) ([]models.Project, error) {
	if err := usecase.enforceSecurity.ReadOrganization(organizationId); err != nil {
		return nil, err
	}
	return usecase.projectRepository.ListProjects(ctx, usecase.executorFactory.NewExecutor(), organizationId)
}

// GetUsage returns the daily run counts of the organization over the usage window,
// optionally restricted to one of its projects.
func (usecase *OrganizationUsecase) GetUsage(ctx context.Context, filter models.UsageFilter) ([]models.DailyUsage, error) {
	if err := usecase.enforceSecurity.ReadOrganization(filter.OrgId); err != nil {
		return nil, err
	}

	exec := usecase.executorFactory.NewExecutor()
	if filter.ProjectId != nil {
		project, err := usecase.projectRepository.GetProjectById(ctx, exec, *filter.ProjectId)
		if err != nil {
			return nil, err
		}
		// Do not disclose the existence of projects of other organizations
		if project.OrgId != filter.OrgId {
			return nil, errors.Wrapf(models.NotFoundError, "project %s not found", project.Id)
		}
	}

	return usecase.projectRepository.GetDailyUsage(ctx, exec, filter)
}
