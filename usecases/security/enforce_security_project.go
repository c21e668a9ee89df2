package security

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
)

type EnforceSecurityProject interface {
	EnforceSecurity
	ReadProject(project models.Project) error
	WriteProject(project models.Project) error
	// Checks that a project level resource (dataset, checklist, evaluation) belongs to the project
	ProjectResource(project models.Project, resourceProjectId uuid.UUID) error
}

type EnforceSecurityProjectImpl struct {
	EnforceSecurity
	Credentials models.Credentials
}

func (e *EnforceSecurityProjectImpl) ReadProject(project models.Project) error {
	return e.ReadOrganization(project.OrgId)
}

func (e *EnforceSecurityProjectImpl) WriteProject(project models.Project) error {
	return e.WriteOrganization(project.OrgId)
}

func (e *EnforceSecurityProjectImpl) ProjectResource(project models.Project, resourceProjectId uuid.UUID) error {
	return errors.Join(
		e.ReadProject(project),
		projectMatches(project.Id, resourceProjectId),
	)
}

func projectMatches(projectId, resourceProjectId uuid.UUID) error {
	if projectId != resourceProjectId {
		return errors.Wrapf(models.ForbiddenError,
			"resource of project %s does not belong to project %s", resourceProjectId, projectId)
	}
	return nil
}
