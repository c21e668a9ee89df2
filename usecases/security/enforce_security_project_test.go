package security

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/promptdeck/promptdeck-backend/models"
)

func newProjectEnforcer(orgId uuid.UUID) EnforceSecurityProject {
	creds := models.Credentials{UserId: uuid.New(), OrganizationId: orgId}
	return &EnforceSecurityProjectImpl{
		EnforceSecurity: &EnforceSecurityImpl{Credentials: creds},
		Credentials:     creds,
	}
}

func TestReadOrganization(t *testing.T) {
	orgId := uuid.New()
	enforcer := &EnforceSecurityImpl{Credentials: models.Credentials{OrganizationId: orgId}}

	assert.NoError(t, enforcer.ReadOrganization(orgId))
	assert.ErrorIs(t, enforcer.ReadOrganization(uuid.New()), models.ForbiddenError)
	assert.ErrorIs(t, enforcer.WriteOrganization(uuid.New()), models.ForbiddenError)
}

func TestReadProject(t *testing.T) {
	orgId := uuid.New()
	enforcer := newProjectEnforcer(orgId)

	t.Run("own project", func(t *testing.T) {
		assert.NoError(t, enforcer.ReadProject(models.Project{Id: uuid.New(), OrgId: orgId}))
	})

	t.Run("project of another organization", func(t *testing.T) {
		err := enforcer.ReadProject(models.Project{Id: uuid.New(), OrgId: uuid.New()})
		assert.ErrorIs(t, err, models.ForbiddenError)
	})
}

func TestProjectResource(t *testing.T) {
	orgId := uuid.New()
	enforcer := newProjectEnforcer(orgId)
	project := models.Project{Id: uuid.New(), OrgId: orgId}

	assert.NoError(t, enforcer.ProjectResource(project, project.Id))

	err := enforcer.ProjectResource(project, uuid.New())
	assert.ErrorIs(t, err, models.ForbiddenError)
}
