package utils

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/promptdeck/promptdeck-backend/models"
)

func TestEnforceOrganizationAccess(t *testing.T) {
	orgId := uuid.New()
	creds := models.Credentials{UserId: uuid.New(), OrganizationId: orgId}

	assert.NoError(t, EnforceOrganizationAccess(creds, orgId))

	err := EnforceOrganizationAccess(creds, uuid.New())
	assert.True(t, errors.Is(err, models.ForbiddenError))

	err = EnforceOrganizationAccess(models.Credentials{UserId: uuid.New()}, orgId)
	assert.True(t, errors.Is(err, models.ForbiddenError))

	err = EnforceOrganizationAccess(creds, uuid.Nil)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, models.ForbiddenError))
}
