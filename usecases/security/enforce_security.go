package security

import (
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

type EnforceSecurity interface {
	ReadOrganization(organizationId uuid.UUID) error
	WriteOrganization(organizationId uuid.UUID) error
}

type EnforceSecurityImpl struct {
	Credentials models.Credentials
}

func (e *EnforceSecurityImpl) ReadOrganization(organizationId uuid.UUID) error {
	return utils.EnforceOrganizationAccess(e.Credentials, organizationId)
}

// Every member of an organization can edit it and manage its billing
func (e *EnforceSecurityImpl) WriteOrganization(organizationId uuid.UUID) error {
	return utils.EnforceOrganizationAccess(e.Credentials, organizationId)
}
