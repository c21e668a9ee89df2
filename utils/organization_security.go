package utils

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
)

func EnforceOrganizationAccess(creds models.Credentials, organizationId uuid.UUID) error {
	if organizationId == uuid.Nil {
		return errors.New("empty organization id passed to EnforceOrganizationAccess")
	}
	if creds.OrganizationId == uuid.Nil {
		return errors.Wrap(models.ForbiddenError, "credentials does not grant access to any organization")
	}
	if creds.OrganizationId != organizationId {
		return errors.Wrapf(models.ForbiddenError, "credentials does not grant access to organization %s", organizationId)
	}
	return nil
}
