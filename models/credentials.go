package models

import "github.com/google/uuid"

type Credentials struct {
	UserId         uuid.UUID
	OrganizationId uuid.UUID
}
