package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Id        uuid.UUID
	OrgId     uuid.UUID
	Name      string
	CreatedAt time.Time
	// A project is activated as soon as it has recorded one run
	Activated bool
}

type Run struct {
	Id        uuid.UUID
	ProjectId uuid.UUID
	Type      string
	CreatedAt time.Time
}
