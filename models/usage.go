package models

import (
	"time"

	"github.com/google/uuid"
)

const UsageWindow = 30 * 24 * time.Hour

type DailyUsage struct {
	Date  time.Time
	Count int
}

type UsageFilter struct {
	OrgId     uuid.UUID
	ProjectId *uuid.UUID
}
