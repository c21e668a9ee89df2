package models

import (
	"time"

	"github.com/google/uuid"
)

type ChecklistLogic string

const (
	ChecklistLogicAnd ChecklistLogic = "AND"
	ChecklistLogicOr  ChecklistLogic = "OR"
)

type CheckType string

const (
	CheckContains    CheckType = "contains"
	CheckNotContains CheckType = "not_contains"
	CheckRegex       CheckType = "regex"
	CheckStartsWith  CheckType = "starts_with"
	CheckEndsWith    CheckType = "ends_with"
	CheckLength      CheckType = "length"
	CheckJson        CheckType = "json"
	CheckEqualsIdeal CheckType = "equals_ideal"
	CheckMaxDuration CheckType = "max_duration"
)

type Check struct {
	Type   CheckType      `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

type Checklist struct {
	Id        uuid.UUID
	ProjectId uuid.UUID
	Slug      string
	Logic     ChecklistLogic
	Checks    []Check
	CreatedAt time.Time
}

type CreateChecklistInput struct {
	ProjectId uuid.UUID
	Slug      string
	Logic     ChecklistLogic
	Checks    []Check
}

type CheckResult struct {
	Type    CheckType `json:"type"`
	Passed  bool      `json:"passed"`
	Details string    `json:"details,omitempty"`
}

// What a checklist is evaluated against
type CheckInput struct {
	Output      string
	IdealOutput string
	DurationMs  int64
}
