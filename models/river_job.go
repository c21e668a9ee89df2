package models

import "github.com/google/uuid"

type EvaluationJobArgs struct {
	EvaluationId uuid.UUID `json:"evaluation_id"`
}

func (EvaluationJobArgs) Kind() string { return "evaluation" }

type PlaygroundAllowanceResetArgs struct{}

func (PlaygroundAllowanceResetArgs) Kind() string { return "playground_allowance_reset" }
