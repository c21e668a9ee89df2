package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// PaymentRequiredError is rendered with the http status code 402
	PaymentRequiredError = errors.New("payment required")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Domain errors carry the message shown to the client. They are marked with the
// base error giving their status code, so errors.Is still matches the base error.
var (
	ErrOrgNotFound     = errors.Mark(errors.New("Org not found"), NotFoundError)
	ErrNoPriceFound    = errors.Mark(errors.New("No price found for this plan and period"), BadParameterError)
	ErrNoAllowanceLeft = errors.Mark(
		errors.New("No allowance left today. Wait tomorrow or upgrade to continue using the playground."),
		PaymentRequiredError)
)

// Evaluation errors
var (
	ErrNoModelSelected = errors.Mark(errors.New("at least one model must be selected"), BadParameterError)
	ErrTooManyModels   = errors.Mark(
		errors.Newf("at most %d models can be compared", MaxModelsPerEvaluation), BadParameterError)
	ErrUnknownModel = errors.Mark(errors.New("unknown model"), BadParameterError)
)

// FieldValidationError is rendered as a 400 with the map of invalid fields
type FieldValidationError map[string]string

func (e FieldValidationError) Error() string {
	return fmt.Sprintf("%v", map[string]string(e))
}

// Marks provider errors that can be retried, such as rate limits
var ErrTransientLLMError = errors.New("transient llm provider error")

// Returned by the billing endpoints when no billing provider is configured
var ErrBillingNotConfigured = errors.New("billing is not configured")

// Returned when the provider serving a model has no api key configured
var ErrLLMProviderNotConfigured = errors.New("the provider of this model is not configured")
