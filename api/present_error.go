package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck-backend/dto"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{models.BadParameterError, http.StatusBadRequest},
	{models.UnAuthorizedError, http.StatusUnauthorized},
	{models.PaymentRequiredError, http.StatusPaymentRequired},
	{models.ForbiddenError, http.StatusForbidden},
	{models.NotFoundError, http.StatusNotFound},
	{models.ConflictError, http.StatusConflict},
	{models.ErrBillingNotConfigured, http.StatusServiceUnavailable},
	{models.ErrLLMProviderNotConfigured, http.StatusServiceUnavailable},
}

func errorStatus(err error) (int, bool) {
	status, _, known := matchErrorStatus(err)
	return status, known
}

func matchErrorStatus(err error) (int, error, bool) {
	var fieldErr models.FieldValidationError
	if errors.As(err, &fieldErr) {
		return http.StatusBadRequest, nil, true
	}
	for _, s := range errorStatuses {
		if errors.Is(err, s.err) {
			return s.status, s.err, true
		}
	}
	return http.StatusInternalServerError, nil, false
}

// errorMessage drops the text of the base error a message was wrapped around:
// "slug is required: bad parameter" is shown as "slug is required"
func errorMessage(err, base error) string {
	message := err.Error()
	if base == nil || message == base.Error() {
		return message
	}
	return strings.TrimSuffix(message, ": "+base.Error())
}

// presentError writes the error response and returns true when err is not nil
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	status, base, known := matchErrorStatus(err)
	if !known {
		utils.LogAndReportSentryError(ctx, err)
		c.AbortWithStatusJSON(status, dto.APIErrorResponse{Message: "An unexpected error occurred"})
		return true
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "request error", "status", status, "error", err.Error())
	response := dto.APIErrorResponse{Message: errorMessage(err, base)}
	var fieldErr models.FieldValidationError
	if errors.As(err, &fieldErr) {
		response.Message = "invalid fields"
		response.Fields = fieldErr
	}
	c.AbortWithStatusJSON(status, response)
	return true
}

func badRequestBody(err error) error {
	return errors.Wrap(models.BadParameterError, err.Error())
}
