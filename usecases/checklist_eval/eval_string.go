package checklist_eval

import (
	"fmt"
	"strings"

	"github.com/promptdeck/promptdeck-backend/models"
)

// String comparisons are case insensitive
type textParams struct {
	Value string `json:"value" validate:"required"`
}

func evalContains(params textParams, input models.CheckInput) (bool, string) {
	if strings.Contains(strings.ToLower(input.Output), strings.ToLower(params.Value)) {
		return true, ""
	}
	return false, fmt.Sprintf("output does not contain %q", params.Value)
}

func evalNotContains(params textParams, input models.CheckInput) (bool, string) {
	if !strings.Contains(strings.ToLower(input.Output), strings.ToLower(params.Value)) {
		return true, ""
	}
	return false, fmt.Sprintf("output contains %q", params.Value)
}

func evalStartsWith(params textParams, input models.CheckInput) (bool, string) {
	output := strings.TrimSpace(input.Output)
	if strings.HasPrefix(strings.ToLower(output), strings.ToLower(params.Value)) {
		return true, ""
	}
	return false, fmt.Sprintf("output does not start with %q", params.Value)
}

func evalEndsWith(params textParams, input models.CheckInput) (bool, string) {
	output := strings.TrimSpace(input.Output)
	if strings.HasSuffix(strings.ToLower(output), strings.ToLower(params.Value)) {
		return true, ""
	}
	return false, fmt.Sprintf("output does not end with %q", params.Value)
}

type noParams struct{}

// Exact match once surrounding whitespace is trimmed
func evalEqualsIdeal(_ noParams, input models.CheckInput) (bool, string) {
	if strings.TrimSpace(input.Output) == strings.TrimSpace(input.IdealOutput) {
		return true, ""
	}
	return false, "output differs from the ideal output"
}
