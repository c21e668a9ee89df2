package checklist_eval

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/promptdeck/promptdeck-backend/models"
)

type regexParams struct {
	Pattern string `json:"pattern" validate:"required"`
}

func (p regexParams) check() error {
	_, err := regexp.Compile(p.Pattern)
	return err
}

func evalRegex(params regexParams, input models.CheckInput) (bool, string) {
	re := regexp.MustCompile(params.Pattern)
	if re.MatchString(input.Output) {
		return true, ""
	}
	return false, fmt.Sprintf("output does not match %s", params.Pattern)
}

// Bounds are inclusive, in characters
type lengthParams struct {
	Min *int `json:"min" validate:"omitempty,gte=0"`
	Max *int `json:"max" validate:"omitempty,gte=0"`
}

func (p lengthParams) check() error {
	if p.Min == nil && p.Max == nil {
		return errors.New("one of min or max is required")
	}
	if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
		return errors.Newf("min %d is greater than max %d", *p.Min, *p.Max)
	}
	return nil
}

func evalLength(params lengthParams, input models.CheckInput) (bool, string) {
	length := utf8.RuneCountInString(input.Output)
	if params.Min != nil && length < *params.Min {
		return false, fmt.Sprintf("output has %d characters, less than %d", length, *params.Min)
	}
	if params.Max != nil && length > *params.Max {
		return false, fmt.Sprintf("output has %d characters, more than %d", length, *params.Max)
	}
	return true, ""
}

func evalJson(_ noParams, input models.CheckInput) (bool, string) {
	if gjson.Valid(input.Output) {
		return true, ""
	}
	return false, "output is not valid JSON"
}

type durationParams struct {
	Ms int64 `json:"ms" validate:"gt=0"`
}

func evalMaxDuration(params durationParams, input models.CheckInput) (bool, string) {
	if input.DurationMs <= params.Ms {
		return true, ""
	}
	return false, fmt.Sprintf("completion took %dms, more than %dms", input.DurationMs, params.Ms)
}
