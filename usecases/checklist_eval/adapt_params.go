package checklist_eval

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/promptdeck/promptdeck-backend/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parameters needing more than struct tags implement it
type paramsChecker interface {
	check() error
}

// decodeParams converts the free form parameters of a check into their typed struct
func decodeParams[P any](raw map[string]any) (P, error) {
	var params P
	if raw == nil {
		raw = map[string]any{}
	}

	serialized, err := json.Marshal(raw)
	if err != nil {
		return params, errors.Wrap(models.BadParameterError, err.Error())
	}
	if err := json.Unmarshal(serialized, &params); err != nil {
		return params, errors.Wrap(models.BadParameterError, err.Error())
	}
	if err := validate.Struct(params); err != nil {
		return params, errors.Wrap(models.BadParameterError, err.Error())
	}
	if checker, ok := any(params).(paramsChecker); ok {
		if err := checker.check(); err != nil {
			return params, errors.Wrap(models.BadParameterError, err.Error())
		}
	}
	return params, nil
}
