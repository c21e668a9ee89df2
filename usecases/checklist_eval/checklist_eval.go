package checklist_eval

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/promptdeck/promptdeck-backend/models"
)

type checkEvaluator struct {
	validate func(params map[string]any) error
	evaluate func(params map[string]any, input models.CheckInput) (passed bool, details string, err error)
}

var evaluators = map[models.CheckType]checkEvaluator{
	models.CheckContains:    newCheckEvaluator(evalContains),
	models.CheckNotContains: newCheckEvaluator(evalNotContains),
	models.CheckStartsWith:  newCheckEvaluator(evalStartsWith),
	models.CheckEndsWith:    newCheckEvaluator(evalEndsWith),
	models.CheckRegex:       newCheckEvaluator(evalRegex),
	models.CheckLength:      newCheckEvaluator(evalLength),
	models.CheckJson:        newCheckEvaluator(evalJson),
	models.CheckEqualsIdeal: newCheckEvaluator(evalEqualsIdeal),
	models.CheckMaxDuration: newCheckEvaluator(evalMaxDuration),
}

func newCheckEvaluator[P any](eval func(params P, input models.CheckInput) (bool, string)) checkEvaluator {
	return checkEvaluator{
		validate: func(raw map[string]any) error {
			_, err := decodeParams[P](raw)
			return err
		},
		evaluate: func(raw map[string]any, input models.CheckInput) (bool, string, error) {
			params, err := decodeParams[P](raw)
			if err != nil {
				return false, "", err
			}
			passed, details := eval(params, input)
			return passed, details, nil
		},
	}
}

// ValidateChecklist rejects unknown logics, unknown check types and invalid check parameters
func ValidateChecklist(logic models.ChecklistLogic, checks []models.Check) error {
	if logic != models.ChecklistLogicAnd && logic != models.ChecklistLogicOr {
		return errors.Wrapf(models.BadParameterError, "unknown checklist logic %q", logic)
	}

	var errs []error
	for i, check := range checks {
		evaluator, found := evaluators[check.Type]
		if !found {
			errs = append(errs, errors.Wrapf(models.BadParameterError, "check %d: unknown check type %q", i, check.Type))
			continue
		}
		if err := evaluator.validate(check.Params); err != nil {
			errs = append(errs, errors.Wrapf(err, "check %d (%s)", i, check.Type))
		}
	}
	return errors.Join(errs...)
}

// EvaluateChecklist scores an output. An empty checklist passes. A check that
// cannot be evaluated is reported as failed.
func EvaluateChecklist(checklist models.Checklist, input models.CheckInput) (bool, []models.CheckResult) {
	results := make([]models.CheckResult, 0, len(checklist.Checks))
	for _, check := range checklist.Checks {
		results = append(results, evaluateCheck(check, input))
	}

	if len(results) == 0 {
		return true, results
	}

	if checklist.Logic == models.ChecklistLogicOr {
		for _, r := range results {
			if r.Passed {
				return true, results
			}
		}
		return false, results
	}

	for _, r := range results {
		if !r.Passed {
			return false, results
		}
	}
	return true, results
}

func evaluateCheck(check models.Check, input models.CheckInput) models.CheckResult {
	evaluator, found := evaluators[check.Type]
	if !found {
		return models.CheckResult{
			Type:    check.Type,
			Passed:  false,
			Details: fmt.Sprintf("unknown check type %q", check.Type),
		}
	}

	passed, details, err := evaluator.evaluate(check.Params, input)
	if err != nil {
		return models.CheckResult{Type: check.Type, Passed: false, Details: err.Error()}
	}
	return models.CheckResult{Type: check.Type, Passed: passed, Details: details}
}
