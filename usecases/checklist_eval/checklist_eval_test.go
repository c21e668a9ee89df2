package checklist_eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck-backend/models"
)

func check(t models.CheckType, params map[string]any) models.Check {
	return models.Check{Type: t, Params: params}
}

func TestEvaluateCheck(t *testing.T) {
	tests := []struct {
		name   string
		check  models.Check
		input  models.CheckInput
		passed bool
	}{
		{"contains", check(models.CheckContains, map[string]any{"value": "Paris"}), models.CheckInput{Output: "The capital is paris."}, true},
		{"contains missing", check(models.CheckContains, map[string]any{"value": "Rome"}), models.CheckInput{Output: "The capital is Paris."}, false},
		{"not contains", check(models.CheckNotContains, map[string]any{"value": "sorry"}), models.CheckInput{Output: "Here you go"}, true},
		{"not contains present", check(models.CheckNotContains, map[string]any{"value": "sorry"}), models.CheckInput{Output: "Sorry, I cannot"}, false},
		{"starts with", check(models.CheckStartsWith, map[string]any{"value": "yes"}), models.CheckInput{Output: "  Yes, indeed"}, true},
		{"ends with", check(models.CheckEndsWith, map[string]any{"value": "."}), models.CheckInput{Output: "Done"}, false},
		{"regex", check(models.CheckRegex, map[string]any{"pattern": `^\d{3}-\d{4}$`}), models.CheckInput{Output: "555-1234"}, true},
		{"regex no match", check(models.CheckRegex, map[string]any{"pattern": `^\d+$`}), models.CheckInput{Output: "abc"}, false},
		{"length in bounds", check(models.CheckLength, map[string]any{"min": 2, "max": 5}), models.CheckInput{Output: "héllo"}, true},
		{"length too short", check(models.CheckLength, map[string]any{"min": 10}), models.CheckInput{Output: "short"}, false},
		{"length too long", check(models.CheckLength, map[string]any{"max": float64(3)}), models.CheckInput{Output: "long"}, false},
		{"json", check(models.CheckJson, nil), models.CheckInput{Output: ` {"a": [1, 2]} `}, true},
		{"invalid json", check(models.CheckJson, nil), models.CheckInput{Output: `{"a": `}, false},
		{"equals ideal", check(models.CheckEqualsIdeal, nil), models.CheckInput{Output: "42\n", IdealOutput: " 42"}, true},
		{"differs from ideal", check(models.CheckEqualsIdeal, nil), models.CheckInput{Output: "41", IdealOutput: "42"}, false},
		{"max duration", check(models.CheckMaxDuration, map[string]any{"ms": 1000}), models.CheckInput{DurationMs: 1000}, true},
		{"max duration exceeded", check(models.CheckMaxDuration, map[string]any{"ms": 1000}), models.CheckInput{DurationMs: 1001}, false},
		{"unknown type", check("sentiment", nil), models.CheckInput{Output: "anything"}, false},
		{"invalid params", check(models.CheckContains, map[string]any{"value": 3}), models.CheckInput{Output: "3"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluateCheck(tt.check, tt.input)
			assert.Equal(t, tt.check.Type, result.Type)
			assert.Equal(t, tt.passed, result.Passed)
			if !tt.passed {
				assert.NotEmpty(t, result.Details)
			}
		})
	}
}

func TestEvaluateChecklist(t *testing.T) {
	checks := []models.Check{
		check(models.CheckContains, map[string]any{"value": "hello"}),
		check(models.CheckMaxDuration, map[string]any{"ms": 10}),
	}
	input := models.CheckInput{Output: "hello world", DurationMs: 50}

	t.Run("AND requires every check", func(t *testing.T) {
		passed, results := EvaluateChecklist(models.Checklist{Logic: models.ChecklistLogicAnd, Checks: checks}, input)
		assert.False(t, passed)
		require.Len(t, results, 2)
		assert.True(t, results[0].Passed)
		assert.False(t, results[1].Passed)
	})

	t.Run("OR requires one check", func(t *testing.T) {
		passed, _ := EvaluateChecklist(models.Checklist{Logic: models.ChecklistLogicOr, Checks: checks}, input)
		assert.True(t, passed)
	})

	t.Run("OR with every check failing", func(t *testing.T) {
		passed, _ := EvaluateChecklist(models.Checklist{
			Logic:  models.ChecklistLogicOr,
			Checks: checks,
		}, models.CheckInput{Output: "bye", DurationMs: 50})
		assert.False(t, passed)
	})

	t.Run("empty checklist passes", func(t *testing.T) {
		passed, results := EvaluateChecklist(models.Checklist{Logic: models.ChecklistLogicAnd}, input)
		assert.True(t, passed)
		assert.Empty(t, results)
	})
}

func TestValidateChecklist(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateChecklist(models.ChecklistLogicAnd, []models.Check{
			check(models.CheckContains, map[string]any{"value": "x"}),
			check(models.CheckRegex, map[string]any{"pattern": "^a+$"}),
			check(models.CheckLength, map[string]any{"max": 100}),
			check(models.CheckJson, nil),
			check(models.CheckMaxDuration, map[string]any{"ms": 2000}),
		})
		assert.NoError(t, err)
	})

	t.Run("empty checklist is valid", func(t *testing.T) {
		assert.NoError(t, ValidateChecklist(models.ChecklistLogicOr, nil))
	})

	tests := []struct {
		name   string
		logic  models.ChecklistLogic
		checks []models.Check
	}{
		{"unknown logic", "XOR", nil},
		{"unknown check type", models.ChecklistLogicAnd, []models.Check{check("sentiment", nil)}},
		{"missing value", models.ChecklistLogicAnd, []models.Check{check(models.CheckContains, nil)}},
		{"invalid regex", models.ChecklistLogicAnd, []models.Check{check(models.CheckRegex, map[string]any{"pattern": "(("})}},
		{"length without bounds", models.ChecklistLogicAnd, []models.Check{check(models.CheckLength, map[string]any{})}},
		{"length min above max", models.ChecklistLogicAnd, []models.Check{check(models.CheckLength, map[string]any{"min": 5, "max": 1})}},
		{"negative length", models.ChecklistLogicAnd, []models.Check{check(models.CheckLength, map[string]any{"min": -1})}},
		{"non positive duration", models.ChecklistLogicAnd, []models.Check{check(models.CheckMaxDuration, map[string]any{"ms": 0})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChecklist(tt.logic, tt.checks)
			assert.ErrorIs(t, err, models.BadParameterError)
		})
	}
}
