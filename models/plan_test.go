package models

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestPriceLookupKey(t *testing.T) {
	assert.Equal(t, "pro_monthly", PriceLookupKey(PlanPro, PlanPeriodMonthly))
	assert.Equal(t, "team_yearly", PriceLookupKey(PlanTeam, PlanPeriodYearly))
}

func TestPlanFromLookupKey(t *testing.T) {
	plan, err := PlanFromLookupKey("team_yearly")
	assert.NoError(t, err)
	assert.Equal(t, PlanTeam, plan)

	_, err = PlanFromLookupKey("team")
	assert.True(t, errors.Is(err, BadParameterError))

	_, err = PlanFromLookupKey("gold_monthly")
	assert.True(t, errors.Is(err, BadParameterError))
}

func TestPlanPeriodFrom(t *testing.T) {
	period, err := PlanPeriodFrom("yearly")
	assert.NoError(t, err)
	assert.Equal(t, PlanPeriodYearly, period)

	_, err = PlanPeriodFrom("weekly")
	assert.Error(t, err)
}
