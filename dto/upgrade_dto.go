package dto

import (
	"github.com/guregu/null/v5"

	"github.com/promptdeck/promptdeck-backend/models"
)

type UpgradeBodyDto struct {
	Plan   string `json:"plan" binding:"required"`
	Period string `json:"period" binding:"required"`
	Origin string `json:"origin" binding:"required"`
}

func AdaptUpgradeInput(body UpgradeBodyDto) (models.UpgradeInput, error) {
	plan, err := models.PlanFrom(body.Plan)
	if err != nil {
		return models.UpgradeInput{}, err
	}
	period, err := models.PlanPeriodFrom(body.Period)
	if err != nil {
		return models.UpgradeInput{}, err
	}
	return models.UpgradeInput{Plan: plan, Period: period, Origin: body.Origin}, nil
}

type APIUpgradeResult struct {
	Ok  bool        `json:"ok"`
	Url null.String `json:"url,omitzero"`
}

func AdaptUpgradeResultDto(result models.UpgradeResult) APIUpgradeResult {
	return APIUpgradeResult{
		Ok:  true,
		Url: null.StringFromPtr(result.CheckoutUrl),
	}
}
