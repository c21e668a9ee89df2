package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
)

type APIChecklist struct {
	Id        string         `json:"id"`
	ProjectId string         `json:"projectId"`
	Slug      string         `json:"slug"`
	Logic     string         `json:"logic"`
	Checks    []models.Check `json:"checks"`
	CreatedAt time.Time      `json:"createdAt"`
}

func AdaptChecklistDto(checklist models.Checklist) APIChecklist {
	checks := checklist.Checks
	if checks == nil {
		checks = []models.Check{}
	}
	return APIChecklist{
		Id:        checklist.Id.String(),
		ProjectId: checklist.ProjectId.String(),
		Slug:      checklist.Slug,
		Logic:     string(checklist.Logic),
		Checks:    checks,
		CreatedAt: checklist.CreatedAt,
	}
}

type CreateChecklistBodyDto struct {
	Slug   string         `json:"slug" binding:"required"`
	Logic  string         `json:"logic"`
	Checks []models.Check `json:"checks"`
}

func AdaptCreateChecklistInput(projectId uuid.UUID, body CreateChecklistBodyDto) models.CreateChecklistInput {
	return models.CreateChecklistInput{
		ProjectId: projectId,
		Slug:      body.Slug,
		Logic:     models.ChecklistLogic(body.Logic),
		Checks:    body.Checks,
	}
}
