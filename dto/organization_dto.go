package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/promptdeck/promptdeck-backend/models"
)

type APIOrganization struct {
	Id            string    `json:"id"`
	Name          string    `json:"name"`
	Plan          string    `json:"plan"`
	PlayAllowance int       `json:"playAllowance"`
	Verified      bool      `json:"verified"`
	Canceled      bool      `json:"canceled"`
	HasSubscribed bool      `json:"hasSubscription"`
	CreatedAt     time.Time `json:"createdAt"`
}

func AdaptOrganizationDto(org models.Organization) APIOrganization {
	return APIOrganization{
		Id:            org.Id.String(),
		Name:          org.Name,
		Plan:          org.Plan.String(),
		PlayAllowance: org.PlayAllowance,
		Verified:      org.Verified,
		Canceled:      org.Canceled,
		HasSubscribed: org.HasSubscription(),
		CreatedAt:     org.CreatedAt,
	}
}

type UpdateOrganizationBodyDto struct {
	Name null.String `json:"name"`
}

type APIProject struct {
	Id        string    `json:"id"`
	OrgId     string    `json:"orgId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Activated bool      `json:"activated"`
}

func AdaptProjectDto(project models.Project) APIProject {
	return APIProject{
		Id:        project.Id.String(),
		OrgId:     project.OrgId.String(),
		Name:      project.Name,
		CreatedAt: project.CreatedAt,
		Activated: project.Activated,
	}
}

type APIDailyUsage struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func AdaptDailyUsageDto(usage models.DailyUsage) APIDailyUsage {
	return APIDailyUsage{
		Date:  usage.Date.UTC().Format(time.DateOnly),
		Count: usage.Count,
	}
}
