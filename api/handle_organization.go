package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/dto"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/usecases"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func handleGetOrganization(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orgId, err := utils.ParseUuid(c.Param("orgId"))
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewOrganizationUsecase()
		organization, err := usecase.GetOrganization(ctx, orgId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptOrganizationDto(organization))
	}
}

func handlePatchOrganization(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orgId, err := utils.ParseUuid(c.Param("orgId"))
		if presentError(ctx, c, err) {
			return
		}
		var body dto.UpdateOrganizationBodyDto
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, badRequestBody(err))
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewOrganizationUsecase()
		organization, err := usecase.UpdateOrganization(ctx, models.UpdateOrganizationInput{
			Id:   orgId,
			Name: body.Name.Ptr(),
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptOrganizationDto(organization))
	}
}

func handleListProjects(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orgId, err := utils.ParseUuid(c.Param("orgId"))
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewOrganizationUsecase()
		projects, err := usecase.ListProjects(ctx, orgId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, append([]dto.APIProject{}, utils.Map(projects, dto.AdaptProjectDto)...))
	}
}

func handleGetUsage(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orgId, err := utils.ParseUuid(c.Param("orgId"))
		if presentError(ctx, c, err) {
			return
		}
		filter := models.UsageFilter{OrgId: orgId}
		if projectIdParam := c.Query("projectId"); projectIdParam != "" {
			projectId, err := utils.ParseUuid(projectIdParam)
			if presentError(ctx, c, err) {
				return
			}
			filter.ProjectId = &projectId
		}

		usecase := usecasesWithCreds(ctx, uc).NewOrganizationUsecase()
		usage, err := usecase.GetUsage(ctx, filter)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, append([]dto.APIDailyUsage{}, utils.Map(usage, dto.AdaptDailyUsageDto)...))
	}
}

func projectIdFromQuery(c *gin.Context) (uuid.UUID, error) {
	return utils.ParseUuid(c.Query("projectId"))
}
