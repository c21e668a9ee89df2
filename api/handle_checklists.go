package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck-backend/dto"
	"github.com/promptdeck/promptdeck-backend/usecases"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func handleListChecklists(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectId, err := projectIdFromQuery(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewChecklistUsecase()
		checklists, err := usecase.ListChecklists(ctx, projectId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, append([]dto.APIChecklist{}, utils.Map(checklists, dto.AdaptChecklistDto)...))
	}
}

func handleGetChecklist(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		checklistId, err := utils.ParseUuid(c.Param("checklistId"))
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewChecklistUsecase()
		checklist, err := usecase.GetChecklist(ctx, checklistId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptChecklistDto(checklist))
	}
}

func handleCreateChecklist(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectId, err := projectIdFromQuery(c)
		if presentError(ctx, c, err) {
			return
		}
		var body dto.CreateChecklistBodyDto
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, badRequestBody(err))
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewChecklistUsecase()
		checklist, err := usecase.CreateChecklist(ctx, dto.AdaptCreateChecklistInput(projectId, body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptChecklistDto(checklist))
	}
}
