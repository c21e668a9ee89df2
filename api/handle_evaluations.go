package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck-backend/dto"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/usecases"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func handleCreateEvaluation(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectId, err := projectIdFromQuery(c)
		if presentError(ctx, c, err) {
			return
		}
		var body dto.CreateEvaluationBodyDto
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, badRequestBody(err))
			return
		}
		input, err := dto.AdaptCreateEvaluationInput(projectId, body)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		evaluation, err := usecase.CreateEvaluation(ctx, input)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptEvaluationCreatedDto(evaluation))
	}
}

func handleListEvaluations(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectId, err := projectIdFromQuery(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		evaluations, err := usecase.ListEvaluations(ctx, projectId)
		if presentError(ctx, c, err) {
			return
		}
		now := time.Now()
		c.JSON(http.StatusOK, append([]dto.APIEvaluation{}, utils.Map(evaluations, func(e models.Evaluation) dto.APIEvaluation {
			return dto.AdaptEvaluationDto(e, now)
		})...))
	}
}

func handleGetEvaluation(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		evaluationId, err := utils.ParseUuid(c.Param("evaluationId"))
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewEvaluationUsecase()
		evaluation, err := usecase.GetEvaluation(ctx, evaluationId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptEvaluationWithResultsDto(evaluation, time.Now()))
	}
}
