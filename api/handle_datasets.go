package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck-backend/dto"
	"github.com/promptdeck/promptdeck-backend/usecases"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func handleListDatasets(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectId, err := projectIdFromQuery(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewDatasetUsecase()
		datasets, err := usecase.ListDatasets(ctx, projectId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, append([]dto.APIDataset{}, utils.Map(datasets, dto.AdaptDatasetDto)...))
	}
}

func handleGetDataset(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		datasetId, err := utils.ParseUuid(c.Param("datasetId"))
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewDatasetUsecase()
		dataset, err := usecase.GetDataset(ctx, datasetId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptDatasetDto(dataset))
	}
}

func handleCreateDataset(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projectId, err := projectIdFromQuery(c)
		if presentError(ctx, c, err) {
			return
		}
		var body dto.CreateDatasetBodyDto
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, badRequestBody(err))
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewDatasetUsecase()
		dataset, err := usecase.CreateDataset(ctx, dto.AdaptCreateDatasetInput(projectId, body))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptDatasetDto(dataset))
	}
}
