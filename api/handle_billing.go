package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck-backend/dto"
	"github.com/promptdeck/promptdeck-backend/usecases"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func handleUpgrade(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orgId, err := utils.ParseUuid(c.Param("orgId"))
		if presentError(ctx, c, err) {
			return
		}
		var body dto.UpgradeBodyDto
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, badRequestBody(err))
			return
		}
		input, err := dto.AdaptUpgradeInput(body)
		if presentError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewUpgradeUsecase()
		result, err := usecase.Upgrade(ctx, orgId, input)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptUpgradeResultDto(result))
	}
}

// Called by Stripe without user credentials, the payload signature authenticates it
func handleStripeWebhook(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			presentError(ctx, c, badRequestBody(err))
			return
		}

		usecase := uc.NewBillingWebhookUsecase()
		err = usecase.HandleWebhook(ctx, payload, c.GetHeader("Stripe-Signature"))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
