package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck-backend/dto"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/usecases"
	"github.com/promptdeck/promptdeck-backend/utils"
)

const (
	sseEventChunk = "chunk"
	sseEventDone  = "done"
	sseEventError = "error"
)

// eventStream writes server-sent events. The status and headers are only sent
// with the first event, so that earlier errors can still use a status code.
type eventStream struct {
	c       *gin.Context
	started bool
}

func (s *eventStream) send(event string, data any) error {
	if err := s.c.Request.Context().Err(); err != nil {
		return err
	}
	if !s.started {
		s.started = true
		header := s.c.Writer.Header()
		header.Set("Content-Type", "text/event-stream")
		header.Set("Cache-Control", "no-cache")
		header.Set("Connection", "keep-alive")
		header.Set("X-Accel-Buffering", "no")
		s.c.Status(http.StatusOK)
	}
	s.c.SSEvent(event, data)
	s.c.Writer.Flush()
	return nil
}

func handlePlayground(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orgId, err := utils.ParseUuid(c.Param("orgId"))
		if presentError(ctx, c, err) {
			return
		}
		var body dto.PlaygroundBodyDto
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, badRequestBody(err))
			return
		}

		stream := &eventStream{c: c}
		usecase := usecasesWithCreds(ctx, uc).NewPlaygroundUsecase()
		completion, err := usecase.RunCompletion(ctx, dto.AdaptPlaygroundInput(orgId, body), func(delta string) error {
			return stream.send(sseEventChunk, dto.APIPlaygroundChunk{Content: delta})
		})
		if err != nil && !stream.started {
			presentError(ctx, c, err)
			return
		}
		if err != nil {
			utils.LogAndReportSentryError(ctx, err)
			_ = stream.send(sseEventError, dto.APIErrorResponse{Message: "The completion was interrupted"})
			return
		}
		_ = stream.send(sseEventDone, dto.AdaptPlaygroundDoneDto(completion))
	}
}

func handleListModels(c *gin.Context) {
	c.JSON(http.StatusOK, utils.Map(models.ModelCatalog(), dto.AdaptModelDto))
}
