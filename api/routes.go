package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/promptdeck/promptdeck-backend/usecases"
)

// The deadline is carried by the request context, usecases and repositories honor it
func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), duration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases, auth Authentication) {
	r.GET("/liveness", handleLiveness(uc))
	if conf.EnablePrometheus {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.POST("/webhooks/stripe", timeoutMiddleware(conf.DefaultTimeout), handleStripeWebhook(uc))

	router := r.Group("/", auth.Middleware)
	defaultTimeout := timeoutMiddleware(conf.DefaultTimeout)

	router.GET("/models", handleListModels)

	router.GET("/orgs/:orgId", defaultTimeout, handleGetOrganization(uc))
	router.PATCH("/orgs/:orgId", defaultTimeout, handlePatchOrganization(uc))
	router.GET("/orgs/:orgId/projects", defaultTimeout, handleListProjects(uc))
	router.GET("/orgs/:orgId/usage", defaultTimeout, handleGetUsage(uc))
	router.POST("/orgs/:orgId/upgrade", defaultTimeout, handleUpgrade(uc))
	router.POST("/orgs/:orgId/playground", timeoutMiddleware(conf.PlaygroundTimeout), handlePlayground(uc))

	router.GET("/datasets", defaultTimeout, handleListDatasets(uc))
	router.POST("/datasets", defaultTimeout, handleCreateDataset(uc))
	router.GET("/datasets/:datasetId", defaultTimeout, handleGetDataset(uc))

	router.GET("/checklists", defaultTimeout, handleListChecklists(uc))
	router.POST("/checklists", defaultTimeout, handleCreateChecklist(uc))
	router.GET("/checklists/:checklistId", defaultTimeout, handleGetChecklist(uc))

	router.GET("/evaluations", defaultTimeout, handleListEvaluations(uc))
	router.POST("/evaluations", defaultTimeout, handleCreateEvaluation(uc))
	router.GET("/evaluations/:evaluationId", defaultTimeout, handleGetEvaluation(uc))
}
