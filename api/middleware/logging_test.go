package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/promptdeck/promptdeck-backend/utils"
)

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(NewLogging(WithIgnorePath([]string{"/liveness"})))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.GET("/liveness", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/datasets/:datasetId", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func TestNewLogging(t *testing.T) {
	t.Run("logs the request with its route", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/datasets/abc", nil))

		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "status=404")
		assert.Contains(t, buf.String(), "route=/datasets/:datasetId")
		assert.Contains(t, buf.String(), "path=/datasets/abc")
	})

	t.Run("server errors", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Contains(t, buf.String(), "level=ERROR")
	})

	t.Run("ignored path", func(t *testing.T) {
		var buf bytes.Buffer
		r := newLoggedRouter(&buf)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/liveness", nil))

		assert.Empty(t, buf.String())
	})
}
