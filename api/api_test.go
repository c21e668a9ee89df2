package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck-backend/dto"
	"github.com/promptdeck/promptdeck-backend/infra"
	"github.com/promptdeck/promptdeck-backend/mocks"
	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/usecases"
)

const testSigningKey = "test-signing-key"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, userId, orgId string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userId,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		OrganizationId: orgId,
	})
	signed, err := token.SignedString([]byte(testSigningKey))
	require.NoError(t, err)
	return signed
}

func newTestHandler(uc usecases.Usecases) http.Handler {
	conf := Configuration{Env: "test", AppName: "test"}
	router := InitRouterMiddlewares(context.Background(), conf, nil, infra.NoopTelemetry())
	return NewServer(router, conf, uc, NewAuthentication(testSigningKey)).Handler
}

func TestAuthentication_ValidateToken(t *testing.T) {
	auth := NewAuthentication(testSigningKey)
	userId, orgId := uuid.New(), uuid.New()

	t.Run("valid token", func(t *testing.T) {
		creds, err := auth.ValidateToken(signToken(t, userId.String(), orgId.String(), time.Now().Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, models.Credentials{UserId: userId, OrganizationId: orgId}, creds)
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := auth.ValidateToken(signToken(t, userId.String(), orgId.String(), time.Now().Add(-time.Hour)))
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		_, err := NewAuthentication("other-key").ValidateToken(
			signToken(t, userId.String(), orgId.String(), time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("no organization", func(t *testing.T) {
		_, err := auth.ValidateToken(signToken(t, userId.String(), "", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})
}

func TestParseAuthorizationBearerHeader(t *testing.T) {
	token, err := ParseAuthorizationBearerHeader("Bearer abc.def")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "abc.def", "Basic abc", "Bearer "} {
		_, err := ParseAuthorizationBearerHeader(header)
		assert.ErrorIs(t, err, models.UnAuthorizedError, header)
	}
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.ErrNoAllowanceLeft, http.StatusPaymentRequired},
		{models.ErrOrgNotFound, http.StatusNotFound},
		{models.ErrUnknownModel, http.StatusBadRequest},
		{models.FieldValidationError{"slug": "required"}, http.StatusBadRequest},
		{models.ErrBillingNotConfigured, http.StatusServiceUnavailable},
		{errors.Wrap(models.ErrLLMProviderNotConfigured, "model gpt-4o"), http.StatusServiceUnavailable},
		{models.ForbiddenError, http.StatusForbidden},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		status, _ := errorStatus(c.err)
		assert.Equal(t, c.status, status, c.err.Error())
	}
}

func TestRoutes_RequireAuthentication(t *testing.T) {
	handler := newTestHandler(usecases.NewUsecases(repositories.Repositories{}))

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleListModels(t *testing.T) {
	handler := newTestHandler(usecases.NewUsecases(repositories.Repositories{}))

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString(), uuid.NewString(), time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `{"name":"gpt-4o","provider":"openai"}`)
	assert.Contains(t, w.Body.String(), `"provider":"anthropic"`)
}

func TestHandleLiveness(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	pool.ExpectPing()

	handler := newTestHandler(usecases.NewUsecases(repositories.NewRepositories(pool), usecases.WithApiVersion("v1.2.3")))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/liveness", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"v1.2.3"`)
	assert.NoError(t, pool.ExpectationsWereMet())
}

const decrementAllowanceQuery = `UPDATE org SET play_allowance = play_allowance - 1 WHERE id = \$1 AND play_allowance > \$2 RETURNING play_allowance`

func playgroundRequest(t *testing.T, orgId uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/orgs/"+orgId.String()+"/playground", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString(), orgId.String(), time.Now().Add(time.Hour)))
	return req
}

func TestHandlePlayground(t *testing.T) {
	body := `{"content":"Say {{word}}","extra":{"model":"gpt-4o","temperature":0.2},"testValues":{"word":"hello"}}`

	t.Run("streams the completion", func(t *testing.T) {
		orgId := uuid.New()
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		pool.ExpectQuery(decrementAllowanceQuery).
			WithArgs(orgId.String(), 0).
			WillReturnRows(pgxmock.NewRows([]string{"play_allowance"}).AddRow(2))

		llm := &mocks.LLMRepository{Deltas: []string{"Hel", "lo"}}
		llm.On("StreamCompletion", mock.Anything, mock.MatchedBy(func(req models.CompletionRequest) bool {
			return len(req.Messages) == 1 && req.Messages[0].Content == "Say hello" && req.Params.Model == "gpt-4o"
		})).Return(models.Completion{Content: "Hello", PromptTokens: 3, CompletionTokens: 1}, nil)

		handler := newTestHandler(usecases.NewUsecases(
			repositories.NewRepositories(pool, repositories.WithLLMRepository(llm))))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, playgroundRequest(t, orgId, body))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
		responseBody := w.Body.String()
		assert.Contains(t, responseBody, "event:chunk\ndata:{\"content\":\"Hel\"}")
		assert.Contains(t, responseBody, "event:chunk\ndata:{\"content\":\"lo\"}")
		assert.Contains(t, responseBody, "event:done\ndata:{\"content\":\"Hello\",\"usage\":{\"promptTokens\":3,\"completionTokens\":1}}")
		assert.Less(t, strings.Index(responseBody, "Hel"), strings.Index(responseBody, "event:done"))
		llm.AssertExpectations(t)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("no allowance left", func(t *testing.T) {
		orgId := uuid.New()
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		pool.ExpectQuery(decrementAllowanceQuery).
			WithArgs(orgId.String(), 0).
			WillReturnRows(pgxmock.NewRows([]string{"play_allowance"}))
		pool.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM org WHERE id = \$1 \)`).
			WithArgs(orgId.String()).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		llm := &mocks.LLMRepository{}
		handler := newTestHandler(usecases.NewUsecases(
			repositories.NewRepositories(pool, repositories.WithLLMRepository(llm))))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, playgroundRequest(t, orgId, body))

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.JSONEq(t,
			`{"message":"No allowance left today. Wait tomorrow or upgrade to continue using the playground."}`,
			w.Body.String())
		llm.AssertNotCalled(t, "StreamCompletion", mock.Anything, mock.Anything)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("provider not configured", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		llm := &mocks.LLMRepository{UnsupportedModels: []string{"gpt-4o"}}
		handler := newTestHandler(usecases.NewUsecases(
			repositories.NewRepositories(pool, repositories.WithLLMRepository(llm))))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, playgroundRequest(t, uuid.New(), body))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("other organization", func(t *testing.T) {
		llm := &mocks.LLMRepository{}
		handler := newTestHandler(usecases.NewUsecases(repositories.Repositories{LLMRepository: llm}))

		req := playgroundRequest(t, uuid.New(), body)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString(), uuid.NewString(), time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("provider error after the first chunk", func(t *testing.T) {
		orgId := uuid.New()
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		pool.ExpectQuery(decrementAllowanceQuery).
			WithArgs(orgId.String(), 0).
			WillReturnRows(pgxmock.NewRows([]string{"play_allowance"}).AddRow(0))

		llm := &mocks.LLMRepository{Deltas: []string{"Hel"}}
		llm.On("StreamCompletion", mock.Anything, mock.Anything).
			Return(models.Completion{}, assert.AnError)

		handler := newTestHandler(usecases.NewUsecases(
			repositories.NewRepositories(pool, repositories.WithLLMRepository(llm))))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, playgroundRequest(t, orgId, body))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "event:chunk")
		assert.Contains(t, w.Body.String(), "event:error")
		assert.NotContains(t, w.Body.String(), "event:done")
	})
}

func TestHandleStripeWebhook_BillingDisabled(t *testing.T) {
	handler := newTestHandler(usecases.NewUsecases(repositories.Repositories{}))

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(`{"type":"checkout.session.completed"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTimeoutMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/", timeoutMiddleware(time.Minute), func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCorsOption(t *testing.T) {
	ctx := context.Background()

	conf := corsOption(ctx, Configuration{Env: "production", AppUrl: "https://app.promptdeck.io/some/path"})
	assert.Equal(t, []string{"https://app.promptdeck.io"}, conf.AllowOrigins)

	conf = corsOption(ctx, Configuration{Env: "production"})
	assert.Empty(t, conf.AllowOrigins)
	require.NotNil(t, conf.AllowOriginFunc)
	assert.False(t, conf.AllowOriginFunc("https://evil.example"))

	conf = corsOption(ctx, Configuration{Env: "development", AppUrl: "not a url"})
	assert.Contains(t, conf.AllowOrigins, "http://localhost:5173")
}

func TestPresentError_Messages(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			"no allowance left",
			models.ErrNoAllowanceLeft,
			http.StatusPaymentRequired,
			"No allowance left today. Wait tomorrow or upgrade to continue using the playground.",
		},
		{"org not found", models.ErrOrgNotFound, http.StatusNotFound, "Org not found"},
		{
			"no price, with detail",
			errors.WithDetailf(models.ErrNoPriceFound, "lookup key %s", "pro_monthly"),
			http.StatusBadRequest,
			"No price found for this plan and period",
		},
		{
			"wrapped base error",
			errors.Wrap(models.BadParameterError, "slug is required"),
			http.StatusBadRequest,
			"slug is required",
		},
		{"bare base error", models.ForbiddenError, http.StatusForbidden, "forbidden"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ginCtx, _ := gin.CreateTestContext(w)

			assert.True(t, presentError(context.Background(), ginCtx, c.err))

			assert.Equal(t, c.status, w.Code)
			var body dto.APIErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, c.message, body.Message)
		})
	}
}
