package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Error utils.APIError `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) utils.APIError {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func actorEngine(tokens *utils.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(tokens)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, actor)
	})
	engine.GET("/whoami", chain...)
	return engine
}

func get(engine *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("mw-secret", time.Hour)
	engine := actorEngine(tokens)

	t.Run("guide token populates actor", func(t *testing.T) {
		guideID := int64(9)
		token, err := tokens.GenerateAccessToken(4, "mira", models.RoleGuide, &guideID)
		require.NoError(t, err)

		w := get(engine, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)

		var actor models.Actor
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actor))
		assert.Equal(t, int64(4), actor.UserID)
		assert.Equal(t, "mira", actor.Username)
		assert.Equal(t, models.RoleGuide, actor.Role)
		require.NotNil(t, actor.GuideID)
		assert.Equal(t, int64(9), *actor.GuideID)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(1, "root", models.RoleAdmin, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, get(engine, "bearer "+token).Code)
	})

	rejected := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"extra parts", "Bearer a b"},
		{"bad token", "Bearer nope"},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			w := get(engine, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, utils.ErrCodeUnauthorized, decodeError(t, w).Code)
		})
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("mw-secret", time.Hour)
	engine := actorEngine(tokens, RoleAuthMiddleware(models.RoleAdmin, models.RoleStandard))

	standard, err := tokens.GenerateAccessToken(2, "desk", models.RoleStandard, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(engine, "Bearer "+standard).Code)

	guideID := int64(3)
	guide, err := tokens.GenerateAccessToken(5, "mira", models.RoleGuide, &guideID)
	require.NoError(t, err)
	w := get(engine, "Bearer "+guide)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, utils.ErrCodeForbidden, decodeError(t, w).Code)

	t.Run("without auth middleware", func(t *testing.T) {
		bare := gin.New()
		bare.GET("/whoami", RoleAuthMiddleware(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
		w := get(bare, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestActorFromContextWithoutClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := ActorFromContext(c)
	assert.False(t, ok)

	c.Set(ContextUserID, "not-an-id")
	_, ok = ActorFromContext(c)
	assert.False(t, ok)
}

func TestRateLimit(t *testing.T) {
	_, err := RateLimit("ten per minute")
	require.Error(t, err)

	limit, err := RateLimit("2-M")
	require.NoError(t, err)

	engine := gin.New()
	engine.POST("/login", limit, func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{}"))
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:4000").Code)
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:4001").Code)

	w := send("10.0.0.1:4002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, utils.ErrCodeTooManyRequests, decodeError(t, w).Code)

	assert.Equal(t, http.StatusNoContent, send("10.0.0.2:4000").Code, "limit is per client")
}

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type payload struct {
		Reporter string `json:"reporter" binding:"required,reporter"`
		Status   string `json:"status" binding:"omitempty,sale_status"`
	}

	engine := gin.New()
	engine.POST("/bind", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := []struct {
		body string
		want int
	}{
		{`{"reporter":"store"}`, http.StatusOK},
		{`{"reporter":" Guide ","status":"pending"}`, http.StatusOK},
		{`{"reporter":"captain"}`, http.StatusBadRequest},
		{`{"reporter":"store","status":"refunded"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.body)
	}
}
