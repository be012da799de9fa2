package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/property-management-api/internal/config"
	"github.com/yukikurage/property-management-api/internal/metrics"
	"go.uber.org/zap"
)

func TestNewEngine_CountsRecoveredPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := metrics.New()
	r := newEngine(&config.Config{GinMode: "release"}, zap.NewNop(), m, cookie.NewStore([]byte("secret")))
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(),
		`http_requests_total{method="GET",route="/boom",status_code="500"} 1`), w.Body.String())
}

func TestNewSessionStore_DefaultsToCookie(t *testing.T) {
	store, err := newSessionStore(&config.Config{SessionSecret: "secret"})
	require.NoError(t, err)
	assert.NotNil(t, store)
}
