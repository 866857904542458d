package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSystemHandler(t *testing.T) {
	t.Run("ping responds with pong", func(t *testing.T) {
		engine := gin.New()
		h := NewSystemHandler(nil)
		engine.GET("/ping", h.Ping)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})

	t.Run("health reports ok without a database", func(t *testing.T) {
		engine := gin.New()
		h := NewSystemHandler(nil)
		engine.GET("/health", h.Health)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})
}
