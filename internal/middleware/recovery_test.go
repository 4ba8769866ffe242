package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.POST("/cart/lines", func(c *gin.Context) {
		var lines []int
		_ = lines[3]
	})
	router.GET("/cart", func(c *gin.Context) {
		c.String(http.StatusOK, "cart")
	})

	tests := []struct {
		name     string
		method   string
		path     string
		locale   string
		status   int
		message  string
		plainOut string
	}{
		{name: "panic becomes translated 500", method: http.MethodPost, path: "/cart/lines", status: http.StatusInternalServerError, message: "An unexpected error occurred"},
		{name: "portuguese client", method: http.MethodPost, path: "/cart/lines", locale: "pt-BR,pt;q=0.9", status: http.StatusInternalServerError, message: "Ocorreu um erro inesperado"},
		{name: "healthy handler untouched", method: http.MethodGet, path: "/cart", status: http.StatusOK, plainOut: "cart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set(RequestIDHeader, "req-"+tt.name)
			if tt.locale != "" {
				req.Header.Set("Accept-Language", tt.locale)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.plainOut != "" {
				assert.Equal(t, tt.plainOut, w.Body.String())
				return
			}

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeInternal, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, "req-"+tt.name, resp.RequestID)
		})
	}
}
