package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/middleware"
)

func newTestContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBuildRequestAndValidate(t *testing.T) {
	tests := []struct {
		name             string
		body             string
		expectedError    bool
		expectedProduct  string
		expectedQuantity int
	}{
		{
			name:             "valid request",
			body:             `{"product_id": " cpu ", "quantity": 3}`,
			expectedProduct:  "cpu",
			expectedQuantity: 3,
		},
		{
			name:             "quantity defaults to one",
			body:             `{"product_id": "fan"}`,
			expectedProduct:  "fan",
			expectedQuantity: 1,
		},
		{
			name:          "negative quantity",
			body:          `{"product_id": "fan", "quantity": -1}`,
			expectedError: true,
		},
		{
			name:          "invalid JSON",
			body:          `{"product_id": fan}`,
			expectedError: true,
		},
		{
			name:          "empty body fails validation",
			body:          "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, tt.body)

			req, err := BuildRequestAndValidate[dto.AddToCartRequest](c)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedProduct, req.ProductID)
			assert.Equal(t, tt.expectedQuantity, req.Quantity)
		})
	}
}

func TestBuildRequestAndValidate_EmptyBodyOptionalFields(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "")

	req, err := BuildRequestAndValidate[dto.ComposeRequest](c)

	require.NoError(t, err)
	assert.Equal(t, 1, req.Quantity)
}

func TestResponseBuilder_Success(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "")
	c.Set(string(middleware.RequestIDKey), "req-1")

	NewResponseBuilder(c).SuccessCreated(gin.H{"id": "cpu"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-1", resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())
	assert.Equal(t, map[string]any{"id": "cpu"}, resp.Data)
}

func TestResponseBuilder_BindError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedDetails map[string]string
	}{
		{
			name:            "validation error names the field",
			err:             dto.ErrInvalidQuantity,
			expectedDetails: map[string]string{"quantity": "must be a positive integer"},
		},
		{
			name: "decode error has no details",
			err:  errors.New("unexpected EOF"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodPost, "")

			NewResponseBuilder(c).BindError(tt.err)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, tt.expectedDetails, resp.Details)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestResponseBuilder_DomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		attached       bool
	}{
		{"not found", model.ErrBundleNotFound, http.StatusNotFound, dto.ErrCodeNotFound, false},
		{"unprocessable", model.ErrComponentUnavailable, http.StatusUnprocessableEntity, dto.ErrCodeUnprocessable, false},
		{"internal", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "")
			c.Request.Header.Set("Accept-Language", "pt")

			NewResponseBuilder(c).DomainError(tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			assert.Equal(t, tt.attached, len(c.Errors) > 0)
		})
	}
}
