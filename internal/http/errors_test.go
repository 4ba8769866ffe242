package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/pack-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/i18n"
	"github.com/guttosm/pack-pricing-service/internal/repository"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedKey    string
	}{
		{"validation", &dto.ValidationError{Field: "limit", Message: "bad"}, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
		{"invalid quantity", model.ErrInvalidQuantity, http.StatusBadRequest, i18n.ErrKeyInvalidQuantity},
		{"wrapped product not found", fmt.Errorf("add cpu: %w", model.ErrProductNotFound), http.StatusNotFound, i18n.ErrKeyProductNotFound},
		{"line not found", model.ErrLineNotFound, http.StatusNotFound, i18n.ErrKeyLineNotFound},
		{"component line locked", model.ErrComponentLineLocked, http.StatusConflict, i18n.ErrKeyComponentLineLocked},
		{"cart conflict", model.ErrCartConflict, http.StatusConflict, i18n.ErrKeyCartConflict},
		{"mode locked", model.ErrBundleModeLocked, http.StatusConflict, i18n.ErrKeyBundleModeLocked},
		{"invalid configuration", fmt.Errorf("pack-broken: %w", model.ErrInvalidConfiguration), http.StatusUnprocessableEntity, i18n.ErrKeyInvalidConfiguration},
		{"component unavailable", model.ErrComponentUnavailable, http.StatusUnprocessableEntity, i18n.ErrKeyComponentUnavailable},
		{"store down", fmt.Errorf("load cart: %w", repository.ErrStoreUnavailable), http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
		{"breaker open", circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, i18n.ErrKeyInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, key := statusForError(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedKey, key)
		})
	}
}
