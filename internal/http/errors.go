package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/pack-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/i18n"
	"github.com/guttosm/pack-pricing-service/internal/repository"
	"github.com/guttosm/pack-pricing-service/internal/service"
)

// errorMapping ties a domain error to its HTTP status and message key.
type errorMapping struct {
	target error
	status int
	key    string
}

// domainErrors is checked in order with errors.Is; the first match wins.
var domainErrors = []errorMapping{
	{model.ErrInvalidQuantity, http.StatusBadRequest, i18n.ErrKeyInvalidQuantity},
	{model.ErrSessionRequired, http.StatusUnauthorized, i18n.ErrKeySessionRequired},
	{service.ErrInvalidToken, http.StatusUnauthorized, i18n.ErrKeyInvalidToken},
	{model.ErrProductNotFound, http.StatusNotFound, i18n.ErrKeyProductNotFound},
	{model.ErrBundleNotFound, http.StatusNotFound, i18n.ErrKeyBundleNotFound},
	{model.ErrLineNotFound, http.StatusNotFound, i18n.ErrKeyLineNotFound},
	{model.ErrCartConflict, http.StatusConflict, i18n.ErrKeyCartConflict},
	{model.ErrBundleConflict, http.StatusConflict, i18n.ErrKeyConflict},
	{model.ErrBundleModeLocked, http.StatusConflict, i18n.ErrKeyBundleModeLocked},
	{model.ErrUnpublishedComponent, http.StatusConflict, i18n.ErrKeyUnpublishedComponent},
	{model.ErrPublishedInBundle, http.StatusConflict, i18n.ErrKeyPublishedInBundle},
	{model.ErrComponentLineLocked, http.StatusConflict, i18n.ErrKeyComponentLineLocked},
	{model.ErrComponentUnavailable, http.StatusUnprocessableEntity, i18n.ErrKeyComponentUnavailable},
	{model.ErrProductUnavailable, http.StatusUnprocessableEntity, i18n.ErrKeyProductUnavailable},
	{model.ErrInvalidConfiguration, http.StatusUnprocessableEntity, i18n.ErrKeyInvalidConfiguration},
	{repository.ErrStoreUnavailable, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{service.ErrCartServiceStopped, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{service.ErrRepositoryNotConfigured, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
}

// statusForError maps err to a status and message key. Unknown errors are 500s.
func statusForError(err error) (int, string) {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			return m.status, m.key
		}
	}
	return http.StatusInternalServerError, i18n.ErrKeyInternalError
}
