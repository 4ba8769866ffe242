//go:build integration

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pack-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
	"github.com/guttosm/pack-pricing-service/internal/middleware"
	"github.com/guttosm/pack-pricing-service/internal/repository"
	"github.com/guttosm/pack-pricing-service/internal/service"
	"github.com/guttosm/pack-pricing-service/internal/testutil"
)

// setupMongoRouter wires the real services on a fresh database behind circuit breakers.
func setupMongoRouter(t *testing.T) (*gin.Engine, *repository.MongoDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	products := repository.NewProductRepositoryWithCircuitBreaker(repository.NewProductRepository(db), cb)
	bundles := repository.NewBundleRepositoryWithCircuitBreaker(repository.NewBundleRepository(db), cb)
	carts := repository.NewCartRepositoryWithCircuitBreaker(repository.NewCartRepository(db), cb)

	catalog := service.NewCatalogService(products, bundles)
	composer := service.NewComposerService(catalog)
	cartService := service.NewCartService(catalog, composer, carts, service.WithIdleTimeout(time.Minute))
	t.Cleanup(func() {
		cartService.Stop()
		catalog.Stop()
	})

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", CheckerFunc(db.HealthCheck))
	health.RegisterCircuitBreaker("mongodb", cb)

	return NewRouter(health, RouterConfig{
		Catalog:  catalog,
		Composer: composer,
		Carts:    cartService,
	}), db
}

func TestIntegration_PackCartFlow(t *testing.T) {
	router, _ := setupMongoRouter(t)
	session := map[string]string{middleware.SessionIDHeader: "integration-session"}

	put := func(path, body string) {
		w := doCart(router, http.MethodPut, path, body, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	put("/api/products/cpu", `{"name": "CPU", "list_price": "100", "tax_rate": "0.21", "published": true}`)
	put("/api/products/fan", `{"name": "Fan", "list_price": "10", "tax_rate": "0.21", "published": true}`)
	put("/api/bundles/pack-cpu", `{"name": "Pack CPU (Detailed - Totalized Components Price)", "mode": "detailed_totalized",
		"fixed_price": "110", "tax_rate": "0.21",
		"components": [{"product_id": "cpu", "quantity": 1}, {"product_id": "fan", "quantity": 2}]}`)

	w := doCart(router, http.MethodPost, "/api/bundles/pack-cpu/publish", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doCart(router, http.MethodPost, "/api/cart/lines", `{"product_id": "pack-cpu"}`, session)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cart model.Cart
	decodeData(t, w, &cart)
	require.Len(t, cart.Lines, 3)
	assert.Equal(t, "91.67", cart.Lines[1].Subtotal.StringFixed(2))
	assert.Equal(t, "18.33", cart.Lines[2].Subtotal.StringFixed(2))
	assert.Equal(t, "110.00", cart.Subtotal.StringFixed(2))

	w = doCart(router, http.MethodPatch, "/api/cart/lines/"+cart.Lines[1].ID, `{"quantity": 3}`, session)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doCart(router, http.MethodDelete, "/api/cart/lines/"+cart.Lines[0].ID, "", session)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &cart)
	assert.Empty(t, cart.Lines)
}

func TestIntegration_Readiness(t *testing.T) {
	router, _ := setupMongoRouter(t)

	w := doCart(router, http.MethodGet, "/readyz", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Checks["mongodb"])
	assert.Equal(t, "closed", body.Checks["mongodb_circuit"])
}
