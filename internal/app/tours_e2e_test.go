//go:build e2e

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pack-pricing-service/internal/domain/dto"
	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// storefront drives the seeded application the way the shop front end does.
type storefront struct {
	t       *testing.T
	router  http.Handler
	session string
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.SeedCatalog = true
	application := InitializeApp(cfg)
	t.Cleanup(func() { application.Close(context.Background()) })

	return &storefront{t: t, router: application.Router, session: "tour-" + strings.ReplaceAll(t.Name(), "/", "-")}
}

func (s *storefront) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Session-ID", s.session)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *storefront) search(term string) []dto.ProductResponse {
	s.t.Helper()
	w := s.do(http.MethodGet, "/api/products?search="+strings.ReplaceAll(term, " ", "+"), "")
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []dto.ProductResponse `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func (s *storefront) cart(w *httptest.ResponseRecorder) model.Cart {
	s.t.Helper()
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data model.Cart `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func (s *storefront) addToCart(productID string, qty int) model.Cart {
	s.t.Helper()
	body := `{"product_id":"` + productID + `","quantity":` + decimal.NewFromInt(int64(qty)).String() + `}`
	return s.cart(s.do(http.MethodPost, "/api/cart/lines", body))
}

type expectedLine struct {
	name      string
	qty       int
	unitPrice string
	subtotal  string
	component bool
}

func assertLines(t *testing.T, cart model.Cart, want []expectedLine) {
	t.Helper()
	require.Len(t, cart.Lines, len(want))
	for i, w := range want {
		got := cart.Lines[i]
		assert.Equal(t, w.name, got.Name, "line %d", i)
		assert.Equal(t, w.qty, got.Quantity, "line %d quantity", i)
		assert.True(t, decimal.RequireFromString(w.unitPrice).Equal(got.UnitPrice), "line %d unit price %s", i, got.UnitPrice)
		assert.True(t, decimal.RequireFromString(w.subtotal).Equal(got.Subtotal), "line %d subtotal %s", i, got.Subtotal)
		assert.Equal(t, w.component, got.IsComponent, "line %d component flag", i)
		if w.component {
			assert.Equal(t, cart.Lines[0].ID, got.ParentLineID)
		}
	}
}

func findHit(t *testing.T, hits []dto.ProductResponse, name string) dto.ProductResponse {
	t.Helper()
	for _, h := range hits {
		if h.Name == name {
			return h
		}
	}
	require.Failf(t, "search hit missing", "%q not in %d hits", name, len(hits))
	return dto.ProductResponse{}
}

func TestTours_OrderLinesPerPricingMode(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		packName string
		subtotal string
		lines    []expectedLine
	}{
		{
			name:     "detailed pack with displayed component prices",
			search:   "Pack CPU",
			packName: "Pack CPU (Detailed - Displayed Components Price)",
			subtotal: "120",
			lines: []expectedLine{
				{name: "Pack CPU (Detailed - Displayed Components Price)", qty: 1, unitPrice: "0", subtotal: "0"},
				{name: "CPU", qty: 1, unitPrice: "100", subtotal: "100", component: true},
				{name: "Fan", qty: 2, unitPrice: "10", subtotal: "20", component: true},
			},
		},
		{
			name:     "detailed pack with ignored component prices",
			search:   "Pack CPU",
			packName: "Pack CPU (Detailed - Ignored Components Price)",
			subtotal: "110",
			lines: []expectedLine{
				{name: "Pack CPU (Detailed - Ignored Components Price)", qty: 1, unitPrice: "110", subtotal: "110"},
				{name: "CPU", qty: 1, unitPrice: "0", subtotal: "0", component: true},
				{name: "Fan", qty: 2, unitPrice: "0", subtotal: "0", component: true},
			},
		},
		{
			name:     "detailed pack with totalized component prices",
			search:   "Pack CPU",
			packName: "Pack CPU (Detailed - Totalized Components Price)",
			subtotal: "110",
			lines: []expectedLine{
				{name: "Pack CPU (Detailed - Totalized Components Price)", qty: 1, unitPrice: "0", subtotal: "0"},
				{name: "CPU", qty: 1, unitPrice: "91.67", subtotal: "91.67", component: true},
				{name: "Fan", qty: 2, unitPrice: "9.165", subtotal: "18.33", component: true},
			},
		},
		{
			name:     "non detailed pack",
			search:   "Non Detailed",
			packName: "Non Detailed - Totalized Components Price",
			subtotal: "160",
			lines: []expectedLine{
				{name: "Non Detailed - Totalized Components Price", qty: 1, unitPrice: "160", subtotal: "160"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := newStorefront(t)

			hit := findHit(t, shop.search(tt.search), tt.packName)
			assert.True(t, hit.IsPack)

			cart := shop.addToCart(hit.ID, 1)

			assertLines(t, cart, tt.lines)
			assert.True(t, decimal.RequireFromString(tt.subtotal).Equal(cart.Subtotal), "cart subtotal %s", cart.Subtotal)
			assert.True(t, hit.Price.Equal(cart.Subtotal), "search price %s matches cart", hit.Price)
		})
	}
}

func TestTours_UpdatePackQuantity(t *testing.T) {
	shop := newStorefront(t)

	cart := shop.addToCart("pack-cpu-displayed", 1)
	require.Len(t, cart.Lines, 3)
	packLine := cart.Lines[0].ID

	cart = shop.cart(shop.do(http.MethodPatch, "/api/cart/lines/"+packLine, `{"quantity":2}`))
	assertLines(t, cart, []expectedLine{
		{name: "Pack CPU (Detailed - Displayed Components Price)", qty: 2, unitPrice: "0", subtotal: "0"},
		{name: "CPU", qty: 2, unitPrice: "100", subtotal: "200", component: true},
		{name: "Fan", qty: 4, unitPrice: "10", subtotal: "40", component: true},
	})
	assert.Equal(t, packLine, cart.Lines[0].ID)
	assert.True(t, decimal.NewFromInt(240).Equal(cart.Subtotal))

	w := shop.do(http.MethodPatch, "/api/cart/lines/"+cart.Lines[1].ID, `{"quantity":5}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	cart = shop.addToCart("pack-cpu-displayed", 1)
	require.Len(t, cart.Lines, 3)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	cart = shop.cart(shop.do(http.MethodDelete, "/api/cart/lines/"+packLine, ""))
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Total.IsZero())
}
