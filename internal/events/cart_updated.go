// Package events publishes cart change notifications to RabbitMQ.
package events

import (
	"time"

	"github.com/guttosm/pack-pricing-service/internal/domain/model"
)

// CartUpdatedEventType is the EventType of CartUpdated messages.
const CartUpdatedEventType = "CartUpdated"

// CartUpdated is published after every committed cart change. Amounts are decimal strings.
type CartUpdated struct {
	EventType string          `json:"eventType"`
	SessionID string          `json:"sessionId"`
	Action    string          `json:"action"`
	Version   int             `json:"version"`
	Lines     []CartLineEvent `json:"lines"`
	Subtotal  string          `json:"subtotal"`
	Tax       string          `json:"tax"`
	Total     string          `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// CartLineEvent is one cart line inside a CartUpdated event.
type CartLineEvent struct {
	LineID       string `json:"lineId"`
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unitPrice"`
	Subtotal     string `json:"subtotal"`
	BundleID     string `json:"bundleId,omitempty"`
	ParentLineID string `json:"parentLineId,omitempty"`
}

// NewCartUpdated builds the event for cart after action.
func NewCartUpdated(cart *model.Cart, action string, at time.Time) CartUpdated {
	ev := CartUpdated{
		EventType: CartUpdatedEventType,
		SessionID: cart.SessionID,
		Action:    action,
		Version:   cart.Version,
		Lines:     make([]CartLineEvent, 0, len(cart.Lines)),
		Subtotal:  cart.Subtotal.String(),
		Tax:       cart.Tax.String(),
		Total:     cart.Total.String(),
		Timestamp: at.UTC(),
	}
	for _, l := range cart.Lines {
		ev.Lines = append(ev.Lines, CartLineEvent{
			LineID:       l.ID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice.String(),
			Subtotal:     l.Subtotal.String(),
			BundleID:     l.BundleID,
			ParentLineID: l.ParentLineID,
		})
	}
	return ev
}
