package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pack-pricing-service/config"
	"github.com/guttosm/pack-pricing-service/internal/events"
)

// InitializePublisher connects the cart.updated publisher. Returns nil when events are
// disabled or RabbitMQ is unreachable.
func InitializePublisher(cfg config.EventsConfig) *events.Publisher {
	if !cfg.Enabled {
		return nil
	}

	publisher, err := events.Dial(cfg.URL, cfg.Queue)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to RabbitMQ - cart events disabled")
		return nil
	}

	log.Info().Str("queue", cfg.Queue).Msg("Publishing cart events")
	return publisher
}
