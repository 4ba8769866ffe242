// Package main is the entry point for the pack pricing service.
//
// @title           Pack Pricing Service API
// @version         1.0.0
// @description     Catalog lookup, pack composition and session carts.
//
//	Packs expand into order lines according to their pricing mode: detailed with displayed,
//	ignored or totalized component prices, or non detailed.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/pack-pricing-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Admin API key. Required on catalog writes when authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Session token from POST /api/sessions, as "Bearer <token>".
//
// @tag.name        Catalog
// @tag.description Products, packs and composition previews
//
// @tag.name        Cart
// @tag.description Session cart operations
//
// @tag.name        Sessions
// @tag.description Cart session tokens
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pack-pricing-service/config"
	_ "github.com/guttosm/pack-pricing-service/docs" // swagger docs
	"github.com/guttosm/pack-pricing-service/internal/app"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port)

	err := server.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	application.Close(ctx)
	cancel()

	if err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
