package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/kinoapp/checkout/internal/config"
	"github.com/kinoapp/checkout/internal/database"
	"github.com/kinoapp/checkout/internal/handler"
	"github.com/kinoapp/checkout/internal/repository"
	"github.com/kinoapp/checkout/internal/router"
	"github.com/kinoapp/checkout/internal/store"
	"github.com/kinoapp/checkout/internal/upstream"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis unavailable: booking sessions cannot be persisted")
	}
	sessions := store.NewSessionStore(rdb)

	backend := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("order archive unavailable: %v", err)
	}
	orders := repository.NewOrderRepo(db)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterCheckout(e, handler.NewCheckoutHandler(sessions, backend, orders, cfg.RabbitURL))
	router.RegisterOrders(e, handler.NewOrderHandler(orders))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, upstream=%s)", addr, cfg.Env, cfg.UpstreamBaseURL)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
