package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/booking"
	"github.com/feastfleet/feastfleet/internal/config"
	"github.com/feastfleet/feastfleet/internal/database"
	"github.com/feastfleet/feastfleet/internal/handler"
	"github.com/feastfleet/feastfleet/internal/queue"
	"github.com/feastfleet/feastfleet/internal/repository"
	"github.com/feastfleet/feastfleet/internal/router"
	queue_publisher "github.com/feastfleet/feastfleet/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	reservations := repository.NewReservationRepo(db)
	menus := repository.NewMenuRepo(db)
	carts := repository.NewCartRepo(db)
	orders := repository.NewOrderRepo(db)

	pub := queue_publisher.Publisher{}
	ctrl := booking.NewController(restaurants, reservations)

	// Background consumers: the booking worker decides admissions, the
	// outcome consumer writes the notification log and sends emails.
	// Both reconnect on broker failure and only return on fatal setup
	// errors.
	go func() {
		if err := queue.StartBookingWorker(ctrl, users, pub); err != nil {
			log.Fatalf("booking worker: %v", err)
		}
	}()
	go func() {
		if err := queue.StartOutcomeConsumer(); err != nil {
			log.Fatalf("outcome consumer: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		Restaurant:   handler.NewRestaurantHandler(restaurants),
		Availability: handler.NewAvailabilityHandler(restaurants, reservations),
		Menu:         handler.NewMenuHandler(menus, restaurants),
		Reservation:  handler.NewReservationHandler(reservations, pub),
		Cart:         handler.NewCartHandler(carts, menus),
		Order:        handler.NewOrderHandler(orders, carts, pub),
	}, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
