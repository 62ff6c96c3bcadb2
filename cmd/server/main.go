package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/dkoval23/hotel-booking-api/internal/config"
	"github.com/dkoval23/hotel-booking-api/internal/database"
	"github.com/dkoval23/hotel-booking-api/internal/handler"
	"github.com/dkoval23/hotel-booking-api/internal/middleware"
	"github.com/dkoval23/hotel-booking-api/internal/queue"
	"github.com/dkoval23/hotel-booking-api/internal/repository"
	"github.com/dkoval23/hotel-booking-api/internal/router"
)

func main() {
	// Load .env if present; real deployments set the variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// The single store handle is injected into every repository; nothing
	// below reaches for it as ambient state.
	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	hotelHandler := handler.NewHotelHandler(hotels, rooms)
	bookingHandler := handler.NewBookingHandler(bookings, rooms, hotels)

	// Redis is optional: with no client the limiter and cache become
	// no-ops and the API serves everything from MySQL.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and catalog cache disabled")
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler)
	router.RegisterCatalog(e, hotelHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret)

	// Background consumer that records confirmed bookings; it maintains
	// its own reconnect loop and never brings the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
