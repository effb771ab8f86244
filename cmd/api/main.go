package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gigboard/internal/clock"
	"gigboard/internal/config"
	"gigboard/internal/database"
	"gigboard/internal/middleware"
	"gigboard/internal/modules/auth"
	"gigboard/internal/modules/booking"
	"gigboard/internal/modules/directory"
	"gigboard/internal/modules/feed"
	"gigboard/internal/modules/timeline"
	jwtsvc "gigboard/internal/pkg/jwt"
	"gigboard/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	accountRepo := repository.NewAccountRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	entryRepo := repository.NewDateEntryRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := feed.NewHub()
	defer hub.Close()

	authService := auth.NewService(accountRepo, artistRepo, venueRepo, j)
	authHandler := auth.NewHandler(authService)

	directoryService := directory.NewService(artistRepo, venueRepo)
	directoryHandler := directory.NewHandler(directoryService)

	bookingService := booking.NewService(entryRepo, clock.NewSystem(), feed.NewService(hub), cfg.HoldDuration)
	bookingHandler := booking.NewHandler(bookingService)
	bookingAgent := booking.NewAgent(bookingService)

	timelineHandler := timeline.NewHandler(bookingService)
	feedHandler := feed.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		directoryHandler.RegisterRoutes(v1)

		// negotiation surfaces require a resolved viewer
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			bookingAgent.RegisterRoutes(protected)
			timelineHandler.RegisterRoutes(protected)
			feedHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
