package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it, rate limiting and response caching
	// are disabled and everything else keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	venues := repository.NewVenueRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	memberships := repository.NewMembershipRepo(db)
	invitations := repository.NewInvitationRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	memberH := handler.NewMemberHandler(venues, rooms, bookings, memberships)
	adminH := handler.NewAdminHandler(venues, rooms, bookings, memberships, invitations, users)
	inviteH := handler.NewInviteHandler(invitations, memberships, users)

	e := echo.New()

	// Token-bucket rate limit on everything except the health check.
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		limited := rl(next)
		return func(c echo.Context) error {
			if c.Path() == "/healthz" {
				return next(c)
			}
			return limited(c)
		}
	})

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	// The cache keys on concrete path + user id, so it is safe on the
	// authenticated browse GETs as well as the public invite lookup.
	router.RegisterInvite(e, inviteH, cfg.JWTSecret, cache)
	router.RegisterMember(e, memberH, cfg.JWTSecret, cache)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Consumer appends booking.created events to logs/booking.log and
	// reconnects on broker failures.
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
