package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/myhouz/myhouz-server/internal/config"
	"github.com/myhouz/myhouz-server/internal/database"
	"github.com/myhouz/myhouz-server/internal/handler"
	"github.com/myhouz/myhouz-server/internal/middleware"
	"github.com/myhouz/myhouz-server/internal/queue"
	"github.com/myhouz/myhouz-server/internal/repository"
	"github.com/myhouz/myhouz-server/internal/router"
	"github.com/myhouz/myhouz-server/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client turns the rate limiter and response
	// cache into pass-throughs.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	programs := repository.NewLoyaltyRepo(db)
	registers := repository.NewRegisterRepo(db)
	suppliers := repository.NewSupplierRepo(db)
	reviews := repository.NewReviewRepo(db)
	ideabooks := repository.NewIdeabookRepo(db)

	pub := service.NewAMQPPublisher()
	loyalty := service.NewLoyaltyService(programs, pub)
	registerSvc := service.NewRegisterService(registers, pub)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	seller := handler.NewSellerHandler(loyalty, registerSvc, suppliers, cfg.DefaultLimit, cfg.MaxLimit)
	member := handler.NewMemberHandler(reviews, ideabooks, cfg.DefaultLimit, cfg.MaxLimit)

	e := echo.New()

	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	respCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterSeller(e, seller, cfg.JWTSecret, rateLimit, respCache)
	router.RegisterMember(e, member, cfg.JWTSecret, rateLimit, respCache)

	// Expired refresh tokens are dead weight; sweep them once a day.
	go func() {
		for {
			if n, err := tokens.PurgeExpired(context.Background()); err != nil {
				log.Printf("token purge: %v", err)
			} else if n > 0 {
				log.Printf("token purge: removed %d expired tokens", n)
			}
			time.Sleep(24 * time.Hour)
		}
	}()

	// The activity consumer keeps retrying RabbitMQ in the background so
	// a broker outage never blocks HTTP startup.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
