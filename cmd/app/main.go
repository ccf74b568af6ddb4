package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcourt/courtbooking/config"
	"github.com/quickcourt/courtbooking/internal/bootstrap"
	"github.com/quickcourt/courtbooking/internal/cache"
	"github.com/quickcourt/courtbooking/internal/kafka"
	"github.com/quickcourt/courtbooking/internal/metrics"
	"github.com/quickcourt/courtbooking/internal/repository"
	"github.com/quickcourt/courtbooking/internal/service/auth"
	"github.com/quickcourt/courtbooking/internal/service/booking"
	"github.com/quickcourt/courtbooking/internal/service/courts"
	"github.com/quickcourt/courtbooking/internal/service/notifications"
	"github.com/quickcourt/courtbooking/internal/service/ratings"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.VenueCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	facilityRepo := repository.NewFacilityRepository(pool)
	courtRepo := repository.NewCourtRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	ratingRepo := repository.NewRatingRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	authService := auth.NewAuthService(
		userRepo,
		producer,
		cfg.Kafka.NotificationsTopic,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.OTPTTLMinutes)*time.Minute,
	)
	bookingService := booking.NewBookingService(
		bookingRepo,
		courtRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	courtService := courts.NewCourtService(facilityRepo, courtRepo, bookingRepo, redisCache)
	ratingService := ratings.NewRatingService(ratingRepo, bookingRepo)
	notificationService := notifications.NewNotificationService(notificationRepo)

	m := metrics.NewMetrics()

	if err := bootstrap.Run(ctx, cfg, authService, bookingService, courtService, ratingService, notificationService, m); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
