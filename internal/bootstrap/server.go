package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/quickcourt/courtbooking/api"
	"github.com/quickcourt/courtbooking/config"
	"github.com/quickcourt/courtbooking/internal/metrics"
	"github.com/quickcourt/courtbooking/internal/service/auth"
	"github.com/quickcourt/courtbooking/internal/service/booking"
	"github.com/quickcourt/courtbooking/internal/service/courts"
	"github.com/quickcourt/courtbooking/internal/service/notifications"
	"github.com/quickcourt/courtbooking/internal/service/ratings"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	authSvc auth.AuthUseCase,
	bookingSvc booking.BookingUseCase,
	courtSvc courts.CourtUseCase,
	ratingSvc ratings.RatingUseCase,
	notificationSvc notifications.NotificationUseCase,
	m *metrics.Metrics,
) error {
	engine := newEngine(cfg, authSvc, bookingSvc, courtSvc, ratingSvc, notificationSvc, m)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newEngine(
	cfg *config.Config,
	authSvc auth.AuthUseCase,
	bookingSvc booking.BookingUseCase,
	courtSvc courts.CourtUseCase,
	ratingSvc ratings.RatingUseCase,
	notificationSvc notifications.NotificationUseCase,
	m *metrics.Metrics,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	if m != nil {
		engine.Use(requestTiming(m))
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/courtbooking.swagger.json"),
		)))
	}

	authHandler := api.NewAuthHandler(authSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc, m)
	venueHandler := api.NewVenueHandler(courtSvc, bookingSvc, ratingSvc)
	facilityHandler := api.NewFacilityHandler(courtSvc)
	notificationHandler := api.NewNotificationHandler(notificationSvc)

	v1 := engine.Group("/api/v1")

	authHandler.Register(v1.Group("/auth"))
	venueHandler.Register(v1.Group("/venues"))
	venueHandler.RegisterCourtRoutes(v1.Group("/courts"))
	venueHandler.RegisterSportRoutes(v1.Group("/sports"))

	authed := v1.Group("/")
	authed.Use(api.RequireAuth(cfg.Auth.JWTSecret))
	authHandler.RegisterProtected(authed.Group("/auth"))
	bookingHandler.Register(authed.Group("/bookings"))
	venueHandler.RegisterRatingRoutes(authed.Group("/ratings"))
	notificationHandler.Register(authed.Group("/notifications"))

	owner := authed.Group("/owner")
	owner.Use(api.RequireOwner())
	facilityHandler.Register(owner)

	return engine
}

func requestTiming(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
