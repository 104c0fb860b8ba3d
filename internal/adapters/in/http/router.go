package http

import (
	"log/slog"
	"time"

	"parcellocker/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

const apiPrefix = "/api/v1"

// RouterConfig tunes the middleware in front of the API.
type RouterConfig struct {
	// RateLimit is requests per second per client IP. Zero disables it.
	RateLimit rate.Limit
	Burst     int
	// CacheTTL is how long availability responses are reused.
	CacheTTL time.Duration
}

// NewAvailabilityCache builds the store shared by the Cache middleware and
// the Server, which evicts a location's entry after each deposit or collect.
func NewAvailabilityCache(ttl time.Duration) *cache.Cache {
	return cache.New(ttl, 2*ttl)
}

// NewRouter registers every route on a fresh echo instance. API requests
// are validated against the embedded OpenAPI document, which is also served
// under /swagger.
func NewRouter(s *Server, availability *cache.Cache, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}
	if err = publishDocument(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = s.HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURIPath: true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(SwaggerInstance)))

	group := e.Group(apiPrefix)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		group.Use(RateLimit(NewIPRateLimiter(cfg.RateLimit, burst)))
	}
	group.Use(validate)

	group.POST("/deliveries", s.Deposit)
	group.POST("/collections", s.Collect)

	group.GET("/residents", s.ListResidents)
	group.POST("/residents", s.RegisterResident)
	group.PUT("/residents/:id", s.UpdateResident)
	group.DELETE("/residents/:id", s.DeactivateResident)

	group.GET("/locations", s.GetTowers)
	locations := group.Group("/locations/:id")
	if availability != nil && cfg.CacheTTL > 0 {
		locations.GET("/availability", s.GetAvailability, Cache(availability, cfg.CacheTTL, s.availabilityKey))
	} else {
		locations.GET("/availability", s.GetAvailability)
	}
	locations.GET("/active-flats", s.GetActiveFlats)
	locations.GET("/flats", s.GetFlats)
	locations.GET("/residents/:flat", s.GetResidentByFlat)
	locations.GET("/hardware-commands", s.GetHardwareCommands)

	return e, nil
}
