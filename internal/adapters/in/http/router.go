package http

import (
	"log/slog"
	"net/http"
	"time"

	"montarota/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	serviceName    = "montarota"
	serviceVersion = "1.0.0"
)

// Options configures NewEcho.
type Options struct {
	Tokens         ports.TokenVerifier
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	// GPSRequireAuth puts PATCH /api/couriers/:id/gps behind the bearer gate.
	GPSRequireAuth bool
	Logger         *slog.Logger
}

// NewEcho builds the echo instance with every route registered. Middleware is
// attached per route so unknown paths under /api still answer 404.
func NewEcho(s *Server, opts Options) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	registerSwagger(doc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Binder = StrictJSONBinder{}
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())

	startedAt := time.Now()
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"system":  serviceName,
			"status":  "online",
			"version": serviceVersion,
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		})
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, doc.JSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := Authenticate(opts.Tokens, true)
	optionalAuth := Authenticate(opts.Tokens, false)
	idem := Idempotency(opts.Idempotency, opts.IdempotencyTTL, logger)
	gpsAuth := optionalAuth
	if opts.GPSRequireAuth {
		gpsAuth = auth
	}

	api := e.Group("/api")

	api.POST("/auth/login", s.Login)
	api.POST("/auth/register", s.Register, optionalAuth)

	api.GET("/stores", s.ListStores, auth)
	api.GET("/stores/:id", s.GetStore, auth)
	api.POST("/stores", s.CreateStore, auth)
	api.PUT("/stores/:id", s.UpdateStore, auth)

	api.GET("/couriers", s.ListCouriers, auth)
	api.GET("/couriers/available", s.ListAvailableCouriers, auth)
	api.GET("/couriers/:id", s.GetCourier, auth)
	api.POST("/couriers", s.CreateCourier, auth)
	api.PATCH("/couriers/:id/gps", s.RecordCourierPosition, gpsAuth)
	api.PATCH("/couriers/:id/status", s.ChangeCourierStatus, auth)

	api.GET("/orders", s.ListOrders, auth)
	api.GET("/orders/overdue", s.ListOverdueOrders, auth)
	api.GET("/orders/:id", s.GetOrder, auth)
	api.POST("/orders", s.CreateOrder, auth, idem)
	api.PATCH("/orders/:id/status", s.ChangeOrderStatus, auth)
	api.POST("/orders/:id/confirm", s.ConfirmDelivery, optionalAuth, idem)

	api.POST("/routes/assemble", s.AssembleRoute, auth, idem)
	api.GET("/routes", s.ListRoutes, auth)
	api.PATCH("/routes/:id/start", s.StartRoute, auth)
	api.PATCH("/routes/:id/complete", s.CompleteRoute, auth)

	api.GET("/payments", s.ListPayments, auth)
	api.POST("/payments/generate-weekly", s.GenerateWeeklySettlement, auth, idem)
	api.PATCH("/payments/:id/pay", s.MarkPaymentPaid, auth)

	api.GET("/analytics/summary/:store_id", s.AnalyticsSummary, auth)

	api.POST("/ocr/ingest", s.IngestOcrSlip, auth)

	api.GET("/tracking/courier/:id", s.GetCourierTrack, auth)
	api.GET("/tracking/courier/:id/live", s.LiveTrack, auth)

	return e, nil
}
