// Package stubserver is an in-memory stand-in for the forecasting service.
// It serves the same endpoints as the real backend so the dashboard can be
// demonstrated and tested end to end without a trained model on disk.
package stubserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NotTrainedMessage is the forecast error reported before any import.
const NotTrainedMessage = "Model not trained yet"

// Server is the stub forecasting service.
type Server struct {
	app   *fiber.App
	store *store
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the clock used to stamp trained models.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.store.now = now
	}
}

// New creates the stub server with its routes registered.
func New(opts ...Option) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "shawarma-forecast-stub",
			DisableStartupMessage: true,
		}),
		store: newStore(time.Now),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(cors.New())

	s.app.Get("/forecast/tomorrow", s.handleForecast)
	s.app.Post("/sales/import-csv", s.handleImport)
	s.app.Get("/models", s.handleModels)

	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.app.Listener(ln); err != nil {
		return fmt.Errorf("stub server stopped: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleForecast(c *fiber.Ctx) error {
	resp, ok := s.store.forecast()
	if !ok {
		return c.JSON(fiber.Map{"error": NotTrainedMessage})
	}
	return c.JSON(resp)
}

func (s *Server) handleImport(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		// Same shape as a request-validation failure on the real service.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": []fiber.Map{{
				"loc":  []string{"body", "file"},
				"msg":  "Field required",
				"type": "missing",
			}},
		})
	}

	if !strings.HasSuffix(fh.Filename, ".csv") {
		return badRequest(c, "Please upload a CSV file.")
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, fmt.Sprintf("Could not read CSV: %v", err))
	}
	defer func() { _ = f.Close() }()

	sales, err := parseSales(f)
	if err != nil {
		var colErr *columnError
		var rowErr *rowError
		switch {
		case errors.As(err, &colErr), errors.As(err, &rowErr):
			return badRequest(c, err.Error())
		default:
			return badRequest(c, fmt.Sprintf("Could not read CSV: %v", err))
		}
	}

	version := s.store.importSales(sales)
	slog.Info("Imported sales",
		"file", fh.Filename,
		"rows", len(sales),
		"model_version", version.Version,
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID))

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Successfully imported %d records. Model retrained.", len(sales)),
		"inserted": len(sales),
	})
}

func (s *Server) handleModels(c *fiber.Ctx) error {
	return c.JSON(s.store.listModels())
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": detail})
}
