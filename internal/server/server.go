// Package server exposes the resume pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/logger"
	"github.com/careerup/careerup/internal/pipeline"
)

const (
	ServiceName = "CareerUp Backend"

	defaultBodyLimit       = 10 << 20
	defaultShutdownTimeout = 10 * time.Second
)

// Pipeline is satisfied by *pipeline.Service.
type Pipeline interface {
	Run(ctx context.Context, upload *pipeline.Upload) (*pipeline.Response, error)
	Capabilities() pipeline.Capabilities
}

type Config struct {
	Addr         string
	UploadDir    string
	BodyLimit    int
	AllowOrigins []string
}

type Server struct {
	app       *fiber.App
	addr      string
	uploadDir string
	pipeline  Pipeline
	logger    *zap.Logger
}

func New(cfg Config, p Pipeline, log *zap.Logger) *Server {
	s := &Server{
		addr:      cfg.Addr,
		uploadDir: cfg.UploadDir,
		pipeline:  p,
		logger:    logger.OrNop(log),
	}

	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimit
	}

	s.app = fiber.New(fiber.Config{
		AppName:               ServiceName,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(requestLogger(s.logger))
	s.app.Use(recover.New())
	s.app.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	s.register()

	return s
}

func (s *Server) register() {
	api := s.app.Group("/api")
	api.Get("/health", s.health)
	api.Post("/analyze", s.analyze)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.addr))
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	if err := s.app.ShutdownWithTimeout(defaultShutdownTimeout); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// corsConfig allows the listed origins. Entries containing "*" match any
// origin with the same prefix and suffix, e.g. https://*.vercel.app.
func corsConfig(origins []string) cors.Config {
	var exact, patterns []string
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch {
		case o == "":
		case strings.Contains(o, "*"):
			patterns = append(patterns, o)
		default:
			exact = append(exact, o)
		}
	}

	cfg := cors.Config{
		AllowOrigins: strings.Join(exact, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}

	if len(patterns) > 0 {
		cfg.AllowOriginsFunc = func(origin string) bool {
			for _, p := range patterns {
				if matchOrigin(p, origin) {
					return true
				}
			}
			return false
		}
	}

	return cfg
}

func matchOrigin(pattern, origin string) bool {
	prefix, suffix, _ := strings.Cut(pattern, "*")
	return len(origin) > len(prefix)+len(suffix) &&
		strings.HasPrefix(origin, prefix) &&
		strings.HasSuffix(origin, suffix)
}
