package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/jobs"
	"github.com/careerup/careerup/internal/jobs/adzuna"
	"github.com/careerup/careerup/internal/jobs/jsearch"
	"github.com/careerup/careerup/internal/pipeline"
)

const formField = "resume"

type healthResponse struct {
	Status            string        `json:"status"`
	Service           string        `json:"service"`
	GeminiConfigured  bool          `json:"gemini_configured"`
	AdzunaConfigured  bool          `json:"adzuna_configured"`
	JSearchConfigured bool          `json:"jsearch_configured"`
	JobProviders      []jobs.Status `json:"job_providers"`
}

type errorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

func (s *Server) health(c *fiber.Ctx) error {
	caps := s.pipeline.Capabilities()

	providers := caps.Providers
	if providers == nil {
		providers = []jobs.Status{}
	}

	return c.Status(fiber.StatusOK).JSON(healthResponse{
		Status:            "healthy",
		Service:           ServiceName,
		GeminiConfigured:  caps.Analyzer,
		AdzunaConfigured:  caps.Provider(adzuna.Name),
		JSearchConfigured: caps.Provider(jsearch.Name),
		JobProviders:      providers,
	})
}

func (s *Server) analyze(c *fiber.Ctx) error {
	fh, err := c.FormFile(formField)
	if err != nil || fh == nil {
		return &pipeline.ValidationError{Message: pipeline.MsgNoFile}
	}

	if err := pipeline.ValidateFilename(fh.Filename); err != nil {
		return err
	}

	file, err := fh.Open()
	if err != nil {
		return &pipeline.ValidationError{Message: pipeline.MsgNoFile}
	}
	defer file.Close()

	upload, err := pipeline.StoreUpload(s.uploadDir, fh.Filename, file)
	if err != nil {
		return err
	}

	resp, err := s.pipeline.Run(c.UserContext(), upload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// handleError writes {error} for client errors and {success:false, error}
// for everything else.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := pipeline.HTTPStatus(err)

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}

	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	} else {
		s.logger.Info("request rejected", zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	}

	body := errorResponse{Error: err.Error()}
	if status != fiber.StatusBadRequest {
		failed := false
		body.Success = &failed
	}

	return c.Status(status).JSON(body)
}
