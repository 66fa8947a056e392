package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/ai"
	"github.com/careerup/careerup/internal/ai/gemini"
	"github.com/careerup/careerup/internal/extract"
	"github.com/careerup/careerup/internal/jobs"
	"github.com/careerup/careerup/internal/jobs/adzuna"
	"github.com/careerup/careerup/internal/jobs/jsearch"
	"github.com/careerup/careerup/internal/pipeline"
	"github.com/careerup/careerup/internal/secrets"
)

const notConfigured = "credentials not configured"

// newService wires the pipeline from config. Services without credentials are
// left out and reported, they never fail startup.
func newService(ctx context.Context, config *Config, logger *zap.Logger) (*pipeline.Service, error) {
	analyzer, err := newAnalyzer(ctx, config.Gemini, logger)
	if err != nil {
		return nil, fmt.Errorf("building resume analyzer: %w", err)
	}

	chain, err := newJobChain(config, logger)
	if err != nil {
		return nil, fmt.Errorf("building job providers: %w", err)
	}

	return pipeline.New(extract.NewPDF(), analyzer, chain, logger), nil
}

func newAnalyzer(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (ai.Analyzer, error) {
	apiKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	if apiKey == "" {
		logger.Warn("gemini is not configured, resume analysis is unavailable",
			zap.String("hint", "set GEMINI_API_KEY or GEMINI_API_KEY_FILE"),
		)
		return nil, nil
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.Temperature)
	if err != nil {
		return nil, err
	}

	logger.Info("gemini configured", zap.String("model", generator.Model()))

	return gemini.NewAnalyzer(generator, cfg.MaxLogLength, logger), nil
}

func newJobChain(config *Config, logger *zap.Logger) (*jobs.Chain, error) {
	chain := jobs.NewChain(logger)

	appID := strings.TrimSpace(config.Adzuna.AppID)
	appKey, err := secrets.LoadOptional(secrets.Source{Name: "adzuna app key", Value: config.Adzuna.AppKey})
	if err != nil {
		return nil, err
	}

	if appID != "" && appKey != "" {
		chain.Add(adzuna.New(adzuna.Config{
			AppID:      appID,
			AppKey:     appKey,
			Country:    config.Adzuna.Country,
			Where:      config.Adzuna.Where,
			APIURL:     config.Adzuna.APIURL,
			MaxResults: config.Adzuna.MaxResults,
			Timeout:    config.HTTPTimeout,
		}, logger))
		logger.Info("adzuna configured", zap.String("role", "primary"))
	} else {
		chain.AddDisabled(adzuna.Name, notConfigured)
		logger.Warn("adzuna is not configured", zap.String("hint", "set ADZUNA_APP_ID and ADZUNA_APP_KEY"))
	}

	jsearchKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "jsearch api key",
		Value: config.JSearch.APIKey,
		File:  config.JSearch.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	if jsearchKey != "" {
		chain.Add(jsearch.New(jsearch.Config{
			APIKey:     jsearchKey,
			Region:     config.JSearch.Region,
			Country:    config.JSearch.Country,
			APIURL:     config.JSearch.APIURL,
			MaxResults: config.JSearch.MaxResults,
			Timeout:    config.HTTPTimeout,
		}, logger))
		logger.Info("jsearch configured", zap.String("role", "backup"))
	} else {
		chain.AddDisabled(jsearch.Name, notConfigured)
		logger.Warn("jsearch is not configured", zap.String("hint", "set JSEARCH_API_KEY or JSEARCH_API_KEY_FILE"))
	}

	if !chain.Enabled() {
		logger.Warn("no job providers configured, job search is disabled")
	}

	return chain, nil
}
