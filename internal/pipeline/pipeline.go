// Package pipeline runs one resume through extraction, analysis and job
// search and assembles the response.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/ai"
	"github.com/careerup/careerup/internal/extract"
	"github.com/careerup/careerup/internal/jobs"
	"github.com/careerup/careerup/internal/logger"
	"github.com/careerup/careerup/internal/utils"
)

const (
	// MinTextLength is the shortest extracted text, in runes, worth analyzing.
	MinTextLength = 50
	// PreviewLength is the number of resume runes echoed back to the client.
	PreviewLength = 500
)

// ErrAnalyzerNotConfigured is returned by Run when no LLM key was provided.
var ErrAnalyzerNotConfigured = errors.New("resume analyzer is not configured")

// JobSearcher is satisfied by *jobs.Chain.
type JobSearcher interface {
	Search(ctx context.Context, criteria jobs.Criteria) ([]jobs.Listing, error)
	Describe() []jobs.Status
}

// AnalysisView is the analysis as returned to clients.
type AnalysisView struct {
	Skills          []string `json:"skills"`
	Weaknesses      []string `json:"weaknesses"`
	SuitableRoles   []string `json:"suitable_roles"`
	ExperienceLevel string   `json:"experience_level"`
}

type Response struct {
	Success       bool           `json:"success"`
	Analysis      AnalysisView   `json:"analysis"`
	Jobs          []jobs.Listing `json:"jobs"`
	ResumePreview string         `json:"resume_preview"`
}

// Capabilities reports which external services are configured.
type Capabilities struct {
	Analyzer  bool
	Providers []jobs.Status
}

// Provider reports whether the named job provider is enabled.
func (c Capabilities) Provider(name string) bool {
	for _, p := range c.Providers {
		if p.Name == name {
			return p.Enabled
		}
	}
	return false
}

type Service struct {
	extractor extract.Extractor
	analyzer  ai.Analyzer
	jobs      JobSearcher
	logger    *zap.Logger
}

// New builds a Service. A nil analyzer makes every run fail with an error;
// a nil job searcher disables job search.
func New(extractor extract.Extractor, analyzer ai.Analyzer, searcher JobSearcher, log *zap.Logger) *Service {
	return &Service{
		extractor: extractor,
		analyzer:  analyzer,
		jobs:      searcher,
		logger:    logger.OrNop(log),
	}
}

func (s *Service) Capabilities() Capabilities {
	c := Capabilities{Analyzer: s.analyzer != nil}
	if s.jobs != nil {
		c.Providers = s.jobs.Describe()
	}
	return c
}

// Run processes the upload and always releases it before returning.
func (s *Service) Run(ctx context.Context, upload *Upload) (*Response, error) {
	log := s.logger.With(zap.String("file", upload.Name))

	defer func() {
		if err := upload.Release(); err != nil {
			log.Error("failed to release upload", zap.String("path", upload.Path), zap.Error(err))
		}
	}()

	text, err := s.extractor.Extract(ctx, upload.Path)
	if err != nil {
		return nil, fmt.Errorf("extracting resume text: %w", err)
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
		return nil, &ContentError{Message: MsgUnreadable}
	}
	log.Info("extracted resume text", zap.Int("runes", utf8.RuneCountInString(text)))

	if s.analyzer == nil {
		return nil, ErrAnalyzerNotConfigured
	}

	result, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	analysis := result.Analysis
	if analysis == nil {
		analysis = &ai.Analysis{}
	}
	if result.Degraded {
		log.Warn("using placeholder analysis", zap.String("reason", result.Reason))
	}

	return &Response{
		Success:       true,
		Analysis:      view(analysis),
		Jobs:          s.searchJobs(ctx, analysis, log),
		ResumePreview: utils.Truncate(text, PreviewLength),
	}, nil
}

// searchJobs never fails. Provider errors are logged and yield no jobs.
func (s *Service) searchJobs(ctx context.Context, analysis *ai.Analysis, log *zap.Logger) []jobs.Listing {
	listings := []jobs.Listing{}

	if len(analysis.Skills) == 0 {
		log.Info("no skills found, skipping job search")
		return listings
	}
	if s.jobs == nil {
		return listings
	}

	found, err := s.jobs.Search(ctx, jobs.Criteria{
		Skills: analysis.Skills,
		Roles:  analysis.SuitableRoles,
	})
	if err != nil {
		log.Warn("job search failed", zap.Error(err))
		return listings
	}

	return append(listings, found...)
}

func view(a *ai.Analysis) AnalysisView {
	level := a.ExperienceLevel
	if level == "" {
		level = ai.LevelUnknown
	}

	return AnalysisView{
		Skills:          orEmpty(a.Skills),
		Weaknesses:      orEmpty(a.Weaknesses),
		SuitableRoles:   orEmpty(a.SuitableRoles),
		ExperienceLevel: level,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
