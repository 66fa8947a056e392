// Package ai defines the resume analysis contract shared by LLM backends.
package ai

import (
	"context"
	"fmt"
	"strings"
)

const (
	LevelEntry   = "entry"
	LevelMid     = "mid"
	LevelSenior  = "senior"
	LevelUnknown = "unknown"
)

// Analysis is the structured classification of a resume.
// Slice order is relevance order as judged by the model.
type Analysis struct {
	Skills          []string `json:"skills"`
	Weaknesses      []string `json:"weaknesses"`
	SuitableRoles   []string `json:"suitable_roles"`
	ExperienceLevel string   `json:"experience_level"`
	// Error carries the parse failure of a degraded analysis.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a successful call to an Analyzer. When Degraded is
// true the model reply could not be parsed and Analysis holds placeholders.
// Transport, auth and quota failures are returned as errors instead.
type Result struct {
	Analysis *Analysis
	Degraded bool
	Reason   string
	Raw      string
}

type Analyzer interface {
	Analyze(ctx context.Context, resumeText string) (*Result, error)
}

// DegradedAnalysis returns the placeholder analysis used when the model reply
// is not valid JSON. The shape is fixed; only Error depends on reason.
func DegradedAnalysis(reason string) *Analysis {
	return &Analysis{
		Skills:          []string{"Unable to parse skills - review resume format"},
		Weaknesses:      []string{"Resume format may need improvement"},
		SuitableRoles:   []string{"General positions"},
		ExperienceLevel: LevelUnknown,
		Error:           fmt.Sprintf("JSON parsing error: %s", reason),
	}
}

// NormalizeLevel maps free-form model output onto entry, mid, senior or unknown.
func NormalizeLevel(level string) string {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case LevelEntry, LevelMid, LevelSenior:
		return l
	default:
		return LevelUnknown
	}
}
