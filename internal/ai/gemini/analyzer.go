package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/ai"
	"github.com/careerup/careerup/internal/logger"
	"github.com/careerup/careerup/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

//go:embed analysis.schema.json
var analysisSchema string

const defaultMaxLogLength = 200

var compileSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(analysisSchema))
})

func NewAnalyzer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Analyzer{
		generator: generator,
		logger:    logger.OrNop(log),
		maxLogLen: maxLogLength,
	}
}

// Analyze classifies the resume with a single model call. A reply that is empty
// or not valid JSON yields a degraded result rather than an error; generator failures
// are returned as errors.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string) (*ai.Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, errors.New("resume text is required")
	}

	prompt := buildPrompt(resumeText)

	a.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analyzing resume: %w", err)
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	analysis, violations, err := parseResponse(raw)
	if err != nil {
		a.logger.Warn("gemini reply is not valid JSON, using placeholder analysis", zap.Error(err))
		return &ai.Result{
			Analysis: ai.DegradedAnalysis(err.Error()),
			Degraded: true,
			Reason:   err.Error(),
			Raw:      raw,
		}, nil
	}

	if len(violations) > 0 {
		a.logger.Warn("gemini reply does not match the analysis schema", zap.Strings("violations", violations))
	}

	return &ai.Result{Analysis: analysis, Raw: raw}, nil
}

func buildPrompt(resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume Text:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

// parseResponse decodes the model reply. The error is non-nil only when the
// reply is not a JSON object; schema violations are reported separately and
// the values are coerced into shape.
func parseResponse(raw string) (*ai.Analysis, []string, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, nil, errors.New("empty reply from model")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, nil, err
	}

	violations := validateSchema(data)

	return &ai.Analysis{
		Skills:          coerceStrings(data["skills"]),
		Weaknesses:      coerceStrings(data["weaknesses"]),
		SuitableRoles:   coerceStrings(data["suitable_roles"]),
		ExperienceLevel: ai.NormalizeLevel(coerceString(data["experience_level"])),
	}, violations, nil
}

// stripFences removes a leading ```json or ``` marker and a trailing ``` marker.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

func validateSchema(data map[string]any) []string {
	schema, err := compileSchema()
	if err != nil {
		return []string{fmt.Sprintf("schema: %v", err)}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return []string{fmt.Sprintf("schema: %v", err)}
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return violations
}

func coerceStrings(v any) []string {
	result := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				result = append(result, s)
			}
		}
	case string:
		if s := strings.TrimSpace(val); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
