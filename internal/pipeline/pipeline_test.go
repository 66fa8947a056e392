package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/careerup/careerup/internal/ai"
	"github.com/careerup/careerup/internal/jobs"
	"github.com/careerup/careerup/internal/jobs/adzuna"
)

const resumeText = "Jane Doe. 5 years Python, Django, AWS. Built payment services and data pipelines at scale."

type stubExtractor struct {
	text string
	err  error
	path string
}

func (s *stubExtractor) Extract(_ context.Context, path string) (string, error) {
	s.path = path
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return s.text, s.err
}

type stubAnalyzer struct {
	result *ai.Result
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ string) (*ai.Result, error) {
	s.calls++
	return s.result, s.err
}

type stubProvider struct {
	name     string
	listings []jobs.Listing
	err      error
	calls    *[]string
	criteria jobs.Criteria
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, c jobs.Criteria) ([]jobs.Listing, error) {
	*s.calls = append(*s.calls, s.name)
	s.criteria = c
	return s.listings, s.err
}

func pythonAnalysis() *ai.Result {
	return &ai.Result{Analysis: &ai.Analysis{
		Skills:          []string{"Python", "Django", "AWS"},
		Weaknesses:      []string{"No frontend work", "Few certifications"},
		SuitableRoles:   []string{"Senior Python Developer", "Backend Engineer", "Cloud Engineer"},
		ExperienceLevel: ai.LevelSenior,
	}}
}

func storeTestUpload(t *testing.T) *Upload {
	t.Helper()

	upload, err := StoreUpload(t.TempDir(), "resume.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("store upload: %v", err)
	}
	return upload
}

func assertRemoved(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be removed, stat err: %v", path, err)
	}
}

func TestRunRemovesUploadOnEveryOutcome(t *testing.T) {
	tests := []struct {
		name      string
		extractor *stubExtractor
		analyzer  ai.Analyzer
		status    int
	}{
		{
			name:      "success",
			extractor: &stubExtractor{text: resumeText},
			analyzer:  &stubAnalyzer{result: pythonAnalysis()},
			status:    http.StatusOK,
		},
		{
			name:      "too short",
			extractor: &stubExtractor{text: "  short  "},
			analyzer:  &stubAnalyzer{result: pythonAnalysis()},
			status:    http.StatusBadRequest,
		},
		{
			name:      "extractor failure",
			extractor: &stubExtractor{err: errors.New("malformed pdf")},
			analyzer:  &stubAnalyzer{result: pythonAnalysis()},
			status:    http.StatusInternalServerError,
		},
		{
			name:      "analyzer failure",
			extractor: &stubExtractor{text: resumeText},
			analyzer:  &stubAnalyzer{err: errors.New("quota exceeded")},
			status:    http.StatusInternalServerError,
		},
		{
			name:      "analyzer missing",
			extractor: &stubExtractor{text: resumeText},
			analyzer:  nil,
			status:    http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload := storeTestUpload(t)
			svc := New(tt.extractor, tt.analyzer, jobs.NewChain(nil), nil)

			resp, err := svc.Run(context.Background(), upload)
			if got := HTTPStatus(err); got != tt.status {
				t.Fatalf("expected status %d, got %d (err: %v)", tt.status, got, err)
			}
			if err != nil && resp != nil {
				t.Fatalf("failed run must not return a partial response")
			}
			if tt.extractor.path != upload.Path {
				t.Fatalf("extractor read %q instead of %q", tt.extractor.path, upload.Path)
			}

			assertRemoved(t, upload.Path)
		})
	}
}

func TestRunReportsUnreadableResume(t *testing.T) {
	upload := storeTestUpload(t)
	analyzer := &stubAnalyzer{result: pythonAnalysis()}
	svc := New(&stubExtractor{text: strings.Repeat("a", MinTextLength-1)}, analyzer, nil, nil)

	_, err := svc.Run(context.Background(), upload)

	var contentErr *ContentError
	if !errors.As(err, &contentErr) || contentErr.Message != MsgUnreadable {
		t.Fatalf("expected content error, got %v", err)
	}
	if analyzer.calls != 0 {
		t.Fatalf("analyzer must not run for unreadable resumes")
	}
}

func TestRunFallsBackToSecondaryProvider(t *testing.T) {
	var calls []string
	chain := jobs.NewChain(nil).
		Add(&stubProvider{name: "adzuna", err: errors.New("timeout"), calls: &calls}).
		Add(&stubProvider{name: "jsearch", listings: []jobs.Listing{{Title: "Backend Engineer"}}, calls: &calls})

	svc := New(&stubExtractor{text: resumeText}, &stubAnalyzer{result: pythonAnalysis()}, chain, nil)

	resp, err := svc.Run(context.Background(), storeTestUpload(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls) != 2 || calls[0] != "adzuna" || calls[1] != "jsearch" {
		t.Fatalf("unexpected provider order: %v", calls)
	}
	if len(resp.Jobs) != 1 || resp.Jobs[0].Title != "Backend Engineer" {
		t.Fatalf("unexpected jobs: %+v", resp.Jobs)
	}
}

func TestRunUsesSecondaryOnlyWhenPrimaryDisabled(t *testing.T) {
	var calls []string
	chain := jobs.NewChain(nil).
		AddDisabled("adzuna", "credentials not configured").
		Add(&stubProvider{name: "jsearch", listings: []jobs.Listing{{Title: "x"}}, calls: &calls})

	svc := New(&stubExtractor{text: resumeText}, &stubAnalyzer{result: pythonAnalysis()}, chain, nil)

	if _, err := svc.Run(context.Background(), storeTestUpload(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 || calls[0] != "jsearch" {
		t.Fatalf("expected only secondary provider, got %v", calls)
	}
}

func TestRunSwallowsJobSearchFailure(t *testing.T) {
	var calls []string
	chain := jobs.NewChain(nil).
		Add(&stubProvider{name: "adzuna", err: errors.New("boom"), calls: &calls}).
		Add(&stubProvider{name: "jsearch", err: errors.New("boom"), calls: &calls})

	svc := New(&stubExtractor{text: resumeText}, &stubAnalyzer{result: pythonAnalysis()}, chain, nil)

	resp, err := svc.Run(context.Background(), storeTestUpload(t))
	if err != nil {
		t.Fatalf("job search failures must not fail the run: %v", err)
	}
	if resp.Jobs == nil || len(resp.Jobs) != 0 {
		t.Fatalf("expected empty non-nil job list, got %#v", resp.Jobs)
	}
}

func TestRunSkipsJobSearchWithoutSkills(t *testing.T) {
	var calls []string
	chain := jobs.NewChain(nil).Add(&stubProvider{name: "adzuna", calls: &calls})
	analyzer := &stubAnalyzer{result: &ai.Result{Analysis: &ai.Analysis{
		Skills:        []string{},
		SuitableRoles: []string{"Analyst"},
	}}}

	svc := New(&stubExtractor{text: resumeText}, analyzer, chain, nil)

	resp, err := svc.Run(context.Background(), storeTestUpload(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("job search must be skipped, got calls %v", calls)
	}
	if !resp.Success || len(resp.Jobs) != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Analysis.ExperienceLevel != ai.LevelUnknown || resp.Analysis.Weaknesses == nil {
		t.Fatalf("expected defaulted analysis fields, got %+v", resp.Analysis)
	}
}

func TestRunContinuesWithDegradedAnalysis(t *testing.T) {
	var calls []string
	provider := &stubProvider{name: "adzuna", listings: []jobs.Listing{{Title: "x"}}, calls: &calls}
	analyzer := &stubAnalyzer{result: &ai.Result{
		Analysis: ai.DegradedAnalysis("invalid character 'S'"),
		Degraded: true,
		Reason:   "invalid character 'S'",
	}}

	svc := New(&stubExtractor{text: resumeText}, analyzer, jobs.NewChain(nil).Add(provider), nil)

	resp, err := svc.Run(context.Background(), storeTestUpload(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Analysis.ExperienceLevel != ai.LevelUnknown {
		t.Fatalf("expected unknown level, got %q", resp.Analysis.ExperienceLevel)
	}
	if len(provider.criteria.Roles) != 1 || provider.criteria.Roles[0] != "General positions" {
		t.Fatalf("expected placeholder role in search criteria, got %+v", provider.criteria)
	}
}

func TestRunPreview(t *testing.T) {
	long := strings.Repeat("é", PreviewLength+20)

	resp, err := New(&stubExtractor{text: long}, &stubAnalyzer{result: pythonAnalysis()}, nil, nil).
		Run(context.Background(), storeTestUpload(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ResumePreview != strings.Repeat("é", PreviewLength)+"..." {
		t.Fatalf("unexpected preview length %d", len([]rune(resp.ResumePreview)))
	}

	resp, err = New(&stubExtractor{text: resumeText}, &stubAnalyzer{result: pythonAnalysis()}, nil, nil).
		Run(context.Background(), storeTestUpload(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ResumePreview != resumeText {
		t.Fatalf("short text must be returned verbatim, got %q", resp.ResumePreview)
	}
}

func TestRunEndToEndWithAdzuna(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		what := r.URL.Query().Get("what")
		queries = append(queries, what)

		results := []map[string]any{}
		for i := 0; i < 12; i++ {
			results = append(results, map[string]any{
				"title":        what,
				"company":      map[string]any{"display_name": "Acme"},
				"description":  strings.Repeat("d", 350),
				"redirect_url": "https://adzuna.example/job",
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
	defer srv.Close()

	chain := jobs.NewChain(nil).
		Add(adzuna.New(adzuna.Config{AppID: "id", AppKey: "key", APIURL: srv.URL}, nil)).
		AddDisabled("jsearch", "credentials not configured")

	svc := New(&stubExtractor{text: resumeText}, &stubAnalyzer{result: pythonAnalysis()}, chain, nil)
	upload := storeTestUpload(t)

	resp, err := svc.Run(context.Background(), upload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(queries) == 0 || queries[0] != "Python Developer Python" {
		t.Fatalf("unexpected queries: %v", queries)
	}
	if len(resp.Jobs) == 0 || len(resp.Jobs) > 15 {
		t.Fatalf("expected between 1 and 15 jobs, got %d", len(resp.Jobs))
	}
	for _, job := range resp.Jobs {
		if n := len([]rune(job.Description)); n > jobs.DescriptionLimit+3 {
			t.Fatalf("description too long: %d", n)
		}
	}
	assertRemoved(t, upload.Path)
}

func TestCapabilities(t *testing.T) {
	chain := jobs.NewChain(nil).
		AddDisabled("adzuna", "off").
		Add(&stubProvider{name: "jsearch", calls: new([]string)})

	caps := New(&stubExtractor{}, nil, chain, nil).Capabilities()

	if caps.Analyzer {
		t.Fatalf("analyzer must be reported as missing")
	}
	if caps.Provider("adzuna") || !caps.Provider("jsearch") || caps.Provider("other") {
		t.Fatalf("unexpected provider capabilities: %+v", caps.Providers)
	}
}

func TestUploadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	upload, err := StoreUpload(dir, "CV.PDF", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(upload.Path) != dir {
		t.Fatalf("expected file inside %s, got %s", dir, upload.Path)
	}
	if upload.Name != "CV.PDF" {
		t.Fatalf("unexpected name %q", upload.Name)
	}
}
