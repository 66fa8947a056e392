package jsearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/careerup/careerup/internal/jobs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxResults int) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{APIKey: "secret", APIURL: srv.URL, MaxResults: maxResults}, nil)
}

func TestSearchSendsRapidAPIRequest(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = w.Write([]byte(`{"status":"OK","data":[
			{"job_title":"Python Developer","employer_name":"Acme","job_city":"Pune","job_country":"IN",
			 "job_description":"Write Python","job_apply_link":"https://acme.example/apply","job_employment_type":"FULLTIME"},
			{"job_title":"Data Engineer","job_city":null,"job_country":"IN"}
		]}`))
	}, 0)

	listings, err := client.Search(context.Background(), jobs.Criteria{
		Skills: []string{"Python", "Django"},
		Roles:  []string{"Senior Python Developer"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.URL.Path != "/search" {
		t.Fatalf("unexpected path %q", got.URL.Path)
	}
	if got.Header.Get("X-RapidAPI-Key") != "secret" || got.Header.Get("X-RapidAPI-Host") != "jsearch.p.rapidapi.com" {
		t.Fatalf("missing RapidAPI headers: %v", got.Header)
	}

	q := got.URL.Query()
	expected := map[string]string{
		"query":            "Python Developer Python India",
		"page":             "1",
		"num_pages":        "1",
		"date_posted":      "all",
		"remote_jobs_only": "false",
		"country":          "in",
	}
	for k, v := range expected {
		if q.Get(k) != v {
			t.Fatalf("param %s: expected %q, got %q", k, v, q.Get(k))
		}
	}

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Location != "Pune, IN" || first.EmploymentType != "FULLTIME" || first.ApplyLink != "https://acme.example/apply" {
		t.Fatalf("unexpected first listing: %+v", first)
	}

	second := listings[1]
	want := jobs.Listing{
		Title:          "Data Engineer",
		Company:        "N/A",
		Location:       "Remote, IN",
		Description:    "No description available",
		ApplyLink:      "#",
		EmploymentType: "N/A",
	}
	if second != want {
		t.Fatalf("expected %+v, got %+v", want, second)
	}
}

func TestSearchCapsResults(t *testing.T) {
	body := `{"data":[` + strings.TrimSuffix(strings.Repeat(`{"job_title":"x"},`, 12), ",") + `]}`
	handler := func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(body)) }

	listings, err := newTestClient(t, handler, 0).Search(context.Background(), jobs.Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != defaultMaxResults {
		t.Fatalf("expected %d listings, got %d", defaultMaxResults, len(listings))
	}

	listings, err = newTestClient(t, handler, 0).Search(context.Background(), jobs.Criteria{MaxResults: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 4 {
		t.Fatalf("expected 4 listings, got %d", len(listings))
	}
}

func TestSearchReturnsSamplesOnAuthError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}, 0)

		listings, err := client.Search(context.Background(), jobs.Criteria{Roles: []string{"Junior React Developer"}})
		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", status, err)
		}
		if len(listings) != 6 {
			t.Fatalf("status %d: expected 6 sample listings, got %d", status, len(listings))
		}
		if listings[0].Title != "React Developer" {
			t.Fatalf("status %d: expected query in title, got %q", status, listings[0].Title)
		}
	}
}

func TestSearchPropagatesOtherFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 0)

	listings, err := client.Search(context.Background(), jobs.Criteria{})
	if err == nil {
		t.Fatalf("expected error, got %+v", listings)
	}

	var statusErr *jobs.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSampleListings(t *testing.T) {
	t.Parallel()

	listings := SampleListings("Python Developer")

	if len(listings) != 6 {
		t.Fatalf("expected 6 listings, got %d", len(listings))
	}

	tests := []struct {
		idx   int
		title string
		link  string
		kind  string
	}{
		{0, "Python Developer", "https://www.naukri.com/python-developer-jobs-in-bangalore", "Full-time"},
		{2, "Python Developer - Intern", "https://www.internshala.com/internships/python-developer-internship-in-bangalore/", "Internship"},
		{5, "Python Developer Trainee", "https://www.naukri.com/python-developer-trainee-jobs-in-pune", "Full-time"},
	}

	for _, tt := range tests {
		l := listings[tt.idx]
		if l.Title != tt.title || l.ApplyLink != tt.link || l.EmploymentType != tt.kind {
			t.Fatalf("listing %d: unexpected %+v", tt.idx, l)
		}
	}

	if !strings.Contains(listings[0].Description, "talented Python Developer") {
		t.Fatalf("expected query in description: %q", listings[0].Description)
	}
}
