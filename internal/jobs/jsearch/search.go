package jsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/jobs"
	"github.com/careerup/careerup/internal/logger"
)

const (
	defaultTitle          = "N/A"
	defaultCompany        = "N/A"
	defaultCity           = "Remote"
	defaultDescription    = "No description available"
	defaultEmploymentType = "N/A"
)

type row struct {
	Title          string `json:"job_title"`
	Employer       string `json:"employer_name"`
	City           string `json:"job_city"`
	Country        string `json:"job_country"`
	Description    string `json:"job_description"`
	ApplyLink      string `json:"job_apply_link"`
	EmploymentType string `json:"job_employment_type"`
}

// Search makes a single request and returns at most the smaller of the
// client limit and criteria.MaxResults listings. A rejected API key yields
// the sample listings instead of an error.
func (c *Client) Search(ctx context.Context, criteria jobs.Criteria) ([]jobs.Listing, error) {
	limit := c.maxResults
	if criteria.MaxResults > 0 && criteria.MaxResults < limit {
		limit = criteria.MaxResults
	}

	query := jobs.BuildQuery(criteria.Skills, criteria.Roles)
	log := c.logger.With(zap.String(logger.FieldQuery, query))
	log.Info("searching jobs")

	header := http.Header{}
	header.Set("X-RapidAPI-Key", c.apiKey)
	header.Set("X-RapidAPI-Host", apiHost)

	items, err := c.requester.GetItems(ctx, c.APIURL+searchPath, c.buildParams(query), header, "data")
	if err != nil {
		if jobs.IsAuthError(err) {
			log.Warn("api key rejected, returning sample jobs", zap.Error(err))
			return SampleListings(query), nil
		}
		return nil, fmt.Errorf("searching jobs: %w", err)
	}

	var rows []row
	if err := jobs.DecodeItems(items, &rows); err != nil {
		return nil, fmt.Errorf("%s: decode results: %w", Name, err)
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}

	listings := make([]jobs.Listing, 0, len(rows))
	for _, r := range rows {
		listings = append(listings, r.listing())
	}

	log.Debug("found jobs", zap.Int("count", len(listings)))

	return listings, nil
}

func (c *Client) buildParams(query string) url.Values {
	q := url.Values{}
	q.Set("query", query+" "+c.region)
	q.Set("page", "1")
	q.Set("num_pages", "1")
	q.Set("date_posted", "all")
	q.Set("remote_jobs_only", "false")
	q.Set("country", c.country)

	return q
}

func (r row) listing() jobs.Listing {
	location := jobs.Or(r.City, defaultCity)
	if country := strings.TrimSpace(r.Country); country != "" {
		location += ", " + country
	}

	return jobs.Listing{
		Title:          jobs.Or(r.Title, defaultTitle),
		Company:        jobs.Or(r.Employer, defaultCompany),
		Location:       location,
		Description:    jobs.TruncateDescription(jobs.Or(r.Description, defaultDescription)),
		ApplyLink:      jobs.ApplyLink(r.ApplyLink),
		EmploymentType: jobs.Or(r.EmploymentType, defaultEmploymentType),
	}
}
