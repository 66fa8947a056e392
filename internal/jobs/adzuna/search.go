package adzuna

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/jobs"
	"github.com/careerup/careerup/internal/logger"
)

const (
	internshipSuffix = " internship"

	defaultTitle       = "N/A"
	defaultCompany     = "N/A"
	defaultLocation    = "India"
	defaultDescription = "No description available"
)

type row struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description  string `json:"description"`
	RedirectURL  string `json:"redirect_url"`
	ContractType string `json:"contract_type"`
}

// Search runs the regular job search followed by the internship search and
// returns at most max results, regular jobs first.
//
// A failed regular search is returned as an error and the internship search
// is not attempted. When the internship search fails after the regular search
// succeeded, Search logs a warning and returns the regular jobs with a nil
// error.
func (c *Client) Search(ctx context.Context, criteria jobs.Criteria) ([]jobs.Listing, error) {
	limit := criteria.MaxResults
	if limit <= 0 {
		limit = c.maxResults
	}

	query := jobs.BuildQuery(criteria.Skills, criteria.Roles)
	log := c.logger.With(zap.String(logger.FieldQuery, query))
	log.Info("searching jobs and internships")

	listings, err := c.search(ctx, query, limit, "")
	if err != nil {
		return nil, fmt.Errorf("searching jobs: %w", err)
	}
	log.Debug("found jobs", zap.Int("count", len(listings)))

	if perPage := limit / 2; perPage > 0 {
		internships, err := c.search(ctx, query+internshipSuffix, perPage, jobs.EmploymentInternship)
		if err != nil {
			log.Warn("internship search failed, keeping regular jobs", zap.Error(err))
		} else {
			log.Debug("found internships", zap.Int("count", len(internships)))
			listings = append(listings, internships...)
		}
	}

	if len(listings) > limit {
		listings = listings[:limit]
	}

	return listings, nil
}

// search makes one request. A non-empty employmentType overrides whatever the
// provider reports for every row.
func (c *Client) search(ctx context.Context, what string, perPage int, employmentType string) ([]jobs.Listing, error) {
	endpoint := fmt.Sprintf("%s/%s/search/1", c.APIURL, c.country)

	items, err := c.requester.GetItems(ctx, endpoint, c.buildParams(what, perPage), nil, "results")
	if err != nil {
		return nil, err
	}

	var rows []row
	if err := jobs.DecodeItems(items, &rows); err != nil {
		return nil, fmt.Errorf("%s: decode results: %w", Name, err)
	}

	listings := make([]jobs.Listing, 0, len(rows))
	for _, r := range rows {
		listing := r.listing()
		if employmentType != "" {
			listing.EmploymentType = employmentType
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (c *Client) buildParams(what string, perPage int) url.Values {
	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("results_per_page", strconv.Itoa(perPage))
	q.Set("what", what)
	q.Set("where", c.where)
	q.Set("content-type", "application/json")

	return q
}

func (r row) listing() jobs.Listing {
	return jobs.Listing{
		Title:          jobs.Or(r.Title, defaultTitle),
		Company:        jobs.Or(r.Company.DisplayName, defaultCompany),
		Location:       jobs.Or(r.Location.DisplayName, defaultLocation),
		Description:    jobs.TruncateDescription(jobs.Or(r.Description, defaultDescription)),
		ApplyLink:      jobs.ApplyLink(r.RedirectURL),
		EmploymentType: jobs.Or(r.ContractType, jobs.EmploymentFullTime),
	}
}
