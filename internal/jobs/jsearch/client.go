// Package jsearch is the fallback job provider backed by the JSearch API on
// RapidAPI. When the API rejects the key it answers with a fixed set of
// sample listings built from the query.
package jsearch

import (
	"time"

	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/jobs"
	"github.com/careerup/careerup/internal/logger"
)

const (
	Name = "jsearch"

	apiURL            = "https://jsearch.p.rapidapi.com"
	apiHost           = "jsearch.p.rapidapi.com"
	searchPath        = "/search"
	defaultCountry    = "in"
	defaultRegion     = "India"
	defaultMaxResults = 10
)

type Config struct {
	APIKey string
	// Region is appended to the query text.
	Region string
	// Country is sent as the country filter.
	Country    string
	APIURL     string
	MaxResults int
	Timeout    time.Duration
}

type Client struct {
	apiKey     string
	region     string
	country    string
	maxResults int
	logger     *zap.Logger
	requester  *jobs.Requester

	APIURL string
}

func New(cfg Config, log *zap.Logger) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		region:     cfg.Region,
		country:    cfg.Country,
		maxResults: cfg.MaxResults,
		logger:     logger.WithCommonFields(log, Name, ""),
		requester:  jobs.NewRequester(Name, cfg.Timeout, log),
		APIURL:     cfg.APIURL,
	}

	if c.region == "" {
		c.region = defaultRegion
	}
	if c.country == "" {
		c.country = defaultCountry
	}
	if c.maxResults <= 0 {
		c.maxResults = defaultMaxResults
	}
	if c.APIURL == "" {
		c.APIURL = apiURL
	}

	return c
}

func (c *Client) Name() string {
	return Name
}
