// Package adzuna is the primary job provider. It searches the Adzuna API in a
// single country and widens the result with a second internship search.
package adzuna

import (
	"time"

	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/jobs"
	"github.com/careerup/careerup/internal/logger"
)

const (
	Name = "adzuna"

	apiURL            = "https://api.adzuna.com/v1/api/jobs"
	defaultCountry    = "in"
	defaultWhere      = "india"
	defaultMaxResults = 15
)

type Config struct {
	AppID      string
	AppKey     string
	Country    string
	Where      string
	APIURL     string
	MaxResults int
	Timeout    time.Duration
}

type Client struct {
	appID      string
	appKey     string
	country    string
	where      string
	maxResults int
	logger     *zap.Logger
	requester  *jobs.Requester

	APIURL string
}

func New(cfg Config, log *zap.Logger) *Client {
	c := &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		country:    cfg.Country,
		where:      cfg.Where,
		maxResults: cfg.MaxResults,
		logger:     logger.WithCommonFields(log, Name, ""),
		requester:  jobs.NewRequester(Name, cfg.Timeout, log),
		APIURL:     cfg.APIURL,
	}

	if c.country == "" {
		c.country = defaultCountry
	}
	if c.where == "" {
		c.where = defaultWhere
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
