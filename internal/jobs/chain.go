package jobs

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/logger"
)

// Status describes one provider slot of a Chain.
type Status struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

type link struct {
	name     string
	provider Provider
	reason   string
}

func (l *link) enabled() bool { return l.provider != nil }

// Chain searches providers in the order they were added and returns the
// first successful result. Providers run strictly one after another.
type Chain struct {
	links  []*link
	logger *zap.Logger
}

func NewChain(log *zap.Logger) *Chain {
	return &Chain{logger: logger.OrNop(log)}
}

// Add appends an enabled provider.
func (c *Chain) Add(p Provider) *Chain {
	c.links = append(c.links, &link{name: p.Name(), provider: p})
	return c
}

// AddDisabled records a provider slot that is not configured. It is skipped
// by Search and reported by Describe.
func (c *Chain) AddDisabled(name, reason string) *Chain {
	c.links = append(c.links, &link{name: name, reason: reason})
	return c
}

// Enabled reports whether at least one provider can be searched.
func (c *Chain) Enabled() bool {
	for _, l := range c.links {
		if l.enabled() {
			return true
		}
	}
	return false
}

// Search tries each enabled provider in turn. When every provider fails the
// listings are nil and the joined provider errors are returned.
func (c *Chain) Search(ctx context.Context, criteria Criteria) ([]Listing, error) {
	var errs []error

	for _, l := range c.links {
		if !l.enabled() {
			c.logger.Debug("job provider disabled", zap.String(logger.FieldProvider, l.name), zap.String("reason", l.reason))
			continue
		}

		listings, err := l.provider.Search(ctx, criteria)
		if err != nil {
			c.logger.Warn("job provider failed", zap.String(logger.FieldProvider, l.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
			continue
		}

		c.logger.Info("job provider succeeded",
			zap.String(logger.FieldProvider, l.name),
			zap.Int("count", len(listings)),
		)
		return listings, nil
	}

	if len(errs) == 0 {
		c.logger.Info("no job providers configured")
		return nil, nil
	}

	return nil, errors.Join(errs...)
}

// Describe returns the status of every provider slot in fallback order.
func (c *Chain) Describe() []Status {
	statuses := make([]Status, 0, len(c.links))
	for _, l := range c.links {
		statuses = append(statuses, Status{Name: l.name, Enabled: l.enabled(), Reason: l.reason})
	}
	return statuses
}
