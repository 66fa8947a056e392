// Package jobs holds the provider-neutral job-search model: listings, search
// criteria, query construction and the ordered provider fallback chain.
package jobs

import (
	"context"
	"strings"

	"github.com/careerup/careerup/internal/utils"
)

const (
	// DescriptionLimit is the number of runes kept from a provider description.
	DescriptionLimit = 300
	// NoApplyLink is used when a provider supplies no application URL.
	NoApplyLink = "#"

	EmploymentInternship = "Internship"
	EmploymentFullTime   = "Full-time"
)

// Listing is one normalized job or internship record.
type Listing struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ApplyLink      string `json:"apply_link"`
	EmploymentType string `json:"employment_type"`
}

// Criteria is what a provider searches with.
type Criteria struct {
	Skills     []string
	Roles      []string
	MaxResults int
}

// Provider searches one external job API and normalizes its rows into listings.
type Provider interface {
	Name() string
	Search(ctx context.Context, criteria Criteria) ([]Listing, error)
}

// TruncateDescription keeps the first DescriptionLimit runes and marks the cut.
func TruncateDescription(s string) string {
	return utils.Truncate(s, DescriptionLimit)
}

// ApplyLink returns link, or NoApplyLink when it is blank.
func ApplyLink(link string) string {
	if strings.TrimSpace(link) == "" {
		return NoApplyLink
	}
	return link
}

// Or returns s, or def when s is blank.
func Or(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
