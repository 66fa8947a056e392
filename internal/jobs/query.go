package jobs

import "strings"

// DefaultQuery is searched when there are neither roles nor skills.
const DefaultQuery = "software developer"

const techScanDepth = 5

// seniorityPrefixes are removed from the role, in order, wherever they occur.
var seniorityPrefixes = []string{"Junior", "Senior", "Mid-level", "Lead", "Principal", "Entry-level", "Entry Level"}

var techKeywords = map[string]struct{}{
	"python":     {},
	"java":       {},
	"javascript": {},
	"react":      {},
	"node":       {},
	"nodejs":     {},
	"angular":    {},
	"vue":        {},
}

// BuildQuery turns the ranked skills and roles of an analysis into a short
// search phrase: the first role without seniority words, followed by the
// first mainstream technology among the top skills. Without roles it falls
// back to the top skill and then to DefaultQuery.
func BuildQuery(skills, roles []string) string {
	if len(roles) > 0 {
		if role := CleanRole(roles[0]); role != "" {
			if tech := firstTech(skills); tech != "" {
				return role + " " + tech
			}
			return role
		}
	}

	if len(skills) > 0 {
		return skills[0]
	}

	return DefaultQuery
}

// CleanRole strips seniority words from a role title.
func CleanRole(role string) string {
	for _, prefix := range seniorityPrefixes {
		role = strings.TrimSpace(strings.ReplaceAll(role, prefix, ""))
	}
	return role
}

func firstTech(skills []string) string {
	if len(skills) > techScanDepth {
		skills = skills[:techScanDepth]
	}
	for _, skill := range skills {
		if _, ok := techKeywords[strings.ToLower(skill)]; ok {
			return skill
		}
	}
	return ""
}
