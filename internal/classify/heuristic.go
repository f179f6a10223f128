package classify

import (
	"regexp"
	"strings"

	"jobflag-engine/internal/domain"
)

const HeuristicSummary = "Basic analysis - add API key for AI-powered detection"

// rule is one fixed fraud pattern. TitleOnly rules look at the title alone,
// the rest at title+description.
type rule struct {
	Label     string
	Penalty   int
	TitleOnly bool
	Pattern   *regexp.Regexp
}

// rules are all applied; order is detection order of the red flags.
var rules = []rule{
	{
		Label:   "Unrealistic high salary",
		Penalty: 30,
		Pattern: regexp.MustCompile(`(?i)usd\s*[5-9],?\d{3}|\$\s*[5-9],?\d{3}.*month`),
	},
	{
		Label:     "Suspicious job title",
		Penalty:   25,
		TitleOnly: true,
		Pattern:   regexp.MustCompile(`(?i)task\s*tester|testing\s*(assistant|team)|remote\s*assistant`),
	},
	{
		Label:   "Remote part-time contract",
		Penalty: 10,
		Pattern: regexp.MustCompile(`(?i)part[\s-]*time.*contract|remote.*contract`),
	},
	{
		Label:   "Vague responsibilities",
		Penalty: 15,
		Pattern: regexp.MustCompile(`(?i)data\s*entry.*research|content.*coordination`),
	},
	{
		Label:   "No experience required",
		Penalty: 10,
		Pattern: regexp.MustCompile(`(?i)training.*provided|no\s*experience`),
	},
}

// Heuristic scores a posting with the fixed rule table. It is pure and
// never fails.
func Heuristic(rec domain.JobRecord) domain.Verdict {
	text := strings.ToLower(rec.Title + " " + rec.Description)

	score := 100
	flags := []string{}
	for _, r := range rules {
		target := text
		if r.TitleOnly {
			target = rec.Title
		}
		if r.Pattern.MatchString(target) {
			score -= r.Penalty
			flags = append(flags, r.Label)
		}
	}

	v := domain.Verdict{
		Score:           score,
		RedFlags:        flags,
		PositiveSignals: []string{},
		Summary:         HeuristicSummary,
		Source:          domain.SourceHeuristic,
	}
	v.Normalize()
	return v
}
