package domain

import "strings"

// JobRecord is what the extractor pulls out of a job detail panel.
type JobRecord struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	HasLogo     bool   `json:"hasLogo"`
}

func (r JobRecord) Empty() bool {
	return strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Description) == ""
}
