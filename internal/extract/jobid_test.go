package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobID(t *testing.T) {
	tests := []struct {
		name string
		site Site
		url  string
		want string
	}{
		{"linkedin search", LinkedIn, "https://www.linkedin.com/jobs/search/?currentJobId=3901&keywords=go", "3901"},
		{"linkedin view", LinkedIn, "https://www.linkedin.com/jobs/view/777/", "777"},
		{"linkedin none", LinkedIn, "https://www.linkedin.com/feed/", ""},
		{"indeed jk", Indeed, "https://www.indeed.com/viewjob?jk=abc123&from=serp", "abc123"},
		{"indeed vjk", Indeed, "https://www.indeed.com/jobs?q=go&vjk=f00d", "f00d"},
		{"indeed path", Indeed, "https://www.indeed.com/viewjob/XyZ9", "XyZ9"},
		{"empty", Indeed, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JobID(tt.site, tt.url))
		})
	}
}

func TestSiteForURL(t *testing.T) {
	s, ok := SiteForURL("https://www.linkedin.com/jobs/view/1")
	assert.True(t, ok)
	assert.Equal(t, "linkedin", s.Name)

	s, ok = SiteForURL("https://uk.indeed.com/viewjob?jk=1")
	assert.True(t, ok)
	assert.Equal(t, "indeed", s.Name)

	s, ok = SiteForURL("https://ca.indeed.co.uk/viewjob?jk=1")
	assert.True(t, ok)
	assert.Equal(t, "indeed", s.Name)

	_, ok = SiteForURL("https://example.com/jobs/1")
	assert.False(t, ok)

	_, ok = SiteByName("Indeed")
	assert.True(t, ok)
}
