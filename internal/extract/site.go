package extract

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnsupportedSite means no locator table matches the page host.
var ErrUnsupportedSite = errors.New("unsupported site")

// Site is the locator table for one job board. Every list is ordered most
// specific first; lookups are first-match-wins.
type Site struct {
	Name  string
	Hosts []string

	DetailPanel []string
	Title       []string
	Company     []string
	Description []string
	Logo        []string

	// Semantic fallback for the description.
	SemanticScope  string
	SectionHeaders []string

	LogoPlaceholders []string

	// Job id lookup: query params first, then regexps over the full URL
	// (first capture group).
	JobIDParams   []string
	JobIDPatterns []string
}

var LinkedIn = Site{
	Name:  "linkedin",
	Hosts: []string{"linkedin.com"},
	DetailPanel: []string{
		".jobs-search__job-details",
		".scaffold-layout__detail",
		".job-view-layout",
		`[class*="job-details"]`,
		`[class*="jobs-details"]`,
	},
	Title: []string{
		".job-details-jobs-unified-top-card__job-title",
		".jobs-unified-top-card__job-title",
		".t-24.t-bold",
		`h1[class*="job-title"]`,
		"h1",
		"h2.t-24",
	},
	Description: []string{
		"#job-details",
		".jobs-description__content",
		".jobs-description-content__text",
		".jobs-box__html-content",
		`[class*="jobs-description"]`,
		".jobs-description",
		`article[class*="jobs"]`,
	},
	Company: []string{
		".job-details-jobs-unified-top-card__company-name",
		".jobs-unified-top-card__company-name",
		`[class*="company-name"]`,
		".jobs-unified-top-card__subtitle-primary-grouping a",
	},
	Logo: []string{
		".jobs-unified-top-card__company-logo img",
		".EntityPhoto-square-3 img",
		`[class*="company-logo"] img`,
	},
	SemanticScope: `section, article, div[class*="jobs"]`,
	SectionHeaders: []string{
		"About the job", "About the role", "Job Description",
		"About The Role", "Key Responsibilities", "Responsibilities",
	},
	LogoPlaceholders: []string{"ghost"},
	JobIDPatterns: []string{
		`currentJobId=(\d+)`,
		`/jobs/view/(\d+)`,
	},
}

var Indeed = Site{
	Name:  "indeed",
	Hosts: []string{"indeed.com", "indeed."},
	DetailPanel: []string{
		".jobsearch-ViewJobLayout-jobDisplay",
		".jobsearch-JobComponent",
		"#jobsearch-ViewJobLayout",
		`[class*="ViewJobLayout"]`,
		".job-view-layout",
	},
	Title: []string{
		"h2.jobsearch-JobInfoHeader-title",
		".jobsearch-JobInfoHeader-title",
		"h1.jobsearch-JobInfoHeader-title",
		`[data-testid="jobsearch-JobInfoHeader-title"]`,
		".jobTitle",
		`h2[class*="JobInfoHeader"]`,
		`h1[class*="jobTitle"]`,
	},
	Description: []string{
		"#jobDescriptionText",
		".jobDescriptionText",
		".jobsearch-jobDescriptionText",
		`[id*="jobDescription"]`,
		`[class*="jobDescription"]`,
		".job-description",
	},
	Company: []string{
		`[data-company-name="true"]`,
		`[data-testid="inlineHeader-companyName"]`,
		".jobsearch-InlineCompanyRating-companyHeader a",
		".jobsearch-CompanyInfoContainer a",
		`[class*="CompanyInfo"] a`,
		".companyName",
	},
	Logo: []string{
		".jobsearch-CompanyAvatar img",
		`[class*="CompanyAvatar"] img`,
		".company-logo img",
	},
	SemanticScope: `section, article, div[id*="job"], div[class*="job"]`,
	SectionHeaders: []string{
		"About the job", "About the role", "Job Description",
		"About The Role", "Key Responsibilities", "Responsibilities",
		"What you'll do", "Requirements", "Qualifications",
	},
	LogoPlaceholders: []string{"placeholder"},
	JobIDParams:      []string{"jk", "vjk"},
	JobIDPatterns: []string{
		`/viewjob/([a-zA-Z0-9]+)`,
	},
}

// Sites is consulted in order by SiteForURL.
var Sites = []Site{LinkedIn, Indeed}

func SiteForURL(raw string) (Site, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return Site{}, false
	}
	host := strings.ToLower(u.Host)
	for _, s := range Sites {
		for _, h := range s.Hosts {
			if host == h || strings.HasSuffix(host, "."+h) || (strings.HasSuffix(h, ".") && strings.Contains(host, h)) {
				return s, true
			}
		}
	}
	return Site{}, false
}

func SiteByName(name string) (Site, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Sites {
		if s.Name == name {
			return s, true
		}
	}
	return Site{}, false
}
