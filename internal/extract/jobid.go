package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// JobID parses the job identifier out of a page URL using the site's
// params and patterns. Empty when nothing matches.
func JobID(site Site, pageURL string) string {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return ""
	}

	if u, err := url.Parse(pageURL); err == nil {
		q := u.Query()
		for _, p := range site.JobIDParams {
			if v := strings.TrimSpace(q.Get(p)); v != "" {
				return v
			}
		}
	}

	for _, p := range site.JobIDPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if m := re.FindStringSubmatch(pageURL); len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	return ""
}
