package extract

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"jobflag-engine/internal/domain"
)

// ErrExtractionEmpty means neither a title nor a description was found; the
// analysis is skipped rather than reported.
var ErrExtractionEmpty = errors.New("no usable title or description")

const (
	DefaultDescriptionFloor  = 100
	DefaultSemanticMinLength = 200
)

type Options struct {
	DescriptionFloor  int
	SemanticMinLength int
}

func (o Options) withDefaults() Options {
	if o.DescriptionFloor <= 0 {
		o.DescriptionFloor = DefaultDescriptionFloor
	}
	if o.SemanticMinLength <= 0 {
		o.SemanticMinLength = DefaultSemanticMinLength
	}
	return o
}

type Extractor struct {
	Opts Options
}

// Extract reads one job posting out of a rendered page. It never fails:
// missing fields come back empty.
func (e Extractor) Extract(doc *goquery.Document, site Site, pageURL string) domain.JobRecord {
	opts := e.Opts.withDefaults()

	rec := domain.JobRecord{
		Title:   CleanText(visibleText(findFirst(doc, site.Title))),
		Company: CleanText(visibleText(findFirst(doc, site.Company))),
	}

	if el := findFirst(doc, site.Description); el != nil {
		rec.Description = CleanBlock(visibleText(el))
	}
	if utf8.RuneCountInString(rec.Description) < opts.DescriptionFloor {
		rec.Description = semanticDescription(doc, site, opts.SemanticMinLength)
	}

	rec.HasLogo = hasLogo(doc, site, pageURL)
	return rec
}

// Extract uses the default floors.
func Extract(doc *goquery.Document, site Site, pageURL string) domain.JobRecord {
	return Extractor{}.Extract(doc, site, pageURL)
}

func HasDetailPanel(doc *goquery.Document, site Site) bool {
	return findFirst(doc, site.DetailPanel) != nil
}

// findFirst walks the locator list in order and returns the first element
// any rule matches. Rules that fail to compile are skipped.
func findFirst(doc *goquery.Document, rules []string) *goquery.Selection {
	if doc == nil {
		return nil
	}
	for _, r := range rules {
		m, err := cascadia.Compile(r)
		if err != nil {
			continue
		}
		if sel := doc.FindMatcher(m); sel.Length() > 0 {
			return sel.First()
		}
	}
	return nil
}

func semanticDescription(doc *goquery.Document, site Site, minLen int) string {
	if doc == nil || site.SemanticScope == "" {
		return ""
	}
	m, err := cascadia.Compile(site.SemanticScope)
	if err != nil {
		return ""
	}

	var found string
	doc.FindMatcher(m).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := CleanBlock(visibleText(el))
		if utf8.RuneCountInString(text) <= minLen {
			return true
		}
		for _, h := range site.SectionHeaders {
			if strings.Contains(text, h) {
				found = text
				return false
			}
		}
		return true
	})
	return found
}

func hasLogo(doc *goquery.Document, site Site, pageURL string) bool {
	img := findFirst(doc, site.Logo)
	if img == nil {
		return false
	}
	src, ok := img.Attr("src")
	if !ok {
		return false
	}
	abs := resolveURL(pageURL, src)
	if abs == "" {
		return false
	}
	low := strings.ToLower(abs)
	for _, p := range site.LogoPlaceholders {
		if strings.Contains(low, strings.ToLower(p)) {
			return false
		}
	}
	return true
}

func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if !r.IsAbs() && base != "" {
		b, err := url.Parse(base)
		if err != nil {
			return ""
		}
		r = b.ResolveReference(r)
	}
	if r.Scheme == "" || r.Host == "" {
		return ""
	}
	switch r.Scheme {
	case "http", "https":
		return r.String()
	default:
		return ""
	}
}
