package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract_ThirdLocatorMatches(t *testing.T) {
	site := Site{
		Title:   []string{"#missing-one", ".missing-two", "h1.third"},
		Company: []string{".nope", ".company"},
	}
	doc := mustDoc(t, `<html><body>
		<h1 class="third">  Senior   Go Engineer </h1>
		<span class="company">Acme</span>
	</body></html>`)

	rec := Extract(doc, site, "")
	assert.Equal(t, "Senior Go Engineer", rec.Title)
	assert.Equal(t, "Acme", rec.Company)
}

func TestExtract_InvalidSelectorSkipped(t *testing.T) {
	site := Site{Title: []string{"[[[", "h1"}}
	doc := mustDoc(t, `<html><body><h1>Data Analyst</h1></body></html>`)

	assert.Equal(t, "Data Analyst", Extract(doc, site, "").Title)
}

func TestExtract_WhitespaceOnlyMatchIsEmpty(t *testing.T) {
	site := Site{Title: []string{".title", "h1"}}
	doc := mustDoc(t, `<html><body><div class="title">   </div><h1>Other</h1></body></html>`)

	assert.Equal(t, "", Extract(doc, site, "").Title)
}

func TestExtract_ShortDescriptionFallsBackToEmpty(t *testing.T) {
	site := Site{
		Description:    []string{"#desc"},
		SemanticScope:  "section",
		SectionHeaders: []string{"About the job"},
	}
	doc := mustDoc(t, `<html><body>
		<div id="desc">Short blurb.</div>
		<section>About the job: tiny</section>
	</body></html>`)

	assert.Equal(t, "", Extract(doc, site, "").Description)
}

func TestExtract_SemanticFallback(t *testing.T) {
	site := Site{
		Description:    []string{"#desc"},
		SemanticScope:  "section, article",
		SectionHeaders: []string{"Responsibilities"},
	}
	long := strings.Repeat("Build reliable services and review code. ", 8)
	doc := mustDoc(t, `<html><body>
		<div id="desc">Too short.</div>
		<section>`+long+`</section>
		<article><h2>Responsibilities</h2><p>`+long+`</p></article>
	</body></html>`)

	desc := Extract(doc, site, "").Description
	assert.True(t, strings.HasPrefix(desc, "Responsibilities"))
	assert.Greater(t, len(desc), 200)
}

func TestExtract_LongDescriptionKept(t *testing.T) {
	site := Site{Description: []string{"#desc"}}
	body := strings.Repeat("We ship software every week. ", 6)
	doc := mustDoc(t, `<html><body><div id="desc"><p>`+body+`</p><script>var x = 1;</script></div></body></html>`)

	desc := Extract(doc, site, "").Description
	assert.Equal(t, strings.TrimSpace(body), desc)
	assert.NotContains(t, desc, "var x")
}

func TestExtract_Logo(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		pageURL string
		want    bool
	}{
		{"absolute", `<div class="logo"><img src="https://media.licdn.com/acme.png"></div>`, "", true},
		{"relative resolved", `<div class="logo"><img src="/img/acme.png"></div>`, "https://www.linkedin.com/jobs/view/1", true},
		{"relative without base", `<div class="logo"><img src="/img/acme.png"></div>`, "", false},
		{"placeholder", `<div class="logo"><img src="https://static.licdn.com/ghost-company.png"></div>`, "", false},
		{"no src", `<div class="logo"><img></div>`, "", false},
		{"missing", `<div></div>`, "", false},
	}
	site := Site{Logo: []string{".logo img"}, LogoPlaceholders: []string{"ghost"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, `<html><body>`+tt.html+`</body></html>`)
			assert.Equal(t, tt.want, Extract(doc, site, tt.pageURL).HasLogo)
		})
	}
}

func TestExtract_LinkedInTable(t *testing.T) {
	desc := strings.Repeat("Design and run distributed systems at scale. ", 5)
	doc := mustDoc(t, `<html><body>
		<div class="jobs-search__job-details">
			<h1 class="job-details-jobs-unified-top-card__job-title">Platform Engineer</h1>
			<div class="job-details-jobs-unified-top-card__company-name"><a>Globex</a></div>
			<div class="jobs-unified-top-card__company-logo"><img src="https://media.licdn.com/globex.png"></div>
			<div id="job-details">`+desc+`</div>
		</div>
	</body></html>`)

	assert.True(t, HasDetailPanel(doc, LinkedIn))
	rec := Extract(doc, LinkedIn, "https://www.linkedin.com/jobs/view/42")
	assert.Equal(t, "Platform Engineer", rec.Title)
	assert.Equal(t, "Globex", rec.Company)
	assert.Equal(t, strings.TrimSpace(desc), rec.Description)
	assert.True(t, rec.HasLogo)
}

func TestHasDetailPanel_Missing(t *testing.T) {
	doc := mustDoc(t, `<html><body><ul class="jobs-list"></ul></body></html>`)
	assert.False(t, HasDetailPanel(doc, Indeed))
}

func TestCleanBlock(t *testing.T) {
	in := "  Line one   here \n\n\t  \n line   two "
	assert.Equal(t, "Line one here\nline two", CleanBlock(in))
	assert.Equal(t, "Line one here line two", CleanText(in))
}
