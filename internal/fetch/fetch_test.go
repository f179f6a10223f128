package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Page(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		if r.URL.Path == "/gone" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		_, _ = w.Write([]byte(`<html><body><h1>Backend Engineer</h1></body></html>`))
	}))
	defer srv.Close()

	f := New(NewHostLimiter(100, 10), "")
	doc, err := f.Page(context.Background(), srv.URL+"/job")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", doc.Find("h1").Text())
	assert.Equal(t, DefaultUserAgent, ua)

	_, err = f.Page(context.Background(), srv.URL+"/gone")
	assert.ErrorIs(t, err, ErrStatus)
}

func TestHostLimiter_PerHost(t *testing.T) {
	hl := NewHostLimiter(1, 1)
	ctx := context.Background()

	// first token per host is immediate
	start := time.Now()
	require.NoError(t, hl.WaitURL(ctx, "https://www.linkedin.com/jobs/view/1"))
	require.NoError(t, hl.WaitURL(ctx, "https://www.indeed.com/viewjob?jk=1"))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 2, hl.Hosts())

	// the second request to the same host waits for a token
	ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	assert.Error(t, hl.WaitURL(ctx, "https://WWW.LINKEDIN.COM/jobs/view/2"))
	assert.Equal(t, 2, hl.Hosts())
}
