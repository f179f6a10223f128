package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (jobflag)"
	maxPageBytes     = 8 << 20
)

var ErrStatus = errors.New("unexpected status")

// Fetcher downloads job pages politely and parses them with goquery.
type Fetcher struct {
	HC        *http.Client
	Limiter   *HostLimiter
	UserAgent string
}

func New(limiter *HostLimiter, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		HC:        &http.Client{Timeout: 20 * time.Second},
		Limiter:   limiter,
		UserAgent: userAgent,
	}
}

func (f *Fetcher) Page(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	if f.Limiter != nil {
		if err := f.Limiter.WaitURL(ctx, pageURL); err != nil {
			return nil, err
		}
	}

	res, err := f.HC.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		log.Printf("[fetch] upstream status=%s url=%s body=%q", res.Status, pageURL, string(b))
		return nil, fmt.Errorf("%w: %d", ErrStatus, res.StatusCode)
	}

	return goquery.NewDocumentFromReader(io.LimitReader(res.Body, maxPageBytes))
}
