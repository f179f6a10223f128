package observer

import (
	"context"
	"fmt"
	"sync"

	"jobflag-engine/internal/extract"
)

// Registry owns one Observer per browser tab.
type Registry struct {
	Analyzer Analyzer
	Sink     Sink
	Options  Options

	mu     sync.Mutex
	ctx    context.Context
	tabs   map[string]*Observer
	active bool
}

func NewRegistry(ctx context.Context, a Analyzer, s Sink, opts Options) *Registry {
	return &Registry{
		Analyzer: a,
		Sink:     s,
		Options:  opts,
		ctx:      ctx,
		tabs:     make(map[string]*Observer),
		active:   !opts.Inactive,
	}
}

// Dispatch routes ev to the tab's observer, starting one on first use or
// when the tab moved to another site.
func (r *Registry) Dispatch(ctx context.Context, tabID string, ev Event) error {
	site, ok := extract.SiteForURL(ev.URL)
	if !ok {
		return fmt.Errorf("%w: %s", extract.ErrUnsupportedSite, ev.URL)
	}

	r.mu.Lock()
	o := r.tabs[tabID]
	if o == nil || o.Site.Name != site.Name {
		if o != nil {
			o.Close()
		}
		o = New(tabID, site, r.Analyzer, r.Sink, r.Options)
		r.tabs[tabID] = o
		go o.Run(r.ctx, r.active)
	}
	r.mu.Unlock()

	return o.Submit(ctx, ev)
}

// CurrentJob is the job id shown in tabID, or "" for unknown tabs.
func (r *Registry) CurrentJob(tabID string) string {
	r.mu.Lock()
	o := r.tabs[tabID]
	r.mu.Unlock()
	if o == nil {
		return ""
	}
	return o.CurrentJob()
}

// TabJob is CurrentJob plus whether tabID still has an observer.
func (r *Registry) TabJob(tabID string) (string, bool) {
	r.mu.Lock()
	o := r.tabs[tabID]
	r.mu.Unlock()
	if o == nil {
		return "", false
	}
	return o.CurrentJob(), true
}

func (r *Registry) SetActive(active bool) {
	r.mu.Lock()
	r.active = active
	obs := make([]*Observer, 0, len(r.tabs))
	for _, o := range r.tabs {
		obs = append(obs, o)
	}
	r.mu.Unlock()

	for _, o := range obs {
		o.SetActive(active)
	}
}

func (r *Registry) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Registry) CloseTab(tabID string) {
	r.mu.Lock()
	o := r.tabs[tabID]
	delete(r.tabs, tabID)
	r.mu.Unlock()
	if o != nil {
		o.Close()
		r.Sink.Clear(tabID)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tabs)
}

func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.tabs {
		o.Close()
		delete(r.tabs, id)
	}
}
