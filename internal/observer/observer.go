package observer

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobflag-engine/internal/analyze"
	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/extract"
)

var ErrClosed = errors.New("observer closed")

type EventKind string

const (
	Navigation EventKind = "navigation"
	Mutation   EventKind = "mutation"
)

// Event is one page snapshot pushed by the browser side.
type Event struct {
	Kind EventKind
	URL  string
	HTML string
	At   time.Time
}

type Analyzer interface {
	AnalyzeTagged(ctx context.Context, tag analyze.Tag, rec domain.JobRecord) domain.Verdict
}

// Sink receives finished verdicts. It must drop results for a job that is
// no longer current in the tab.
type Sink interface {
	Deliver(tabID, jobID string, v domain.Verdict) bool
	Clear(tabID string)
}

type Options struct {
	Quiet     time.Duration
	Extractor extract.Extractor
	// Inactive observers keep tracking navigation but never analyze.
	Inactive bool
}

// Observer serializes the events of one tab onto a single goroutine.
// Analyses run off that goroutine so a navigation never waits on the
// remote classifier.
type Observer struct {
	TabID string
	Site  extract.Site

	analyzer  Analyzer
	sink      Sink
	extractor extract.Extractor

	state  JobState
	deb    *Debouncer
	events chan Event
	active chan bool
	done   chan struct{}

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func New(tabID string, site extract.Site, a Analyzer, s Sink, opts Options) *Observer {
	return &Observer{
		TabID:     tabID,
		Site:      site,
		analyzer:  a,
		sink:      s,
		extractor: opts.Extractor,
		deb:       NewDebouncer(opts.Quiet),
		events:    make(chan Event, 16),
		active:    make(chan bool, 1),
		done:      make(chan struct{}),
	}
}

// CurrentJob is the job id the tab is showing, or "" when unknown.
func (o *Observer) CurrentJob() string { return o.state.Current() }

func (o *Observer) Submit(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	select {
	case o.events <- ev:
		return nil
	case <-o.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetActive switches analysis on or off. Turning it off clears the badge.
func (o *Observer) SetActive(active bool) {
	select {
	case <-o.active:
	default:
	}
	select {
	case o.active <- active:
	case <-o.done:
	}
}

// Run processes events until ctx ends or Close is called.
func (o *Observer) Run(ctx context.Context, active bool) {
	defer o.wg.Wait()

	var latest *Event
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	arm := func() {
		deadline, ok := o.deb.Deadline()
		if !ok {
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(time.Until(deadline))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-o.done:
			return

		case on := <-o.active:
			if on == active {
				continue
			}
			active = on
			if !active {
				o.deb.Cancel()
				o.sink.Clear(o.TabID)
				continue
			}
			// the badge was cleared, so the current job has to be redone
			o.state.Reset()
			if latest != nil {
				o.deb.Touch(time.Now())
				arm()
			}

		case ev := <-o.events:
			latest = &ev
			if ev.Kind == Navigation {
				o.state.Reset()
			}
			if !active {
				continue
			}
			o.deb.Touch(ev.At)
			arm()

		case now := <-timer.C:
			if !o.deb.Fire(now) {
				arm()
				continue
			}
			if active && latest != nil {
				o.process(ctx, *latest)
			}
		}
	}
}

func (o *Observer) process(ctx context.Context, ev Event) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(ev.HTML))
	if err != nil {
		log.Printf("[observer] tab=%s parse failed: %v", o.TabID, err)
		return
	}
	if !extract.HasDetailPanel(doc, o.Site) {
		return
	}

	jobID := extract.JobID(o.Site, ev.URL)
	if !o.state.ShouldAnalyze(jobID) {
		return
	}

	rec := o.extractor.Extract(doc, o.Site, ev.URL)
	if rec.Empty() {
		log.Printf("[observer] tab=%s job=%s skipped: %v", o.TabID, jobID, extract.ErrExtractionEmpty)
		o.state.Release(jobID)
		return
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		v := o.analyzer.AnalyzeTagged(ctx, analyze.Tag{Site: o.Site.Name, JobID: jobID}, rec)
		select {
		case <-o.done:
			log.Printf("[observer] tab=%s job=%s closed, result dropped", o.TabID, jobID)
			return
		default:
		}
		if !o.state.MarkRendered(jobID) {
			log.Printf("[observer] tab=%s job=%s stale result dropped", o.TabID, jobID)
			return
		}
		o.sink.Deliver(o.TabID, jobID, v)
	}()
}

func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	close(o.done)
}
