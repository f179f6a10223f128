package analyze

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobflag-engine/internal/classify"
	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/store"
)

// ErrOrchestratorFailure marks an analysis that produced the degraded verdict.
var ErrOrchestratorFailure = errors.New("analysis failed")

type CredentialSource interface {
	APIKey(ctx context.Context) (string, error)
}

type StatsRecorder interface {
	IncrementStats(ctx context.Context, flagged bool) error
}

type RemoteClassifier interface {
	Classify(ctx context.Context, rec domain.JobRecord, credential string) (domain.Verdict, error)
}

type HistoryRecorder interface {
	RecordAnalysis(ctx context.Context, a store.Analysis) (string, error)
}

// Tag identifies where a record came from. Both fields may be empty.
type Tag struct {
	Site  string
	JobID string
}

// Analyzer picks the classifier for a record and keeps the counters.
// Credentials, Stats and History are optional; Remote is required only when
// a credential is configured.
type Analyzer struct {
	Credentials CredentialSource
	Stats       StatsRecorder
	Remote      RemoteClassifier
	History     HistoryRecorder

	// Heuristic defaults to classify.Heuristic.
	Heuristic func(domain.JobRecord) domain.Verdict
	// Notify, when set, sees every completed analysis.
	Notify func(Tag, domain.Verdict)
}

// Analyze always returns a verdict.
func (a *Analyzer) Analyze(ctx context.Context, rec domain.JobRecord) domain.Verdict {
	return a.AnalyzeTagged(ctx, Tag{}, rec)
}

func (a *Analyzer) AnalyzeTagged(ctx context.Context, tag Tag, rec domain.JobRecord) domain.Verdict {
	v, err := a.classify(ctx, rec)
	if err != nil {
		degradedTotal.Inc()
		log.Printf("[analyze] degraded site=%s job=%s err=%v", tag.Site, tag.JobID, err)
		return domain.DegradedVerdict(err.Error())
	}

	analysesTotal.WithLabelValues(string(v.Source)).Inc()
	if v.Flagged() {
		flaggedTotal.Inc()
	}
	log.Printf("[analyze] site=%s job=%s source=%s score=%d flags=%d", tag.Site, tag.JobID, v.Source, v.Score, len(v.RedFlags))

	if a.Stats != nil {
		if err := a.Stats.IncrementStats(ctx, v.Flagged()); err != nil {
			log.Printf("[analyze] stats update failed: %v", err)
		}
	}
	if a.History != nil {
		_, err := a.History.RecordAnalysis(ctx, store.Analysis{
			Site:    tag.Site,
			JobID:   tag.JobID,
			Title:   rec.Title,
			Company: rec.Company,
			Verdict: v,
		})
		if err != nil {
			log.Printf("[analyze] history record failed: %v", err)
		}
	}
	if a.Notify != nil {
		a.Notify(tag, v)
	}
	return v
}

func (a *Analyzer) classify(ctx context.Context, rec domain.JobRecord) (v domain.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrOrchestratorFailure, r)
		}
	}()

	credential := a.credential(ctx)
	if credential != "" && a.Remote != nil {
		rv, rerr := a.classifyRemote(ctx, rec, credential)
		if rerr == nil {
			rv.Normalize()
			return rv, nil
		}
		remoteFallbacksTotal.Inc()
		log.Printf("[analyze] remote failed, using heuristic: %v", rerr)
		v = a.heuristic(rec)
		v.ErrorNote = errorNote(rerr)
		return v, nil
	}
	return a.heuristic(rec), nil
}

// classifyRemote turns a panic in the remote client into an error so it
// takes the heuristic fallback like any other remote failure.
func (a *Analyzer) classifyRemote(ctx context.Context, rec domain.JobRecord, credential string) (v domain.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("remote classifier panic: %v", r)
		}
	}()
	return a.Remote.Classify(ctx, rec, credential)
}

func (a *Analyzer) credential(ctx context.Context) string {
	if a.Credentials == nil {
		return ""
	}
	key, err := a.Credentials.APIKey(ctx)
	if err != nil {
		log.Printf("[analyze] credential lookup failed: %v", err)
		return ""
	}
	return key
}

func (a *Analyzer) heuristic(rec domain.JobRecord) domain.Verdict {
	if a.Heuristic != nil {
		v := a.Heuristic(rec)
		v.Normalize()
		return v
	}
	return classify.Heuristic(rec)
}

// errorNote is the upstream message when there is one.
func errorNote(err error) string {
	var re *classify.RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return err.Error()
}
