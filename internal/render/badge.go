package render

import (
	"strconv"

	"jobflag-engine/internal/domain"
)

const (
	DefaultMaxFlags   = 5
	DefaultMaxSignals = 3

	NoFlagsText = "No red flags detected"
)

type Limits struct {
	MaxFlags   int
	MaxSignals int
}

func (l Limits) withDefaults() Limits {
	if l.MaxFlags <= 0 {
		l.MaxFlags = DefaultMaxFlags
	}
	if l.MaxSignals <= 0 {
		l.MaxSignals = DefaultMaxSignals
	}
	return l
}

// Badge is what the browser draws next to the job title.
type Badge struct {
	Percentage      string           `json:"percentage"`
	Score           int              `json:"score"`
	RiskLevel       domain.RiskLevel `json:"riskLevel"`
	Status          string           `json:"status"`
	Summary         string           `json:"summary,omitempty"`
	RedFlags        []string         `json:"redFlags"`
	PositiveSignals []string         `json:"positiveSignals"`
	SafeNote        string           `json:"safeNote,omitempty"`
	SourceCaption   string           `json:"sourceCaption"`
	ErrorNote       string           `json:"errorNote,omitempty"`
}

func StatusText(r domain.RiskLevel) string {
	switch r {
	case domain.RiskGreen:
		return "Likely Legitimate"
	case domain.RiskYellow:
		return "Some Concerns"
	default:
		return "High Risk"
	}
}

func SourceCaption(s domain.Source) string {
	if s == domain.SourceRemote {
		return "Analyzed by AI"
	}
	return "Basic rule analysis"
}

// NewBadge builds the view of v. The verdict's slices are copied, never
// truncated in place.
func NewBadge(v domain.Verdict, l Limits) Badge {
	l = l.withDefaults()
	b := Badge{
		Percentage:      strconv.Itoa(v.Score) + "%",
		Score:           v.Score,
		RiskLevel:       v.RiskLevel,
		Status:          StatusText(v.RiskLevel),
		Summary:         v.Summary,
		RedFlags:        capped(v.RedFlags, l.MaxFlags),
		PositiveSignals: capped(v.PositiveSignals, l.MaxSignals),
		SourceCaption:   SourceCaption(v.Source),
		ErrorNote:       v.ErrorNote,
	}
	if len(v.RedFlags) == 0 && v.Summary == "" {
		b.SafeNote = NoFlagsText
	}
	return b
}

func capped(in []string, n int) []string {
	if len(in) > n {
		in = in[:n]
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
