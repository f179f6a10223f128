package domain

type RiskLevel string

const (
	RiskRed    RiskLevel = "red"
	RiskYellow RiskLevel = "yellow"
	RiskGreen  RiskLevel = "green"
)

type Source string

const (
	SourceRemote    Source = "remote"
	SourceHeuristic Source = "heuristic"
)

// RiskFromScore buckets a 0-100 score: red below 40, yellow below 70.
func RiskFromScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskGreen
	case score >= 40:
		return RiskYellow
	default:
		return RiskRed
	}
}

// Verdict is the normalized classification of one job posting.
// Score 0 means certain fraud, 100 certain legitimate.
type Verdict struct {
	Score           int       `json:"score"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	RedFlags        []string  `json:"redFlags"`
	PositiveSignals []string  `json:"positiveSignals"`
	Summary         string    `json:"summary"`
	Source          Source    `json:"source"`
	ErrorNote       string    `json:"errorNote,omitempty"`
}

// Normalize clamps the score and always recomputes RiskLevel from it,
// whatever an upstream source claimed.
func (v *Verdict) Normalize() {
	if v.Score < 0 {
		v.Score = 0
	}
	if v.Score > 100 {
		v.Score = 100
	}
	v.RiskLevel = RiskFromScore(v.Score)
	if v.RedFlags == nil {
		v.RedFlags = []string{}
	}
	if v.PositiveSignals == nil {
		v.PositiveSignals = []string{}
	}
}

func (v Verdict) Flagged() bool { return len(v.RedFlags) > 0 }

// DegradedVerdict is returned when neither classifier produced a result.
func DegradedVerdict(note string) Verdict {
	return Verdict{
		Score:           50,
		RiskLevel:       RiskYellow,
		RedFlags:        []string{"Analysis failed"},
		PositiveSignals: []string{},
		Summary:         "Could not analyze job",
		Source:          SourceHeuristic,
		ErrorNote:       note,
	}
}
