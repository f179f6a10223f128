package domain

type AggregateStats struct {
	JobsAnalyzed   int64 `json:"jobsAnalyzed"`
	FlagsTriggered int64 `json:"flagsTriggered"`
}
