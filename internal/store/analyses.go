package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobflag-engine/internal/domain"
)

// sqlite datetime() format, so window filters compare as plain strings.
const timeLayout = "2006-01-02 15:04:05"

var ErrNotFound = errors.New("not found")

// Analysis is one stored verdict.
type Analysis struct {
	ID         string         `json:"id"`
	Site       string         `json:"site"`
	JobID      string         `json:"jobId"`
	Title      string         `json:"title"`
	Company    string         `json:"company"`
	Verdict    domain.Verdict `json:"verdict"`
	AnalyzedAt time.Time      `json:"analyzedAt"`
}

type ListAnalysesOpts struct {
	Sort    string // score | date | company | title
	Window  string // 24h | 7d | all
	Flagged bool   // only verdicts with red flags
	Limit   int
}

func (d *DB) RecordAnalysis(ctx context.Context, a Analysis) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AnalyzedAt.IsZero() {
		a.AnalyzedAt = time.Now()
	}
	v := a.Verdict
	v.Normalize()
	flagsB, _ := json.Marshal(v.RedFlags)
	signalsB, _ := json.Marshal(v.PositiveSignals)

	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO analyses(id, site, job_id, title, company, score, risk_level, source, red_flags, positive_signals, summary, error_note, analyzed_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		a.ID,
		a.Site,
		a.JobID,
		a.Title,
		a.Company,
		v.Score,
		string(v.RiskLevel),
		string(v.Source),
		string(flagsB),
		string(signalsB),
		v.Summary,
		v.ErrorNote,
		a.AnalyzedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}
	return a.ID, nil
}

func (d *DB) ListAnalyses(ctx context.Context, opts ListAnalysesOpts) ([]Analysis, error) {
	if opts.Limit <= 0 || opts.Limit > 5000 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	var order string
	switch opts.Sort {
	case "score":
		order = "score ASC"
	case "company":
		order = "company ASC"
	case "title":
		order = "title ASC"
	default:
		order = "analyzed_at DESC"
	}

	where := "WHERE 1=1"
	switch opts.Window {
	case "24h":
		where += " AND analyzed_at >= datetime('now','-24 hours')"
	case "all":
	default:
		where += " AND analyzed_at >= datetime('now','-7 days')"
	}
	if opts.Flagged {
		where += " AND red_flags != '[]'"
	}

	query := fmt.Sprintf(`
SELECT id, site, job_id, title, company, score, risk_level, source, red_flags, positive_signals, summary, error_note, analyzed_at
FROM analyses
%s
ORDER BY %s
LIMIT ?;
`, where, order)

	rows, err := d.Pool.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *DB) GetAnalysis(ctx context.Context, id string) (Analysis, error) {
	row := d.Pool.QueryRowContext(ctx, `
SELECT id, site, job_id, title, company, score, risk_level, source, red_flags, positive_signals, summary, error_note, analyzed_at
FROM analyses WHERE id = ? LIMIT 1;`, id)
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

func (d *DB) DeleteAnalysis(ctx context.Context, id string) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CleanupOldAnalyses drops history older than the retention window.
func (d *DB) CleanupOldAnalyses(ctx context.Context, days int) (deleted int64, err error) {
	if days <= 0 {
		return 0, nil
	}
	res, err := d.Pool.ExecContext(ctx, `
DELETE FROM analyses
WHERE analyzed_at < datetime('now', ?);
`, fmt.Sprintf("-%d days", days))
	if err != nil {
		return 0, fmt.Errorf("cleanup old analyses: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (Analysis, error) {
	var a Analysis
	var risk, source, flagsJSON, signalsJSON, at string
	if err := s.Scan(
		&a.ID,
		&a.Site,
		&a.JobID,
		&a.Title,
		&a.Company,
		&a.Verdict.Score,
		&risk,
		&source,
		&flagsJSON,
		&signalsJSON,
		&a.Verdict.Summary,
		&a.Verdict.ErrorNote,
		&at,
	); err != nil {
		return Analysis{}, err
	}
	a.Verdict.RiskLevel = domain.RiskLevel(risk)
	a.Verdict.Source = domain.Source(source)
	_ = json.Unmarshal([]byte(flagsJSON), &a.Verdict.RedFlags)
	_ = json.Unmarshal([]byte(signalsJSON), &a.Verdict.PositiveSignals)
	a.Verdict.Normalize()
	a.AnalyzedAt, _ = time.ParseInLocation(timeLayout, at, time.UTC)
	return a, nil
}
