package classify

import (
	"fmt"

	"jobflag-engine/internal/domain"
)

const systemPrompt = `You are an expert at detecting fake and fraudulent job postings. Analyze job postings and determine if they're legitimate or scams.

Consider these red flags from academic research on job fraud:
1. FINANCIAL: Upfront fees, unrealistic salary (e.g., $5000+/month for entry-level remote work)
2. PROCESS: No interview required, immediate hiring, requests for personal info or off-platform contact
3. LINGUISTIC: Vague descriptions, MLM language, excessive urgency
4. STRUCTURAL: Missing company details, generic titles like "Task Tester", "Remote Assistant"

IMPORTANT: $5,000-8,000/month for a "testing assistant" or "data entry" role is EXTREMELY suspicious.

Respond with ONLY valid JSON (no markdown):
{
  "score": <0-100 where 0=scam, 100=legitimate>,
  "riskLevel": "<red|yellow|green>",
  "redFlags": ["<flag1>", ...],
  "positiveSignals": ["<signal1>", ...],
  "summary": "<one sentence>"
}`

// SystemPrompt returns the fixed instruction sent with every remote request.
func SystemPrompt() string { return systemPrompt }

func buildUserPrompt(rec domain.JobRecord, descLimit int) string {
	company := rec.Company
	if company == "" {
		company = "Not specified"
	}
	return fmt.Sprintf("Analyze this job posting:\n\nJOB TITLE: %s\nCOMPANY: %s\nDESCRIPTION:\n%s",
		rec.Title, company, truncateRunes(rec.Description, descLimit))
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
