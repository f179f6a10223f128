package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"jobflag-engine/internal/domain"
)

const (
	DefaultEndpoint         = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel            = "llama-3.1-8b-instant"
	DefaultTemperature      = 0.1
	DefaultMaxTokens        = 500
	DefaultDescriptionLimit = 1500
)

// ErrRemoteClassifier is the sentinel behind every remote failure.
var ErrRemoteClassifier = errors.New("remote classifier failed")

// RemoteError carries the upstream message of a failed remote call.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote classifier: status %d: %s", e.Status, e.Message)
	}
	return "remote classifier: " + e.Message
}

func (e *RemoteError) Unwrap() error { return ErrRemoteClassifier }

type RemoteConfig struct {
	Endpoint         string
	Model            string
	Temperature      float64
	MaxTokens        int
	DescriptionLimit int
	// Zero leaves the transport default in place.
	Timeout time.Duration
}

// Remote talks to an OpenAI-compatible chat completions endpoint.
type Remote struct {
	cfg RemoteConfig
	hc  *http.Client
}

func NewRemote(cfg RemoteConfig, hc *http.Client) *Remote {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.DescriptionLimit <= 0 {
		cfg.DescriptionLimit = DefaultDescriptionLimit
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Remote{cfg: cfg, hc: hc}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// remoteVerdict is the model's reply; pointers tell absent from zero.
type remoteVerdict struct {
	Score           *float64 `json:"score"`
	RiskLevel       string   `json:"riskLevel"`
	RedFlags        []string `json:"redFlags"`
	PositiveSignals []string `json:"positiveSignals"`
	Summary         string   `json:"summary"`
}

// Classify makes a single attempt; there is no retry.
func (c *Remote) Classify(ctx context.Context, rec domain.JobRecord, credential string) (domain.Verdict, error) {
	req := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(rec, c.cfg.DescriptionLimit)},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	content, err := c.complete(ctx, req, credential)
	if err != nil {
		return domain.Verdict{}, err
	}
	if strings.TrimSpace(content) == "" {
		return domain.Verdict{}, &RemoteError{Message: "no response from model"}
	}

	var rv remoteVerdict
	if err := json.Unmarshal([]byte(cleanMarkdownJSON(content)), &rv); err != nil {
		return domain.Verdict{}, &RemoteError{Message: "malformed model reply: " + err.Error()}
	}
	return rv.verdict(), nil
}

// Ping checks that a credential is accepted by the endpoint.
func (c *Remote) Ping(ctx context.Context, credential string) error {
	_, err := c.complete(ctx, chatRequest{
		Model:     c.cfg.Model,
		Messages:  []chatMessage{{Role: "user", Content: "Say ok"}},
		MaxTokens: 5,
	}, credential)
	var re *RemoteError
	if errors.As(err, &re) && re.Status >= 200 && re.Status <= 299 {
		// the key was accepted even if the reply was unusable
		return nil
	}
	return err
}

func (c *Remote) complete(ctx context.Context, body chatRequest, credential string) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(b))
	if err != nil {
		return "", &RemoteError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &RemoteError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &RemoteError{Status: resp.StatusCode, Message: "read response: " + err.Error()}
	}

	var cr chatResponse
	decodeErr := json.Unmarshal(data, &cr)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "API request failed"
		if decodeErr == nil && cr.Error != nil && cr.Error.Message != "" {
			msg = cr.Error.Message
		}
		return "", &RemoteError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", &RemoteError{Status: resp.StatusCode, Message: "decode response: " + decodeErr.Error()}
	}
	if cr.Error != nil && cr.Error.Message != "" {
		return "", &RemoteError{Status: resp.StatusCode, Message: cr.Error.Message}
	}
	if len(cr.Choices) == 0 {
		return "", &RemoteError{Status: resp.StatusCode, Message: "no response from model"}
	}
	return cr.Choices[0].Message.Content, nil
}

func (rv remoteVerdict) verdict() domain.Verdict {
	score := 50
	if rv.Score != nil {
		// clamp before converting; out-of-range floats have no int value
		score = int(math.Round(math.Max(0, math.Min(100, *rv.Score))))
	}
	v := domain.Verdict{
		Score:           score,
		RedFlags:        rv.RedFlags,
		PositiveSignals: rv.PositiveSignals,
		Summary:         rv.Summary,
		Source:          domain.SourceRemote,
	}
	v.Normalize()
	return v
}

// cleanMarkdownJSON drops a ```json fence the model may wrap its reply in.
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
