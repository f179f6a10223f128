package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"dataDir"`
	} `yaml:"app" json:"app"`

	Remote struct {
		Endpoint         string  `yaml:"endpoint" json:"endpoint"`
		Model            string  `yaml:"model" json:"model"`
		Temperature      float64 `yaml:"temperature" json:"temperature"`
		MaxTokens        int     `yaml:"max_tokens" json:"maxTokens"`
		DescriptionLimit int     `yaml:"description_limit" json:"descriptionLimit"`
		TimeoutSeconds   int     `yaml:"timeout_seconds" json:"timeoutSeconds"`
	} `yaml:"remote" json:"remote"`

	Extraction struct {
		DescriptionFloor  int `yaml:"description_floor" json:"descriptionFloor"`
		SemanticMinLength int `yaml:"semantic_min_length" json:"semanticMinLength"`
	} `yaml:"extraction" json:"extraction"`

	Observer struct {
		DebounceMS int  `yaml:"debounce_ms" json:"debounceMs"`
		Active     bool `yaml:"active" json:"active"`
	} `yaml:"observer" json:"observer"`

	Render struct {
		MaxFlags   int `yaml:"max_flags" json:"maxFlags"`
		MaxSignals int `yaml:"max_signals" json:"maxSignals"`
	} `yaml:"render" json:"render"`

	Retention struct {
		AnalysesDays   int `yaml:"analyses_days" json:"analysesDays"`
		CleanupMinutes int `yaml:"cleanup_minutes" json:"cleanupMinutes"`
	} `yaml:"retention" json:"retention"`

	Scan struct {
		RequestsPerSec float64 `yaml:"requests_per_sec" json:"requestsPerSec"`
		Burst          int     `yaml:"burst" json:"burst"`
		Workers        int     `yaml:"workers" json:"workers"`
		UserAgent      string  `yaml:"user_agent" json:"userAgent"`
	} `yaml:"scan" json:"scan"`
}

const DefaultPort = 38471

// Default is the configuration used for any key missing from the file.
func Default() Config {
	var c Config
	c.App.Port = DefaultPort
	c.Remote.Endpoint = "https://api.groq.com/openai/v1/chat/completions"
	c.Remote.Model = "llama-3.1-8b-instant"
	c.Remote.Temperature = 0.1
	c.Remote.MaxTokens = 500
	c.Remote.DescriptionLimit = 1500
	c.Extraction.DescriptionFloor = 100
	c.Extraction.SemanticMinLength = 200
	c.Observer.DebounceMS = 300
	c.Observer.Active = true
	c.Render.MaxFlags = 5
	c.Render.MaxSignals = 3
	c.Retention.AnalysesDays = 30
	c.Retention.CleanupMinutes = 60
	c.Scan.RequestsPerSec = 1
	c.Scan.Burst = 2
	c.Scan.Workers = 4
	c.Scan.UserAgent = "Mozilla/5.0 (jobflag)"
	return c
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}

func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.Observer.DebounceMS) * time.Millisecond
}

func (c Config) CleanupInterval() time.Duration {
	return time.Duration(c.Retention.CleanupMinutes) * time.Minute
}
