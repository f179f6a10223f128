package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDataDir  = "JOBFLAG_DATA_DIR"
	EnvPort     = "JOBFLAG_PORT"
	EnvEndpoint = "JOBFLAG_REMOTE_ENDPOINT"
	EnvModel    = "JOBFLAG_REMOTE_MODEL"
)

// LoadDotEnv reads .env from the working directory and then the data dir.
// Variables already set in the process win; missing files are fine.
func LoadDotEnv(dataDir string) {
	paths := []string{".env"}
	if dataDir != "" {
		paths = append(paths, filepath.Join(dataDir, ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// DataDir is JOBFLAG_DATA_DIR or the working directory.
func DataDir() string {
	if d := strings.TrimSpace(os.Getenv(EnvDataDir)); d != "" {
		return d
	}
	return "."
}

// ApplyEnv overrides file values with the environment.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Remote.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		cfg.Remote.Model = v
	}
}
