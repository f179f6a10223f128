package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"jobflag-engine/internal/classify"
	"jobflag-engine/internal/config"
	"jobflag-engine/internal/domain"
)

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// writeTokenFile leaves the shutdown token where only the local user can
// read it.
func writeTokenFile(dataDir, token string) (string, error) {
	p := filepath.Join(dataDir, "engine.token")
	return p, os.WriteFile(p, []byte(token+"\n"), 0o600)
}

func shutdownHandler(token *string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Token guard
		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}

// liveRemote builds the remote client from the current config on every
// call, so PUT /config takes effect without a restart. Clients share
// http.DefaultTransport and its connection pool.
type liveRemote struct {
	cfgVal *atomic.Value
}

func (l liveRemote) client() *classify.Remote {
	cfg := l.cfgVal.Load().(config.Config)
	return classify.NewRemote(remoteConfig(cfg), nil)
}

func (l liveRemote) Classify(ctx context.Context, rec domain.JobRecord, credential string) (domain.Verdict, error) {
	return l.client().Classify(ctx, rec, credential)
}

// Ping vets a key against the configured endpoint before it is saved.
func (l liveRemote) Ping(ctx context.Context, credential string) error {
	return l.client().Ping(ctx, credential)
}

func remoteConfig(cfg config.Config) classify.RemoteConfig {
	return classify.RemoteConfig{
		Endpoint:         cfg.Remote.Endpoint,
		Model:            cfg.Remote.Model,
		Temperature:      cfg.Remote.Temperature,
		MaxTokens:        cfg.Remote.MaxTokens,
		DescriptionLimit: cfg.Remote.DescriptionLimit,
		Timeout:          cfg.RemoteTimeout(),
	}
}
