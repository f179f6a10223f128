package secrets

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the engine's secrets in the OS keychain.
	KeyringService = "jobflag"
	APIKeyAccount  = "groq-api-key"

	// EnvAPIKey is read when the keychain has nothing (headless boxes, CI).
	EnvAPIKey = "JOBFLAG_API_KEY"
)

var ErrEmptyAPIKey = errors.New("api key is empty")

// Store is the credential store for the remote classifier key.
type Store struct {
	Service string
	Account string
}

func NewStore() Store {
	return Store{Service: KeyringService, Account: APIKeyAccount}
}

// APIKey returns the stored key, or "" when none is configured.
func (s Store) APIKey(_ context.Context) (string, error) {
	// 1) Keyring first
	key, err := keyring.Get(s.Service, s.Account)
	switch {
	case err == nil && strings.TrimSpace(key) != "":
		return strings.TrimSpace(key), nil
	case err != nil && !errors.Is(err, keyring.ErrNotFound):
		// keychain unavailable; the env fallback still applies
		if env := strings.TrimSpace(os.Getenv(EnvAPIKey)); env != "" {
			return env, nil
		}
		return "", err
	}

	// 2) Env
	return strings.TrimSpace(os.Getenv(EnvAPIKey)), nil
}

func (s Store) SetAPIKey(_ context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}
	if strings.TrimSpace(s.Account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Set(s.Service, s.Account, key)
}

func (s Store) DeleteAPIKey(_ context.Context) error {
	err := keyring.Delete(s.Service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
