package secrets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvAPIKey, "")
	ctx := context.Background()
	s := NewStore()

	key, err := s.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", key)

	require.NoError(t, s.SetAPIKey(ctx, "  gsk_live  "))
	key, err = s.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gsk_live", key)

	require.NoError(t, s.DeleteAPIKey(ctx))
	require.NoError(t, s.DeleteAPIKey(ctx))
	key, err = s.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", key)
}

func TestStore_EnvFallback(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvAPIKey, "from-env")

	key, err := NewStore().APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestStore_RejectsEmpty(t *testing.T) {
	keyring.MockInit()
	assert.ErrorIs(t, NewStore().SetAPIKey(context.Background(), "   "), ErrEmptyAPIKey)
}
