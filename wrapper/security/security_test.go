package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachekit/cachesemantics/store/memory"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(memory.New(), "correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "k", []byte("secret body"), 0))

	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("secret body"), got)
}

func TestStoredValueIsNotPlaintext(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	s, err := New(inner, "a passphrase")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "k", []byte("plaintext body"), 0))

	raw, ok, err := inner.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, string(raw), "plaintext body")
}
