package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyowdigitals/optin/internal/config"
	"github.com/pyowdigitals/optin/internal/optin"
)

func TestRegistry(t *testing.T) {
	cfg := config.Default()
	reg := New(cfg)
	assert.Same(t, cfg, reg.Config())

	_, ok := Get(reg, FormStoreKey)
	assert.False(t, ok)
	assert.Panics(t, func() { MustGet(reg, FormStoreKey) })

	store, err := optin.NewStore(4, optin.Settings{})
	require.NoError(t, err)
	Set(reg, FormStoreKey, store)

	got, ok := Get(reg, FormStoreKey)
	require.True(t, ok)
	assert.Same(t, store, got)
	assert.Same(t, store, MustGet(reg, FormStoreKey))
}

func TestRegistry_WrongTypeUnderSameName(t *testing.T) {
	reg := New(config.Default())
	Set(reg, Key[string]("core.optin.Store"), "not a store")

	_, ok := Get(reg, FormStoreKey)
	assert.False(t, ok)
}
