package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-library/internal/config"
)

func TestOpenBackend_Memory(t *testing.T) {
	b, err := OpenBackend(context.Background(), &config.Config{StoreBackend: config.BackendMemory})
	require.NoError(t, err)
	defer b.Close()

	assert.NotNil(t, b.Memory)
	assert.NotNil(t, b.Store)
	assert.NotNil(t, b.Users)
	assert.NotNil(t, b.Authenticator)
	assert.Nil(t, b.Postgres)
	assert.Nil(t, b.Firebase)
}

func TestOpenBackend_Unknown(t *testing.T) {
	_, err := OpenBackend(context.Background(), &config.Config{StoreBackend: "cassandra"})
	assert.Error(t, err)
}
