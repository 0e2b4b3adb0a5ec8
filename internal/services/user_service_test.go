package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	alice := env.signup(t, "alice")
	users := NewUserService(env.store.Users)

	got, err := users.Profile(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = users.Profile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t, AccessOwnerRelatives)
	env.signup(t, "alice")
	env.signup(t, "alina")
	env.signup(t, "bob")
	users := NewUserService(env.store.Users)

	found, err := users.Search(context.Background(), "ali")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = users.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, found)
}
