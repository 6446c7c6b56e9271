package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "github.com/dwilhelm/optlist/pkg/adapters/redis"
	"github.com/dwilhelm/optlist/pkg/domain"
	"github.com/dwilhelm/optlist/pkg/ports"
)

func setupClient(t *testing.T) *backend.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	return backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestStore_Contract(t *testing.T) {
	store := redisadapter.NewFromClient(setupClient(t))
	ports.RunDraftStoreContract(t, store)
}

func TestStore_PrefixIsolation(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	a := redisadapter.NewFromClient(client, redisadapter.WithPrefix("panel-a:draft:"))
	b := redisadapter.NewFromClient(client, redisadapter.WithPrefix("panel-b:draft:"))

	draft := domain.NewDraft()
	draft.States["g/a"] = true
	require.NoError(t, a.Save(ctx, "mine", draft))

	_, err := b.Load(ctx, "mine")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)

	ids, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_TTLExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redisadapter.NewFromClient(client, redisadapter.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "fleeting", domain.NewDraft()))

	_, err = store.Load(ctx, "fleeting")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "fleeting")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "fleeting", "lazy cleanup prunes the index")
}

func TestLocker_MutualExclusion(t *testing.T) {
	client := setupClient(t)
	locker := redisadapter.NewLocker(client, "optlist:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "draft-1", time.Minute)
	require.NoError(t, err)

	// A second acquisition must not succeed while the lock is held.
	blockedCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(blockedCtx, "draft-1", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	// Released: acquiring again succeeds.
	unlock2, err := locker.Lock(ctx, "draft-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_IndependentKeys(t *testing.T) {
	client := setupClient(t)
	locker := redisadapter.NewLocker(client, "optlist:")
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, "draft-a", time.Minute)
	require.NoError(t, err)
	defer func() { _ = unlockA(ctx) }()

	unlockB, err := locker.Lock(ctx, "draft-b", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlockB(ctx))
}

var (
	_ ports.DraftStore = (*redisadapter.Store)(nil)
	_ ports.Locker     = (*redisadapter.Locker)(nil)
)
