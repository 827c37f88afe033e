package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/miniorder-service/internal/domain"
	"github.com/spec-kit/miniorder-service/internal/wechat"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

type fakeExchanger struct {
	identity *wechat.Identity
	err      error
}

func (f *fakeExchanger) ExchangeCode(_ context.Context, code string) (*wechat.Identity, error) {
	if code == "" {
		return nil, util.NewInvalidArgument("code must not be empty", nil)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

// fakeUserRepo mimics the upsert contract: at most one row per openid, all
// attributes overwritten on every call.
type fakeUserRepo struct {
	mu        sync.Mutex
	rows      map[string]domain.User
	upsertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[user.OpenID] = *user
	return nil
}

func (f *fakeUserRepo) GetByOpenID(_ context.Context, openID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[openID]
	if !ok {
		return nil, util.NewNotFound("user")
	}
	return &row, nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func newIdentityService(exchanger wechat.Exchanger, repo *fakeUserRepo) *IdentityService {
	return NewIdentityService(IdentityDependencies{
		Exchanger: exchanger,
		UserRepo:  repo,
	}, zap.NewNop())
}

func TestResolveIdentityFirstLoginCreatesOneRow(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newIdentityService(&fakeExchanger{identity: &wechat.Identity{OpenID: "U1"}}, repo)

	resolved, err := svc.ResolveIdentity(context.Background(), "abc123", domain.Profile{})
	require.NoError(t, err)
	assert.Equal(t, "U1", resolved.OpenID)
	assert.Empty(t, resolved.UnionID)

	require.Equal(t, 1, repo.count())
	user, err := repo.GetByOpenID(context.Background(), "U1")
	require.NoError(t, err)
	assert.Empty(t, user.Username)
	assert.Empty(t, user.Sex)
	assert.Empty(t, user.Birthday)
	assert.Empty(t, user.ConsumptionLevel)
	assert.Empty(t, user.AvatarURL)
	assert.Empty(t, user.Role)
}

func TestResolveIdentityOverwritesAllAttributes(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newIdentityService(&fakeExchanger{identity: &wechat.Identity{OpenID: "U1", UnionID: "UN1"}}, repo)

	_, err := svc.ResolveIdentity(context.Background(), "code-1", domain.Profile{
		Username:         "Alice",
		Sex:              "f",
		Birthday:         "1990-01-01",
		ConsumptionLevel: "gold",
		AvatarURL:        "https://cdn/a.png",
		Role:             "member",
	})
	require.NoError(t, err)

	// second login carries a sparser profile; every field must be replaced
	_, err = svc.ResolveIdentity(context.Background(), "code-2", domain.Profile{
		Username: "Alicia",
	})
	require.NoError(t, err)

	require.Equal(t, 1, repo.count())
	user, err := repo.GetByOpenID(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", user.Username)
	assert.Empty(t, user.Sex)
	assert.Empty(t, user.Birthday)
	assert.Empty(t, user.ConsumptionLevel)
	assert.Empty(t, user.AvatarURL)
	assert.Empty(t, user.Role)
	assert.Equal(t, "UN1", user.UnionID)
}

func TestResolveIdentityConcurrentSameOpenID(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newIdentityService(&fakeExchanger{identity: &wechat.Identity{OpenID: "U1"}}, repo)

	const parallel = 20
	var wg sync.WaitGroup
	wg.Add(parallel)
	for i := 0; i < parallel; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ResolveIdentity(context.Background(), "abc123", domain.Profile{Username: "Alice"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.count())
}

func TestResolveIdentityProviderRejection(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newIdentityService(&fakeExchanger{err: util.NewUpstreamRejected("wechat api error: invalid code")}, repo)

	_, err := svc.ResolveIdentity(context.Background(), "bad-code", domain.Profile{})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeUpstreamRejected))
	assert.Zero(t, repo.count())
}

func TestResolveIdentityStorageFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.upsertErr = util.NewStorageError("store unavailable", nil)
	svc := newIdentityService(&fakeExchanger{identity: &wechat.Identity{OpenID: "U1"}}, repo)

	_, err := svc.ResolveIdentity(context.Background(), "abc123", domain.Profile{})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeStorageError))
}

func TestGetUserProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newIdentityService(&fakeExchanger{identity: &wechat.Identity{OpenID: "U1"}}, repo)

	_, err := svc.GetUserProfile(context.Background(), "")
	assert.True(t, util.IsCode(err, util.CodeInvalidArgument))

	_, err = svc.GetUserProfile(context.Background(), "never-seen")
	assert.True(t, util.IsCode(err, util.CodeNotFound))

	_, err = svc.ResolveIdentity(context.Background(), "abc123", domain.Profile{Username: "Alice"})
	require.NoError(t, err)

	user, err := svc.GetUserProfile(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Username)
}
