package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/miniorder-service/internal/domain"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

// A repository built without a pool represents the disconnected-store state:
// every operation must fail explicitly instead of reporting empty success.

func TestUserRepositoryDisconnected(t *testing.T) {
	repo := NewUserRepository(nil)

	err := repo.Upsert(context.Background(), &domain.User{OpenID: "U1"})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeStorageError))
	assert.Contains(t, err.Error(), "store unavailable")

	_, err = repo.GetByOpenID(context.Background(), "U1")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeStorageError))
}

func TestOrderRepositoryDisconnected(t *testing.T) {
	repo := NewOrderRepository(nil)

	err := repo.Create(context.Background(), &domain.Order{OrderID: "O1"})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeStorageError))

	orders, err := repo.ListByUser(context.Background(), "U1")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeStorageError))
	assert.Nil(t, orders)
}
