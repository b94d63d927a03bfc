package persistence

import (
	"context"
	"testing"

	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantRepositorySaveAllAndFindForUser(t *testing.T) {
	repo := NewGormGrantRepository(setupTestDB(t))
	companyID := uuid.New()
	userID := uuid.New()

	grants := []identity.AccessGrant{
		{UserID: userID, CompanyID: companyID, ModuleID: 3, TransactionID: 1, IsRead: true, IsCreate: true},
		{UserID: userID, CompanyID: companyID, ModuleID: 3, TransactionID: 2, IsRead: true},
	}
	require.NoError(t, repo.SaveAll(context.Background(), grants))

	found, err := repo.FindForUser(context.Background(), companyID, userID)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// other users and companies see nothing
	found, err = repo.FindForUser(context.Background(), companyID, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = repo.FindForUser(context.Background(), uuid.New(), userID)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGrantRepositorySaveAllUpserts(t *testing.T) {
	repo := NewGormGrantRepository(setupTestDB(t))
	companyID := uuid.New()
	userID := uuid.New()

	grant := identity.AccessGrant{UserID: userID, CompanyID: companyID, ModuleID: 3, TransactionID: 1, IsRead: true}
	require.NoError(t, repo.SaveAll(context.Background(), []identity.AccessGrant{grant}))

	grant.IsEdit = true
	grant.IsDelete = true
	require.NoError(t, repo.SaveAll(context.Background(), []identity.AccessGrant{grant}))

	found, err := repo.FindForUser(context.Background(), companyID, userID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].IsEdit)
	assert.True(t, found[0].IsDelete)
	assert.True(t, found[0].IsRead)
}
