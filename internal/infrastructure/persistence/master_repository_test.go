package persistence

import (
	"context"
	"testing"

	"github.com/erp/masterdata/internal/domain/master"
	"github.com/erp/masterdata/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/erp/masterdata/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MasterRecordModel{}, &models.UserModel{}, &models.AccessGrantModel{}))
	return db
}

func seedRecord(t *testing.T, repo *GormMasterRepository, companyID uuid.UUID, entityType, code, name string) *master.Record {
	t.Helper()
	rec, err := master.NewRecord(entityType, companyID, uuid.New(), code, name)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), rec))
	require.NotZero(t, rec.ID)
	return rec
}

func TestMasterRepositorySaveAndFindByID(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyID := uuid.New()

	rec := seedRecord(t, repo, companyID, "currency", "USD", "US Dollar")

	found, err := repo.FindByID(context.Background(), companyID, "currency", rec.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "USD", found.Code)
	assert.Equal(t, "US Dollar", found.Name)
	assert.True(t, found.IsActive)
	assert.Nil(t, found.EditBy)
}

func TestMasterRepositoryFindByIDNotFound(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))

	found, err := repo.FindByID(context.Background(), uuid.New(), "currency", 999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMasterRepositoryFindByCodeCaseInsensitive(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyID := uuid.New()

	seedRecord(t, repo, companyID, "currency", "USD", "US Dollar")

	found, err := repo.FindByCode(context.Background(), companyID, "currency", "usd")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "USD", found.Code)
}

func TestMasterRepositoryExistsByCode(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyID := uuid.New()

	seedRecord(t, repo, companyID, "uom", "PCS", "Pieces")

	exists, err := repo.ExistsByCode(context.Background(), companyID, "uom", "pcs")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(context.Background(), companyID, "uom", "BOX")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMasterRepositoryCompanyIsolation(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyA := uuid.New()
	companyB := uuid.New()

	rec := seedRecord(t, repo, companyA, "currency", "USD", "US Dollar")

	found, err := repo.FindByID(context.Background(), companyB, "currency", rec.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	records, total, err := repo.FindPage(context.Background(), companyB, "currency", shared.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, records)
}

func TestMasterRepositoryEntityTypeIsolation(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyID := uuid.New()

	seedRecord(t, repo, companyID, "currency", "USD", "US Dollar")
	seedRecord(t, repo, companyID, "uom", "USD", "Unexpected")

	records, total, err := repo.FindPage(context.Background(), companyID, "currency", shared.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "US Dollar", records[0].Name)
}

func TestMasterRepositoryFindPageSearch(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyID := uuid.New()

	seedRecord(t, repo, companyID, "currency", "USD", "US Dollar")
	seedRecord(t, repo, companyID, "currency", "EUR", "Euro")
	seedRecord(t, repo, companyID, "currency", "GBP", "Pound Sterling")

	records, total, err := repo.FindPage(context.Background(), companyID, "currency", shared.ListFilter{Search: "eur"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "EUR", records[0].Code)

	// matches name too
	_, total, err = repo.FindPage(context.Background(), companyID, "currency", shared.ListFilter{Search: "dollar"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestMasterRepositoryFindPagePagination(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyID := uuid.New()

	codes := []string{"AAA", "BBB", "CCC", "DDD", "EEE"}
	for _, code := range codes {
		seedRecord(t, repo, companyID, "bank", code, "Bank "+code)
	}

	records, total, err := repo.FindPage(context.Background(), companyID, "bank", shared.ListFilter{
		SortBy:     "code",
		SortOrder:  "asc",
		PageNumber: 2,
		PageSize:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, records, 2)
	assert.Equal(t, "CCC", records[0].Code)
	assert.Equal(t, "DDD", records[1].Code)
}

func TestMasterRepositoryFindPageRejectsUnknownSortField(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))

	_, _, err := repo.FindPage(context.Background(), uuid.New(), "bank", shared.ListFilter{
		SortBy: "password_hash",
	})
	assert.Error(t, err)
}

func TestMasterRepositoryUpdatePreservesAudit(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyID := uuid.New()

	rec := seedRecord(t, repo, companyID, "currency", "USD", "US Dollar")
	originalCreateBy := rec.CreateBy
	originalCreateDate := rec.CreateDate

	editor := uuid.New()
	require.NoError(t, rec.ApplyEdit(editor, "USD", "United States Dollar", 5, false, "renamed"))
	require.NoError(t, repo.Save(context.Background(), rec))

	found, err := repo.FindByID(context.Background(), companyID, "currency", rec.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "United States Dollar", found.Name)
	assert.Equal(t, 5, found.SeqNo)
	assert.False(t, found.IsActive)
	assert.Equal(t, "renamed", found.Remarks)
	assert.Equal(t, originalCreateBy, found.CreateBy)
	assert.WithinDuration(t, originalCreateDate, found.CreateDate, 0)
	require.NotNil(t, found.EditBy)
	assert.Equal(t, editor, *found.EditBy)
	require.NotNil(t, found.EditDate)
}

func TestMasterRepositoryDelete(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))
	companyID := uuid.New()

	rec := seedRecord(t, repo, companyID, "currency", "USD", "US Dollar")

	require.NoError(t, repo.Delete(context.Background(), companyID, "currency", rec.ID))

	found, err := repo.FindByID(context.Background(), companyID, "currency", rec.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMasterRepositoryDeleteMissingReturnsError(t *testing.T) {
	repo := NewGormMasterRepository(setupTestDB(t))

	err := repo.Delete(context.Background(), uuid.New(), "currency", 12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
