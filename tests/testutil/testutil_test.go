package testutil

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/masterdata/internal/infrastructure/persistence/models"
)

func TestNewTestDBMigratesSchema(t *testing.T) {
	db := NewTestDB(t)

	for _, table := range []string{"master_records", "users", "access_grants"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestNewTestDBIsIsolated(t *testing.T) {
	first := NewTestDB(t)
	second := NewTestDB(t)

	require.NoError(t, first.Create(&models.UserModel{
		ID:       uuid.New(),
		Username: "only-here",
	}).Error)

	var count int64
	require.NoError(t, second.Model(&models.UserModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNewMockDBRunsQueries(t *testing.T) {
	mock := NewMockDB(t)
	defer mock.Close()

	mock.Mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	var users []models.UserModel
	require.NoError(t, mock.DB.Find(&users).Error)
	assert.Empty(t, users)
	assert.NoError(t, mock.Mock.ExpectationsWereMet())
}
