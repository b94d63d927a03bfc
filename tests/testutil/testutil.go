// Package testutil provides shared helpers for integration and repository
// tests: in-memory databases, seeded identities and a fully wired HTTP
// server.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/erp/masterdata/internal/infrastructure/persistence/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestDB opens an in-memory sqlite database with the full schema
// migrated. Each call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.MasterRecordModel{},
		&models.UserModel{},
		&models.AccessGrantModel{},
	))
	return db
}

// MockDB wraps a GORM connection backed by sqlmock, for tests that assert
// on the generated SQL rather than on stored rows.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a sqlmock-backed GORM database using the postgres
// dialect. The caller should defer Close.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return &MockDB{DB: db, Mock: mock, SqlDB: sqlDB}
}

// Close closes the underlying connection
func (m *MockDB) Close() error {
	return m.SqlDB.Close()
}
