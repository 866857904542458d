package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/order"
)

// newTestDB opens an in-memory SQLite database with the full schema for
// repository tests that exercise real SQL end to end.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection gets its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&identity.ConfirmToken{},
		&catalog.Shop{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductInfo{},
		&catalog.Parameter{},
		&catalog.ProductParameter{},
		&order.Contact{},
		&order.Order{},
		&order.Item{},
	))

	return db
}
