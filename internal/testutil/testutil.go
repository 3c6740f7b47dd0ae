package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/dhlf/dhcf-backend/internal/db"
	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
)

var (
	dbOnce sync.Once
	testDB *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated handle shared across the package's tests. By
// default it is an in-memory sqlite database; set TEST_POSTGRES_DSN to
// run the same tests against postgres.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		}
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			testDB, dbErr = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			testDB, dbErr = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
		}
		if dbErr != nil {
			return
		}
		dbErr = db.AutoMigrate(testDB)
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return testDB
}

// Tx hands each test its own transaction and rolls it back afterwards,
// so tests sharing the DB handle never see each other's rows.
func Tx(tb testing.TB, database *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := database.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
