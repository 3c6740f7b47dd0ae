package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dhlf/dhcf-backend/internal/pkg/envutil"
	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/types"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens the catalog store. DB_DRIVER selects sqlite (default, file
// path from SQLITE_PATH) or postgres (DSN assembled from POSTGRES_* vars).
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := strings.ToLower(envutil.GetEnv("DB_DRIVER", "sqlite", log))

	var (
		database *gorm.DB
		err      error
	)
	switch driver {
	case "postgres":
		host := envutil.GetEnv("POSTGRES_HOST", "localhost", log)
		port := envutil.GetEnv("POSTGRES_PORT", "5432", log)
		user := envutil.GetEnv("POSTGRES_USER", "postgres", log)
		password := envutil.GetEnv("POSTGRES_PASSWORD", "", log)
		name := envutil.GetEnv("POSTGRES_NAME", "dhcf", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

		log.Info("Connecting to Postgres...")
		database, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		path := envutil.GetEnv("SQLITE_PATH", "data/dhcf.db", log)
		log.Info("Opening SQLite database...", "path", path)
		database, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err == nil {
			err = database.Exec(`PRAGMA foreign_keys = ON`).Error
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	if err != nil {
		log.Error("Failed to open database", "driver", driver, "error", err)
		return nil, fmt.Errorf("open database (%s): %w", driver, err)
	}

	return &Service{db: database, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating catalog tables...")
	if err := AutoMigrate(s.db); err != nil {
		s.log.Error("Auto migration failed for catalog tables", "error", err)
		return err
	}
	return nil
}

// AutoMigrate creates every catalog table; shared with the test database
// bootstrap so both stay in sync.
func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&types.Domain{},
		&types.Subdomain{},
		&types.Competency{},
		&types.PerformanceCriteria{},
		&types.Role{},
		&types.RoleCompetency{},
		&types.LearningModule{},
		&types.LearningModuleCompetency{},
		&types.Course{},
		&types.CourseCompetency{},
	)
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
