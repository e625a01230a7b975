package database

import (
	"fmt"
	"time"

	"symphony/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Debug    bool
}

// Dialector builds the gorm dialector for the configured driver.
func Dialector(config Config) (gorm.Dialector, error) {
	switch config.Driver {
	case DriverPostgres, "":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
		)
		return postgres.Open(dsn), nil
	case DriverMySQL:
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			config.User, config.Password, config.Host, config.Port, config.DBName,
		)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

func Connect(config Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	dialector, err := Dialector(config)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if config.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Infow("database connected", "driver", dialector.Name(), "host", config.Host, "db", config.DBName)
	return db, nil
}

func Migrate(db *gorm.DB, log *zap.SugaredLogger) error {
	err := db.AutoMigrate(
		&models.Project{},
		&models.Integration{},
		&models.ProjectCache{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	if db.Dialector.Name() == DriverPostgres {
		if err := createIndexes(db); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	log.Info("database migration completed")
	return nil
}

// createIndexes adds postgres-only indexes that AutoMigrate cannot express.
func createIndexes(db *gorm.DB) error {
	// partial index backing the sweep's project listing
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_projects_refreshable ON projects(created_at) WHERE github_repo <> '' OR slack_channel <> ''").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_project_caches_last_updated ON project_caches(last_updated DESC)").Error; err != nil {
		return err
	}
	return nil
}
