package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/quantumstack/site/internal/entities"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const memoryDatabase = ":memory:"

// Applied unless the connection string already sets its own pragmas.
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"foreign_keys(1)",
}

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {

	if err := ensureDatabaseDir(connectionString); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(withPragmas(connectionString)), &gorm.Config{
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open application inbox: %w", err)
	}

	// every connection to :memory: opens a fresh database
	if connectionString == memoryDatabase {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return &DbContext{DB: db}, nil
}

func ensureDatabaseDir(connectionString string) error {
	if connectionString == memoryDatabase || strings.HasPrefix(connectionString, "file:") {
		return nil
	}
	dir := filepath.Dir(connectionString)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

func withPragmas(connectionString string) string {
	if strings.Contains(connectionString, "_pragma=") {
		return connectionString
	}
	params := make([]string, 0, len(sqlitePragmas))
	for _, pragma := range sqlitePragmas {
		params = append(params, "_pragma="+pragma)
	}
	separator := "?"
	if strings.Contains(connectionString, "?") {
		separator = "&"
	}
	return connectionString + separator + strings.Join(params, "&")
}

func (c *DbContext) Migrate() error {
	if err := c.DB.AutoMigrate(entities.JobApplication{}); err != nil {
		return fmt.Errorf("failed to migrate JobApplication entity: %w", err)
	}
	return nil
}

func (c *DbContext) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
