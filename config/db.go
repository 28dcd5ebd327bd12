package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewAuditDB opens the database that keeps document history. It returns nil without error when
// AUDIT_DRIVER is "off".
func NewAuditDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.AuditDriver {
	case "off":
		return nil, nil
	case "mysql":
		if cfg.AuditDSN == "" {
			return nil, fmt.Errorf("AUDIT_DSN is required for the mysql audit driver")
		}
		dialector = mysql.Open(cfg.AuditDSN)
	default:
		dsn := cfg.AuditDSN
		if dsn == "" {
			if err := os.MkdirAll(cfg.StorageRoot, 0o755); err != nil {
				return nil, err
			}
			dsn = filepath.Join(cfg.StorageRoot, "audit.db")
		}
		dialector = sqlite.Open(dsn)
	}

	logMode := logger.Warn
	if cfg.Debug {
		logMode = logger.Info
	}
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use log.Logger for Printf support
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logMode,     // Log level
			Colorful:      true,        // Enable color
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
