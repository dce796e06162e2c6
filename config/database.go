package config

import (
	"fmt"
	"log"

	"whitepaper-portal-api/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DSN builds the MySQL data source name from the loaded settings.
// clientFoundRows makes guarded updates report matched rows, so saving
// unchanged content still counts as a hit.
func (s Settings) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		s.DBUsername,
		s.DBPassword,
		s.DBHost,
		s.DBPort,
		s.DBDatabase,
	)
}

// InitDB opens the submissions database and stores the handle in DB.
func InitDB() error {
	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if Cfg.IsProduction() && !Cfg.DebugSQL {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	}

	db, err := gorm.Open(mysql.Open(Cfg.DSN()), gormConfig)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if Cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return err
		}
	}

	DB = db
	Logger.Info("database connected", zap.String("host", Cfg.DBHost), zap.String("database", Cfg.DBDatabase))
	return nil
}

// Migrate creates or updates the whitepaper_submissions table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Submission{}); err != nil {
		return fmt.Errorf("migrate submissions: %w", err)
	}
	return nil
}
