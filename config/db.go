package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the MySQL connection the engine runs on. MYSQL_DSN wins when
// set; otherwise the DSN is assembled from the individual MYSQL_* parts.
// parseTime is always on since order timestamps round-trip as time.Time.
func NewDB() (*gorm.DB, error) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local",
			os.Getenv("MYSQL_USER"),
			os.Getenv("MYSQL_PASS"),
			os.Getenv("MYSQL_HOST"),
			GetEnv("MYSQL_PORT", "3306"),
			os.Getenv("MYSQL_DB"),
		)
	}

	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}
	gormLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold: time.Second,
		LogLevel:      logMode,
		Colorful:      true,
	})

	return gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
}
