package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/handcraftlab/atelier/config"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	}

	var db *gorm.DB
	var err error
	switch strings.ToLower(cfg.Type) {
	case "sqlite", "sqlite3":
		name := cfg.Name
		if name == "" {
			name = "atelier"
		}
		dsn := filepath.Join(workdir, "data", name+".db")
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	}
	if err != nil {
		zap.S().Fatalf("database connection failed: %v", err)
	}
	return db
}
