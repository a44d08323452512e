package storage

import (
	"os"
	"path/filepath"
	"tubescribe/internal/appdirs"
	"tubescribe/internal/types"
	"tubescribe/log"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB
var appDirsResolver = appdirs.Resolve

func InitDB() error {
	dbPath, err := resolveDBPath()
	if err != nil {
		log.GetLogger().Error("failed to resolve database path", zap.Error(err))
		return err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.GetLogger().Error("failed to create database directory", zap.String("dir", dir), zap.Error(err))
		return err
	}

	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.GetLogger().Error("failed to connect database", zap.Error(err))
		return err
	}

	// Auto Migrate the schema
	if err = DB.AutoMigrate(&types.TranscriptionTask{}, &types.TaskOutputFile{}); err != nil {
		log.GetLogger().Error("failed to migrate database", zap.Error(err))
		return err
	}

	log.GetLogger().Debug("database initialized", zap.String("path", dbPath))
	return nil
}

func resolveDBPath() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.DBPathFor(dirs), nil
}
