package tester

import (
	"os"
	"path/filepath"

	"github.com/emrgen/thirdplace/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db      *gorm.DB
	testDir string
)

// Setup opens a fresh migrated sqlite database in a temp directory. Each
// package gets its own file so parallel package runs do not collide.
func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	dir, err := os.MkdirTemp("", "thirdplace-test-*")
	if err != nil {
		panic(err)
	}
	testDir = dir

	db, err = gorm.Open(sqlite.Open(filepath.Join(testDir, "thirdplace.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	if testDir == "" {
		return
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	err := os.RemoveAll(testDir)
	if err != nil {
		panic(err)
	}
	testDir = ""
}
