package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/ismaelfarah/studenttrack/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one persisted key-value row.
type Entry struct {
	Key       string    `gorm:"primaryKey;size:200" json:"key"`
	Value     []byte    `gorm:"type:blob" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Entry) TableName() string { return "kv_entries" }

// GormStore is a Store backed by a relational database through gorm.
type GormStore struct {
	db *gorm.DB
}

// Open connects to the configured database and migrates the kv table.
func Open(cfg *config.DatabaseConfig) (*GormStore, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(key string) ([]byte, bool, error) {
	var entry Entry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(key string, value []byte) error {
	entry := Entry{Key: key, Value: value}
	var existing Entry
	err := s.db.First(&existing, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&entry).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&existing).Update("value", value).Error
}

func (s *GormStore) Delete(key string) error {
	return s.db.Delete(&Entry{}, "key = ?", key).Error
}

// DB exposes the underlying connection for health checks.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}
