package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one persisted record in the app's key/value namespace. Values are
// JSON documents; the key layout is owned by the storagekeys package.
type KVEntry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

type KVRepository struct {
	database *gorm.DB
}

func NewKVRepository(database *gorm.DB) *KVRepository {
	return &KVRepository{database: database}
}

// Get returns the stored value and whether the key exists. A missing key is
// not an error.
func (repo *KVRepository) Get(key string) (string, bool, error) {
	var entry KVEntry
	err := repo.database.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (repo *KVRepository) Set(key string, value string) error {
	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Delete is idempotent: deleting an absent key succeeds.
func (repo *KVRepository) Delete(key string) error {
	return repo.database.Delete(&KVEntry{}, "key = ?", key).Error
}

func (repo *KVRepository) Exists(key string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&KVEntry{}).Where("key = ?", key).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}
