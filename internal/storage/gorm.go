package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sujalbistaa/zevina/internal/models"
)

// GormStorage stores the entries of one namespace in the storage_entries table.
type GormStorage struct {
	db        *gorm.DB
	namespace string
}

func NewGormStorage(db *gorm.DB, namespace string) *GormStorage {
	return &GormStorage{db: db, namespace: namespace}
}

func (s *GormStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.Entry
	err := s.db.WithContext(ctx).
		Where(&models.Entry{Namespace: s.namespace, Key: key}).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s/%s: %w", s.namespace, key, err)
	}
	return entry.Value, true, nil
}

func (s *GormStorage) Set(ctx context.Context, key, value string) error {
	entry := models.Entry{Namespace: s.namespace, Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", s.namespace, key, err)
	}
	return nil
}

func (s *GormStorage) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where(&models.Entry{Namespace: s.namespace, Key: key}).
		Delete(&models.Entry{}).Error
	if err != nil {
		return fmt.Errorf("remove %s/%s: %w", s.namespace, key, err)
	}
	return nil
}
