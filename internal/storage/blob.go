// Package storage provides the durable key-value substrate that the cart
// and favorites stores serialize into.
package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lustrahome/shop/internal/models"
)

var ErrNotFound = errors.New("storage: key not found")

type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// GormBlobStore keeps one row per key in the blobs table.
type GormBlobStore struct {
	DB *gorm.DB
}

func NewGormBlobStore(db *gorm.DB) *GormBlobStore {
	return &GormBlobStore{DB: db}
}

func (s *GormBlobStore) Get(key string) ([]byte, error) {
	var blob models.Blob
	if err := s.DB.Where("key = ?", key).First(&blob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return blob.Value, nil
}

func (s *GormBlobStore) Put(key string, value []byte) error {
	blob := models.Blob{Key: key, Value: value}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("storage: put %q: %w", key, err)
	}
	return nil
}

func (s *GormBlobStore) Delete(key string) error {
	if err := s.DB.Where("key = ?", key).Delete(&models.Blob{}).Error; err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}
