package repository

import (
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	Save(store *model.Store) error
	Delete(id string) error
	FindAll() ([]model.Store, error)
	FindByID(id string) (*model.Store, error)
	Count() (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name": store.Name,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name": store.Name,
		})
		return err
	}
	return nil
}

func (r *storeRepository) Save(store *model.Store) error {
	if err := r.db.Save(store).Error; err != nil {
		logger.Error("Failed to update store in database", err, map[string]interface{}{
			"store_id": store.ID,
		})
		return err
	}
	return nil
}

func (r *storeRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Store{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete store from database", err, map[string]interface{}{
			"store_id": id,
		})
		return err
	}
	return nil
}

func (r *storeRepository) FindAll() ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.Order("created_at DESC").Find(&stores).Error; err != nil {
		logger.Error("Failed to list stores", err)
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) FindByID(id string) (*model.Store, error) {
	var store model.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Store{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
