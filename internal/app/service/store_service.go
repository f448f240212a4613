package service

import (
	"errors"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound    = errors.New("store not found")
	ErrStoreHasBookings = errors.New("store has dependent bookings")
)

// placeholderStoreName substitutes an empty name on create; store creation
// never hard-fails over a missing name.
const placeholderStoreName = "未命名门店"

type StoreMutation struct {
	Name    *string
	Address *string
	Image   *string
}

type StoreService interface {
	ListStores() ([]model.Store, error)
	GetStoreByID(id string) (*model.Store, error)
	CreateStore(name, address, image string) (*model.Store, error)
	UpdateStore(id string, input StoreMutation) (*model.Store, error)
	DeleteStore(id string) error
}

type storeService struct {
	db          *gorm.DB
	storeRepo   repository.StoreRepository
	bookingRepo repository.BookingRepository
}

func NewStoreService(db *gorm.DB, storeRepo repository.StoreRepository, bookingRepo repository.BookingRepository) StoreService {
	return &storeService{
		db:          db,
		storeRepo:   storeRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *storeService) ListStores() ([]model.Store, error) {
	return s.storeRepo.FindAll()
}

func (s *storeService) GetStoreByID(id string) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

func (s *storeService) CreateStore(name, address, image string) (*model.Store, error) {
	if name == "" {
		name = placeholderStoreName
	}

	store := &model.Store{
		Name:    name,
		Address: address,
		Image:   image,
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	logger.Info("Store created", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})
	return store, nil
}

// UpdateStore edits a store and keeps the denormalized storeName snapshots
// on dependent bookings and traffic logs in sync. The rename cascade runs in
// one transaction so a crash cannot leave snapshots half-updated.
func (s *storeService) UpdateStore(id string, input StoreMutation) (*model.Store, error) {
	existing, err := s.storeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Store not found for update", map[string]interface{}{
				"store_id": id,
			})
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	nameChanged := false
	if input.Name != nil && *input.Name != "" && *input.Name != existing.Name {
		existing.Name = *input.Name
		nameChanged = true
	}
	if input.Address != nil {
		existing.Address = *input.Address
	}
	// keep the current image on partial edits without a replacement
	if input.Image != nil && *input.Image != "" {
		existing.Image = *input.Image
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		if !nameChanged {
			return nil
		}

		if err := tx.Model(&model.Booking{}).
			Where("store_id = ?", existing.ID).
			Update("store_name", existing.Name).Error; err != nil {
			return err
		}
		return tx.Model(&model.TrafficLog{}).
			Where("booking_id IN (?)",
				tx.Model(&model.Booking{}).Select("id").Where("store_id = ?", existing.ID)).
			Update("store_name", existing.Name).Error
	})
	if err != nil {
		logger.Error("Failed to update store", err, map[string]interface{}{
			"store_id": id,
		})
		return nil, err
	}

	logger.Info("Store updated", map[string]interface{}{
		"store_id":     existing.ID,
		"name_changed": nameChanged,
	})
	return existing, nil
}

func (s *storeService) DeleteStore(id string) error {
	if _, err := s.storeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}

	dependents, err := s.bookingRepo.CountByStore(id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		logger.Warn("Store delete blocked by dependent bookings", map[string]interface{}{
			"store_id": id,
			"bookings": dependents,
		})
		return ErrStoreHasBookings
	}

	if err := s.storeRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Store deleted", map[string]interface{}{
		"store_id": id,
	})
	return nil
}
