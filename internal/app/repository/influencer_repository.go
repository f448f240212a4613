package repository

import (
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

type InfluencerRepository interface {
	Create(influencer *model.Influencer) error
	Save(influencer *model.Influencer) error
	FindAll() ([]model.Influencer, error)
	FindByID(id string) (*model.Influencer, error)
	FindByHandle(handle string) (*model.Influencer, error)
	Count() (int64, error)

	FindFiles(influencerID string, kind model.FileKind) ([]model.InfluencerFile, error)
	FindFileByID(influencerID, fileID string) (*model.InfluencerFile, error)
	CreateFile(file *model.InfluencerFile) error
	DeleteFile(influencerID, fileID string) error
}

type influencerRepository struct {
	db *gorm.DB
}

func NewInfluencerRepository(db *gorm.DB) InfluencerRepository {
	return &influencerRepository{db: db}
}

func (r *influencerRepository) Create(influencer *model.Influencer) error {
	logger.Debug("Creating influencer in database", map[string]interface{}{
		"display_name": influencer.DisplayName,
		"handle":       influencer.Handle,
	})

	if err := r.db.Create(influencer).Error; err != nil {
		logger.Error("Failed to create influencer in database", err, map[string]interface{}{
			"display_name": influencer.DisplayName,
		})
		return err
	}
	return nil
}

func (r *influencerRepository) Save(influencer *model.Influencer) error {
	if err := r.db.Save(influencer).Error; err != nil {
		logger.Error("Failed to update influencer in database", err, map[string]interface{}{
			"influencer_id": influencer.ID,
		})
		return err
	}
	return nil
}

func (r *influencerRepository) FindAll() ([]model.Influencer, error) {
	var influencers []model.Influencer
	if err := r.db.Order("created_at DESC").Find(&influencers).Error; err != nil {
		logger.Error("Failed to list influencers", err)
		return nil, err
	}
	return influencers, nil
}

func (r *influencerRepository) FindByID(id string) (*model.Influencer, error) {
	var influencer model.Influencer
	if err := r.db.First(&influencer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &influencer, nil
}

func (r *influencerRepository) FindByHandle(handle string) (*model.Influencer, error) {
	var influencer model.Influencer
	if err := r.db.First(&influencer, "handle = ?", handle).Error; err != nil {
		return nil, err
	}
	return &influencer, nil
}

func (r *influencerRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Influencer{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *influencerRepository) FindFiles(influencerID string, kind model.FileKind) ([]model.InfluencerFile, error) {
	query := r.db.Where("influencer_id = ?", influencerID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var files []model.InfluencerFile
	if err := query.Order("created_at DESC").Find(&files).Error; err != nil {
		logger.Error("Failed to list influencer files", err, map[string]interface{}{
			"influencer_id": influencerID,
		})
		return nil, err
	}
	return files, nil
}

func (r *influencerRepository) FindFileByID(influencerID, fileID string) (*model.InfluencerFile, error) {
	var file model.InfluencerFile
	err := r.db.First(&file, "id = ? AND influencer_id = ?", fileID, influencerID).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *influencerRepository) CreateFile(file *model.InfluencerFile) error {
	if err := r.db.Create(file).Error; err != nil {
		logger.Error("Failed to create influencer file", err, map[string]interface{}{
			"influencer_id": file.InfluencerID,
			"file_name":     file.FileName,
		})
		return err
	}
	return nil
}

func (r *influencerRepository) DeleteFile(influencerID, fileID string) error {
	result := r.db.Delete(&model.InfluencerFile{}, "id = ? AND influencer_id = ?", fileID, influencerID)
	if result.Error != nil {
		logger.Error("Failed to delete influencer file", result.Error, map[string]interface{}{
			"influencer_id": influencerID,
			"file_id":       fileID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
