package repository

import (
	"gorm.io/gorm"

	"github.com/nuestraboda/rsvp-backend/internal/models"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) GetByRSVPID(rsvpID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("rsvp_id = ?", rsvpID).Order("created_at DESC").Find(&photos).Error
	return photos, err
}

func (r *PhotoRepository) CountByRSVPID(rsvpID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("rsvp_id = ?", rsvpID).Count(&count).Error
	return count, err
}
