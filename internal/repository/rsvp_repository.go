package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nuestraboda/rsvp-backend/internal/models"
)

type RSVPRepository struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) *RSVPRepository {
	return &RSVPRepository{db: db}
}

// CreateWithGuests inserts the RSVP and all of its companions in one
// transaction. Any failed insert rolls the whole submission back, so an RSVP
// row never exists with a partial guest list. On success the generated id is
// available on rsvp.ID.
func (r *RSVPRepository) CreateWithGuests(rsvp *models.RSVP, guests []models.Guest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rsvp).Error; err != nil {
			return fmt.Errorf("insert rsvp: %w", err)
		}
		for i := range guests {
			guests[i].RSVPID = rsvp.ID
			if err := tx.Create(&guests[i]).Error; err != nil {
				return fmt.Errorf("insert guest %q: %w", guests[i].Name, err)
			}
		}
		return nil
	})
}

func (r *RSVPRepository) GetByID(id uint) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.First(&rsvp, id).Error
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// ListWithRelations returns every RSVP with its companions and photos, newest
// submission first. Preloads issue separate queries per relation, so rows are
// never duplicated the way a flat join would.
func (r *RSVPRepository) ListWithRelations() ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := r.db.
		Preload("Companions").
		Preload("Photos").
		Order("submitted_at DESC").
		Find(&rsvps).Error
	return rsvps, err
}
