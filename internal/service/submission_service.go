package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nuestraboda/rsvp-backend/internal/models"
)

// RSVPStore is the persistence surface the submission pipeline needs.
// *repository.RSVPRepository satisfies it.
type RSVPStore interface {
	CreateWithGuests(rsvp *models.RSVP, guests []models.Guest) error
	GetByID(id uint) (*models.RSVP, error)
	ListWithRelations() ([]models.RSVP, error)
}

// EmailSender delivers the post-submission confirmation. It is optional;
// a nil sender disables confirmations entirely.
type EmailSender interface {
	SendRSVPConfirmation(to, name string, attending bool) error
}

type SubmissionService struct {
	rsvps  RSVPStore
	email  EmailSender
	logger *zap.Logger
}

func NewSubmissionService(rsvps RSVPStore, email EmailSender, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		rsvps:  rsvps,
		email:  email,
		logger: logger,
	}
}

// SubmitRSVP persists one RSVP together with the companions extracted from
// the flat submission fields, all inside a single transaction. The returned
// RSVP carries its generated id. The confirmation email is best effort: a
// delivery failure is logged and never fails the submission.
func (s *SubmissionService) SubmitRSVP(req *models.RSVPSubmission, fields map[string]interface{}) (*models.RSVP, error) {
	rsvp := &models.RSVP{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Attending:     req.Attending,
		MenuChoice:    req.MenuChoice,
		AllergyDetail: req.AllergyDetail,
		BusOptIn:      req.BusOptIn,
		Comments:      req.Comments,
		SubmittedAt:   time.Now().UTC(),
	}

	guests := extractCompanions(fields)

	if err := s.rsvps.CreateWithGuests(rsvp, guests); err != nil {
		return nil, fmt.Errorf("persist rsvp: %w", err)
	}

	s.logger.Info("rsvp stored",
		zap.Uint("rsvpID", rsvp.ID),
		zap.Int("companions", len(guests)),
		zap.Bool("attending", rsvp.Attending),
	)

	if s.email != nil {
		if err := s.email.SendRSVPConfirmation(rsvp.Email, rsvp.Name, rsvp.Attending); err != nil {
			s.logger.Warn("confirmation email failed",
				zap.Uint("rsvpID", rsvp.ID),
				zap.Error(err),
			)
		}
	}

	return rsvp, nil
}

// ListRSVPs returns every RSVP with nested companions and photos, newest
// first.
func (s *SubmissionService) ListRSVPs() ([]models.RSVP, error) {
	rsvps, err := s.rsvps.ListWithRelations()
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return rsvps, nil
}
