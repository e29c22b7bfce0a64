package models

import (
	"time"
)

// RSVP is the primary guest-response record. One row per submission; there is
// no update or delete path, duplicate submissions are accepted as new rows.
type RSVP struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null"`
	Phone         string    `json:"phone"`
	Attending     bool      `json:"attending"`
	MenuChoice    string    `json:"menuChoice"`
	AllergyDetail string    `json:"allergyDetail,omitempty"`
	BusOptIn      bool      `json:"busOptIn"`
	Comments      string    `json:"comments,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt" gorm:"index"`

	Companions []Guest `json:"companions" gorm:"foreignKey:RSVPID"`
	Photos     []Photo `json:"photos" gorm:"foreignKey:RSVPID"`
}

// Guest is a companion declared on an RSVP form via the numbered
// companion_<i>_* fields. Guests are only ever written inside the same
// transaction as their parent RSVP.
type Guest struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	RSVPID        uint   `json:"rsvpId" gorm:"not null;index"`
	Name          string `json:"name" gorm:"not null"`
	MenuChoice    string `json:"menuChoice"`
	AllergyDetail string `json:"allergyDetail,omitempty"`
}

// RSVPSubmission is the JSON request body for an RSVP submission. Companion
// fields (companion_<i>_name and friends) ride alongside these in the same
// flat object and are extracted separately.
type RSVPSubmission struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone"`
	Attending     bool   `json:"attending"`
	MenuChoice    string `json:"menuChoice"`
	AllergyDetail string `json:"allergyDetail"`
	BusOptIn      bool   `json:"busOptIn"`
	Comments      string `json:"comments"`
}

type RSVPSubmissionResponse struct {
	Message string `json:"message"`
	RSVPID  uint   `json:"rsvpId"`
}
