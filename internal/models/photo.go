package models

import (
	"time"
)

// Photo records one successfully uploaded file. The owning side is the RSVP:
// photos arrive in a separate request carrying the rsvpId the submitter got
// back from their RSVP submission. A row is only written after the external
// upload succeeded, so URL is always populated.
type Photo struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RSVPID    uint      `json:"rsvpId" gorm:"not null;index"`
	URL       string    `json:"url" gorm:"not null"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
}

// PhotoUploadResponse lists the public URLs of the files that made it through
// the upload-and-persist step. Files that failed are only visible as a count.
type PhotoUploadResponse struct {
	Message string   `json:"message"`
	URLs    []string `json:"urls"`
	Failed  int      `json:"failed,omitempty"`
}
