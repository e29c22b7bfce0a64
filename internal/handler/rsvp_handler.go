package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuestraboda/rsvp-backend/internal/models"
	"github.com/nuestraboda/rsvp-backend/internal/service"
)

type RSVPHandler struct {
	submissions *service.SubmissionService
}

func NewRSVPHandler(submissions *service.SubmissionService) *RSVPHandler {
	return &RSVPHandler{submissions: submissions}
}

// List returns every RSVP with its companions and photos, newest first.
func (h *RSVPHandler) List(c *fiber.Ctx) error {
	rsvps, err := h.submissions.ListRSVPs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	if rsvps == nil {
		rsvps = []models.RSVP{}
	}
	return c.JSON(rsvps)
}
