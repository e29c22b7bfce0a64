package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nuestraboda/rsvp-backend/internal/models"
	"github.com/nuestraboda/rsvp-backend/internal/service"
	"github.com/nuestraboda/rsvp-backend/pkg/payload"
	"github.com/nuestraboda/rsvp-backend/pkg/utils"
)

// SubmissionHandler is the single POST entry point for both payload shapes:
// a JSON body submits an RSVP, a multipart body attaches photos to one.
type SubmissionHandler struct {
	submissions *service.SubmissionService
	photos      *service.PhotoService
	validator   *utils.Validator
	maxFileSize int64
}

func NewSubmissionHandler(
	submissions *service.SubmissionService,
	photos *service.PhotoService,
	validator *utils.Validator,
	maxFileSize int64,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		photos:      photos,
		validator:   validator,
		maxFileSize: maxFileSize,
	}
}

func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	switch payload.Classify(c.Get(fiber.HeaderContentType)) {
	case payload.KindJSON:
		return h.submitRSVP(c)
	case payload.KindMultipart:
		return h.submitPhotos(c)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Unsupported Content-Type"))
	}
}

func (h *SubmissionHandler) submitRSVP(c *fiber.Ctx) error {
	body := c.Body()

	var req models.RSVPSubmission
	if err := json.Unmarshal(body, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid JSON body"))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	// second pass keeps the dynamically numbered companion fields, which
	// the typed struct cannot carry
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid JSON body"))
	}

	rsvp, err := h.submissions.SubmitRSVP(&req, fields)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.RSVPSubmissionResponse{
		Message: "RSVP received successfully!",
		RSVPID:  rsvp.ID,
	})
}

func (h *SubmissionHandler) submitPhotos(c *fiber.Ctx) error {
	form, err := payload.DecodeMultipart(c.Body(), c.Get(fiber.HeaderContentType), h.maxFileSize)
	if err != nil {
		if errors.Is(err, payload.ErrPayloadTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	idField, ok := form.Fields["rsvpId"]
	if !ok || strings.TrimSpace(idField) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("RSVP ID not found"))
	}
	rsvpID, err := strconv.ParseUint(strings.TrimSpace(idField), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid RSVP ID"))
	}

	if len(form.Files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No files uploaded"))
	}

	result, err := h.photos.UploadBatch(c.UserContext(), uint(rsvpID), form.Files)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRSVPID):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("RSVP ID not found"))
		case errors.Is(err, service.ErrRSVPNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("RSVP not found"))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
		}
	}

	return c.JSON(models.PhotoUploadResponse{
		Message: "Photos received successfully!",
		URLs:    result.URLs,
		Failed:  result.Failed,
	})
}
