package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/NoahWolk1/SongNote/internal/model"
	"github.com/NoahWolk1/SongNote/internal/service"
	"github.com/NoahWolk1/SongNote/pkg/response"
)

type MelodyHandler struct {
	service   *service.MelodyService
	validator *validator.Validate
}

func NewMelodyHandler(svc *service.MelodyService, v *validator.Validate) *MelodyHandler {
	return &MelodyHandler{
		service:   svc,
		validator: v,
	}
}

// Extract handles POST /api/melody/extract
// @Summary      Extract melody from audio
// @Description  Detect the note sequence of an existing recording
// @Tags         Melody
// @Accept       json
// @Produce      json
// @Param        request body model.MelodyExtractRequest true "Melody extraction request"
// @Success      200 {object} model.MelodyExtractResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/melody/extract [post]
func (h *MelodyHandler) Extract(c *fiber.Ctx) error {
	var req model.MelodyExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Extract(c.Context(), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}
