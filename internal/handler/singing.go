package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/NoahWolk1/SongNote/internal/middleware"
	"github.com/NoahWolk1/SongNote/internal/model"
	"github.com/NoahWolk1/SongNote/internal/service"
	"github.com/NoahWolk1/SongNote/pkg/response"
)

type SingingHandler struct {
	service   *service.SingingService
	validator *validator.Validate
}

func NewSingingHandler(svc *service.SingingService, v *validator.Validate) *SingingHandler {
	return &SingingHandler{
		service:   svc,
		validator: v,
	}
}

// Generate handles POST /api/singing/generate
// @Summary      Start singing generation job
// @Description  Start an asynchronous job that turns lyrics into a sung recording
// @Tags         Singing
// @Accept       json
// @Produce      json
// @Param        request body model.SingingGenerateRequest true "Singing generation request"
// @Success      202 {object} model.SingingStartResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/singing/generate [post]
func (h *SingingHandler) Generate(c *fiber.Ctx) error {
	var req model.SingingGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.StartSinging(c.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, result)
}

// Status handles GET /api/singing/status/:jobId
// @Summary      Get singing job status
// @Description  Get the current status and progress of a singing job
// @Tags         Singing
// @Produce      json
// @Param        jobId path string true "Job ID"
// @Success      200 {object} model.SingingStatusResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/singing/status/{jobId} [get]
func (h *SingingHandler) Status(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.GetStatus(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Result handles GET /api/singing/result/:jobId
// @Summary      Get singing job result
// @Description  Get the result of a completed singing job including the audio URL
// @Tags         Singing
// @Produce      json
// @Param        jobId path string true "Job ID"
// @Success      200 {object} model.SingingResultResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/singing/result/{jobId} [get]
func (h *SingingHandler) Result(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.GetResult(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		if err.Error() == "job not completed" {
			return response.ValidationError(c, "Job not completed yet", nil)
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

// Cancel handles POST /api/singing/cancel/:jobId
// @Summary      Cancel singing job
// @Description  Cancel a running or queued singing job
// @Tags         Singing
// @Produce      json
// @Param        jobId path string true "Job ID"
// @Success      200 {object} model.SingingCancelResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/singing/cancel/{jobId} [post]
func (h *SingingHandler) Cancel(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	result, err := h.service.CancelSinging(c.Context(), jobID)
	if err != nil {
		if err.Error() == "job not found" {
			return response.NotFound(c, "Job not found")
		}
		if err.Error() == "job already completed" {
			return response.ValidationError(c, "Job already completed", nil)
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
