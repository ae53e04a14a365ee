package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"smartmatch/internal/delivery/http/dto"
	"smartmatch/internal/delivery/http/middleware"
	"smartmatch/internal/pkg/response"
	"smartmatch/internal/usecase"
)

type WeightsHandler struct {
	uc usecase.WeightsUsecase
}

func NewWeightsHandler(uc usecase.WeightsUsecase) *WeightsHandler {
	return &WeightsHandler{uc: uc}
}

func (h *WeightsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/weights", h.Preview)
}

// Preview derives and returns the candidate's weight vector without
// running a match, so callers can display why the weighting looks the
// way it does.
func (h *WeightsHandler) Preview(c fiber.Ctx) error {
	var body dto.WeightsRequestBody
	if err := c.Bind().Body(&body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	cand, w, err := h.uc.Preview(c.Context(), body.Candidate)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate input", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromWeightVector(cand.ID, w))
}
