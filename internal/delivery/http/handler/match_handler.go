package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"smartmatch/internal/delivery/http/dto"
	"smartmatch/internal/delivery/http/middleware"
	"smartmatch/internal/domain/matching"
	"smartmatch/internal/pkg/response"
	"smartmatch/internal/usecase"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.Rank)
}

func (h *MatchHandler) Rank(c fiber.Ctx) error {
	var body dto.RankRequestBody
	if err := c.Bind().Body(&body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Rank(c.Context(), usecase.RankRequest{
		Candidate: body.Candidate,
		Offers:    body.Offers,
		OfferIDs:  body.OfferIDs,
		MinScore:  body.MinScore,
		Limit:     body.Limit,
	})
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	items := make([]dto.MatchResultResponse, 0, len(res.Results))
	for _, r := range res.Results {
		items = append(items, dto.FromMatchResult(r))
	}
	return response.SuccessWithMeta(c, fiber.StatusOK, response.MessageOK, items, dto.FromRankMeta(res.Meta))
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, matching.ErrInvalidArgument):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid ranking parameters", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid matching input", nil, err)
	case errors.Is(err, matching.ErrInvalidWeightVector):
		// Contract violation inside the core, not a client problem.
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	case errors.Is(err, usecase.ErrInternal):
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
