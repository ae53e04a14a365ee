package routes

import (
	"github.com/gofiber/fiber/v3"

	"smartmatch/internal/delivery/http/handler"
	"smartmatch/internal/usecase"
)

type Registry struct {
	health  *handler.HealthHandler
	match   *handler.MatchHandler
	weights *handler.WeightsHandler
}

func NewRegistry(matchUC usecase.MatchUsecase, weightsUC usecase.WeightsUsecase) *Registry {
	return &Registry{
		health:  handler.NewHealthHandler(),
		match:   handler.NewMatchHandler(matchUC),
		weights: handler.NewWeightsHandler(weightsUC),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	v1 := app.Group("/api").Group("/v1")
	r.match.RegisterRoutes(v1)
	r.weights.RegisterRoutes(v1)
}
