package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"smartmatch/internal/config"
	"smartmatch/internal/database"
	dbpostgres "smartmatch/internal/database/postgres"
	"smartmatch/internal/domain/matching"
	"smartmatch/internal/extractor"
	"smartmatch/internal/infrastructure/cache"
	"smartmatch/internal/repository"
	"smartmatch/internal/usecase"
)

type Container struct {
	Config config.Config
	Log    *zap.Logger

	DB    database.DB
	Cache *cache.Redis

	MatchUC   usecase.MatchUsecase
	WeightsUC usecase.WeightsUsecase
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	cal, err := config.LoadCalibration(cfg.Matching.CalibrationFile)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Log: log}

	// Postgres is optional: without it the service still ranks inline
	// offers, it just cannot resolve stored offer ids.
	var offers repository.OfferRepository
	if cfg.Database.DBHost != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db
		offers = repository.NewPostgresOfferRepository(db)
	}

	c.Cache = cache.NewRedis(cfg.Redis, cfg.Matching.CacheTTL, log)

	ranker := matching.NewRanker()
	selector := matching.NewSelector(cal, ranker, log)

	c.MatchUC = usecase.NewMatchUsecase(selector, offers, c.Cache, extractor.Noop{}, cfg.Matching.CacheTTL, log)
	c.WeightsUC = usecase.NewWeightsUsecase(cal)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
