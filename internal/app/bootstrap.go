package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"smartmatch/internal/config"
	"smartmatch/internal/delivery/http/middleware"
	"smartmatch/internal/delivery/http/routes"
	"smartmatch/internal/logger"
)

type App struct {
	Fiber *fiber.App
	Log   *zap.Logger
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	log, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		return nil, nil, err
	}

	container, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewErrorMiddleware(log).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(log).Middleware())

	routes.NewRegistry(container.MatchUC, container.WeightsUC).Register(f)

	cleanup := func() error {
		_ = log.Sync()
		return container.Close()
	}
	return &App{Fiber: f, Log: log}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
