// File: cmd/unistore/app.go
package main

import (
	"context"
	"fmt"
	"log/slog"

	"unistore/internal/config"
	"unistore/internal/metrics"
	"unistore/internal/service"
	"unistore/internal/ui/prompt"
	"unistore/pkg/formatter"
	"unistore/pkg/storage/factory"
)

// appContainer holds all the shared dependencies for the application
// This includes configuration, the object service, formatters, metrics and the logger
type appContainer struct {
	Config          *config.Config
	ConfigManager   *config.ConfigManager
	ProviderFactory *factory.Factory
	ObjectService   *service.ObjectService
	ObjectFormatter *formatter.ObjectFormatter
	Metrics         *metrics.Recorder
	Prompter        prompt.Prompter
	Logger          *slog.Logger
}

// Creates and initializes a new application container
func newApp(configPath string, prompter prompt.Prompter, logger *slog.Logger) (*appContainer, error) {
	cfgManager, err := config.NewConfigManager(configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := cfgManager.LoadConfig()
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder(nil)
	providerFactory := factory.NewFactory(logger)
	objectService := service.NewObjectService(providerFactory, cfg, recorder, cfg.Timeout, logger)

	return &appContainer{
		Config:          cfg,
		ConfigManager:   cfgManager,
		ProviderFactory: providerFactory,
		ObjectService:   objectService,
		ObjectFormatter: formatter.NewObjectFormatter(),
		Metrics:         recorder,
		Prompter:        prompter,
		Logger:          logger,
	}, nil
}

type appContextKey struct{}

func contextWithApp(ctx context.Context, app *appContainer) context.Context {
	return context.WithValue(ctx, appContextKey{}, app)
}

func appFromContext(ctx context.Context) (*appContainer, error) {
	app, ok := ctx.Value(appContextKey{}).(*appContainer)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
