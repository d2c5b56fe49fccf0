package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/glabrego/pokedex-cli/internal/app"
	"github.com/glabrego/pokedex-cli/internal/config"
	"github.com/glabrego/pokedex-cli/internal/logging"
	"github.com/glabrego/pokedex-cli/internal/pokeapi"
	"github.com/glabrego/pokedex-cli/internal/storage"
	"github.com/glabrego/pokedex-cli/internal/tui"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, logFile, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		log.Fatalf("log init error: %v", err)
	}
	defer logFile.Close()

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := repo.Init(ctx); err != nil {
		log.Fatalf("storage schema error: %v", err)
	}

	client := pokeapi.NewClient(cfg.APIBaseURL, cfg.RequestsPerSecond, nil)
	service := app.NewService(client, repo,
		app.WithLogger(logger),
		app.WithFetchConcurrency(cfg.FetchConcurrency),
	)
	logger.Info("starting", "api", cfg.APIBaseURL, "limit", cfg.BatchLimit, "db", cfg.DBPath)

	model := tui.NewModel(service, cfg.BatchLimit, cfg.PageSize)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("tui exited", "err", err)
		log.Fatalf("tui error: %v", err)
	}
}
