// Command assessctl is the operator CLI: list courses, print question sets,
// build reports for recorded conversations and score static assessments.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/ai/stub"
	"github.com/fairyhunter13/skillbridge-assessor/internal/app"
	"github.com/fairyhunter13/skillbridge-assessor/internal/cli"
	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// stdout carries JSON; keep diagnostics on stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx := context.Background()
	deps, err := app.BuildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()

	svc := app.NewServices(cfg, deps)
	root := cli.NewRootCmd(&cli.App{
		Catalog:        deps.Catalog,
		Questions:      svc.Questions,
		Scoring:        svc.Scoring,
		Reports:        svc.Reports,
		OfflineReports: usecase.NewReportPipeline(stub.New("offline mode"), 1, 0),
	})
	return root.ExecuteContext(ctx)
}
