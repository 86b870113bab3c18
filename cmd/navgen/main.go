// navgen precomputes a portable navigation dataset from a floor plan: it
// samples the walkable surface into a waypoint grid, connects it, resolves
// POIs and bakes the shortest route from every waypoint to every POI, then
// exports the result as JSON (and optionally uploads it to the dataset
// registry).
//
// Usage:
//
//	navgen [-config config/navgen.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/glasspath/navgrid/internal/config"
	"github.com/glasspath/navgrid/internal/nav"
	"github.com/glasspath/navgrid/internal/store"
	"github.com/glasspath/navgrid/internal/surface"
)

const defaultConfigPath = "config/navgen.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := flag.String("config", defaultConfigPath, "path to YAML config")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.Info("config loaded",
		"floor_plan", cfg.FloorPlanPath,
		"output", cfg.OutputPath,
		"spacing", cfg.Generation.Spacing)

	plan, err := surface.LoadFloorPlan(cfg.FloorPlanPath)
	if err != nil {
		return fmt.Errorf("loading floor plan: %w", err)
	}
	mapID := cfg.MapIdentifier
	if mapID == "" {
		mapID = plan.MapIdentifier
	}

	dataset, report, err := nav.Generate(ctx, cfg.NavConfig(mapID), plan, plan, plan)
	if report != nil {
		for _, w := range report.Warnings {
			slog.Warn("diagnostic", "warning", w)
		}
	}
	if err != nil {
		return fmt.Errorf("generating dataset: %w", err)
	}

	if err := nav.ExportFile(cfg.OutputPath, dataset); err != nil {
		return fmt.Errorf("exporting dataset: %w", err)
	}
	slog.Info("dataset exported", "path", cfg.OutputPath)

	if cfg.Database.Enabled() {
		if err := uploadDataset(ctx, cfg.Database.DSN(), dataset); err != nil {
			return fmt.Errorf("uploading dataset: %w", err)
		}
		slog.Info("dataset uploaded to registry", "map", dataset.MapIdentifier)
	}
	return nil
}

func uploadDataset(ctx context.Context, dsn string, ds *nav.Dataset) error {
	if err := store.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	registry, err := store.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting to registry: %w", err)
	}
	defer registry.Close()

	return registry.Save(ctx, ds)
}
