package nav

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glasspath/navgrid/internal/surface"
)

// Surface-miss-rate thresholds for the generation diagnostics: above
// missRateErrorLevel the surface is probably not baked or the agent radius
// is wrong; between missRateInfoLevel and missRateErrorLevel misses are
// expected for geometry with obstacles.
const (
	missRateInfoLevel  = 0.20
	missRateErrorLevel = 0.50
)

// Config holds the tunables of one generation run.
type Config struct {
	// MapIdentifier names the map the dataset belongs to.
	MapIdentifier string
	// Spacing is the planar grid step between waypoint samples. Must be > 0.
	Spacing float64
	// SearchRadius is passed to the surface sampler at every probe.
	SearchRadius float64
	// VerticalOffsets are tried in order at each grid cell, relative to the
	// vertical center of the bounds; the first surface hit wins.
	VerticalOffsets []float64
	// DefaultArrivalRadius is used for POIs without collider geometry.
	DefaultArrivalRadius float64
	// PrecomputeWorkers caps concurrent per-POI A* batches. 1 = sequential.
	PrecomputeWorkers int
}

// Report carries the non-fatal diagnostics of one run.
type Report struct {
	Grid              GridStats
	IsolatedWaypoints int
	Paths             PrecomputeStats
	Warnings          []string
	Elapsed           time.Duration
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Generate runs the full pipeline: grid sampling, spatial indexing,
// connectivity, POI resolution and path precomputation. It returns the
// dataset together with a diagnostic report; the report is non-nil even when
// the run fails after generation started.
//
// Fatal conditions follow the taxonomy: missing collaborators and a bad
// spacing abort immediately; an empty waypoint set or POI registry aborts
// before precompute. Warnings (miss rate, isolated waypoints, unreachable
// POIs) never abort. The context is honored between stages.
func Generate(ctx context.Context, cfg Config, sampler surface.Sampler, bounds surface.BoundsProvider, registry surface.POIRegistry) (*Dataset, *Report, error) {
	if sampler == nil {
		return nil, nil, ErrNoSurface
	}
	if bounds == nil {
		return nil, nil, ErrNoBounds
	}
	if registry == nil {
		return nil, nil, ErrNoPOIRegistry
	}
	if cfg.Spacing <= 0 {
		return nil, nil, fmt.Errorf("nav: spacing must be positive, got %v", cfg.Spacing)
	}

	started := time.Now()
	report := &Report{}

	min, max := bounds.WalkableBounds()
	bb := NewBounds(min, max)
	slog.Info("generation started",
		"map", cfg.MapIdentifier, "spacing", cfg.Spacing,
		"min", bb.Min, "max", bb.Max)

	waypoints, grid := GenerateWaypoints(sampler, bb, cfg)
	report.Grid = grid
	switch rate := grid.MissRate(); {
	case rate > missRateErrorLevel:
		report.warnf("surface miss rate %.0f%%: surface likely not baked or agent radius wrong", rate*100)
		slog.Error("high surface miss rate", "rate", rate)
	case rate > missRateInfoLevel:
		report.warnf("surface miss rate %.0f%%: expected for geometry with obstacles", rate*100)
	}
	if len(waypoints) == 0 {
		report.Elapsed = time.Since(started)
		return nil, report, ErrNoWaypoints
	}
	if err := ctx.Err(); err != nil {
		return nil, report, err
	}

	index := NewPlanarIndex(2 * cfg.Spacing)
	for i := range waypoints {
		index.Insert(waypoints[i].ID, waypoints[i].Position)
	}

	report.IsolatedWaypoints = BuildConnectivity(waypoints, index, sampler, cfg.Spacing)
	if report.IsolatedWaypoints > 0 {
		report.warnf("%d isolated waypoints: walkable surface has disconnected regions", report.IsolatedWaypoints)
	}
	if err := ctx.Err(); err != nil {
		return nil, report, err
	}

	registered := registry.POIs()
	pois := ResolvePOIs(registered, waypoints, cfg.DefaultArrivalRadius)
	if len(pois) == 0 {
		report.Elapsed = time.Since(started)
		return nil, report, ErrNoPOIs
	}

	paths, pathStats, err := PrecomputePaths(ctx, waypoints, pois, cfg.PrecomputeWorkers)
	if err != nil {
		report.Elapsed = time.Since(started)
		return nil, report, fmt.Errorf("precomputing paths: %w", err)
	}
	report.Paths = pathStats
	for poiID, n := range pathStats.POIFailures {
		if float64(n) > unreachableWarnFraction*float64(len(waypoints)) {
			report.warnf("POI %d unreachable from %d of %d waypoints", poiID, n, len(waypoints))
		}
	}

	report.Elapsed = time.Since(started)
	ds := &Dataset{
		MapIdentifier:   cfg.MapIdentifier,
		GeneratedAt:     time.Now().UTC(),
		WaypointSpacing: cfg.Spacing,
		Bounds:          bb,
		POIs:            pois,
		Waypoints:       waypoints,
		Paths:           paths,
	}
	slog.Info("generation finished",
		"map", cfg.MapIdentifier,
		"waypoints", len(ds.Waypoints), "pois", len(ds.POIs), "paths", len(ds.Paths),
		"elapsed", report.Elapsed.Round(time.Millisecond))
	return ds, report, nil
}
