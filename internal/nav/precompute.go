package nav

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// unreachableWarnFraction: a POI failing to reach more than this fraction of
// waypoints is a disconnected-region symptom worth surfacing.
const unreachableWarnFraction = 0.10

// PrecomputeStats aggregates per-pair path failures. Failures never abort
// the batch; they are counted per POI and globally.
type PrecomputeStats struct {
	Computed    int
	Failures    int
	POIFailures map[int]int // POI ID -> unreachable waypoint count
}

// PrecomputePaths runs one A* search per (waypoint, POI) pair and collects
// every found route. POI batches run concurrently up to the worker limit
// (1 = sequential); results are assembled in registry order then waypoint
// order, so the output is identical regardless of worker count.
func PrecomputePaths(ctx context.Context, waypoints []Waypoint, pois []PointOfInterest, workers int) ([]NavigationPath, PrecomputeStats, error) {
	if len(waypoints) == 0 {
		return nil, PrecomputeStats{}, ErrNoWaypoints
	}
	if len(pois) == 0 {
		return nil, PrecomputeStats{}, ErrNoPOIs
	}
	if workers < 1 {
		workers = 1
	}

	perPOI := make([][]NavigationPath, len(pois))
	failures := make([]int, len(pois))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for pi := range pois {
		pi := pi
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			poi := pois[pi]
			if poi.NearestWaypointID == InvalidWaypointID {
				return fmt.Errorf("precomputing POI %d: %w", poi.ID, ErrNoWaypoints)
			}

			paths := make([]NavigationPath, 0, len(waypoints))
			for wi := range waypoints {
				ids, dist, ok := FindPath(waypoints, waypoints[wi].ID, poi.NearestWaypointID)
				if !ok {
					failures[pi]++
					continue
				}
				paths = append(paths, NavigationPath{
					FromWaypointID: waypoints[wi].ID,
					ToPOIID:        poi.ID,
					WaypointPath:   ids,
					TotalDistance:  dist,
				})
			}
			perPOI[pi] = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, PrecomputeStats{}, err
	}

	stats := PrecomputeStats{POIFailures: make(map[int]int)}
	var all []NavigationPath
	for pi, paths := range perPOI {
		all = append(all, paths...)
		stats.Computed += len(paths)
		if n := failures[pi]; n > 0 {
			stats.Failures += n
			stats.POIFailures[pois[pi].ID] = n
			if float64(n) > unreachableWarnFraction*float64(len(waypoints)) {
				slog.Warn("POI unreachable from many waypoints, likely a disconnected region",
					"poi", pois[pi].ID, "name", pois[pi].Name,
					"unreachable", n, "waypoints", len(waypoints))
			}
		}
	}

	slog.Info("paths precomputed",
		"paths", stats.Computed, "failures", stats.Failures, "pois", len(pois))
	return all, stats, nil
}
