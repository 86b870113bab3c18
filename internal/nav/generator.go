package nav

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/glasspath/navgrid/internal/surface"
)

// GridStats is the grid generator's diagnostic counters.
type GridStats struct {
	CellsSampled      int
	Hits              int
	Misses            int
	DuplicatesSkipped int
}

// MissRate is the fraction of sampled cells that hit no surface.
func (s GridStats) MissRate() float64 {
	if s.CellsSampled == 0 {
		return 0
	}
	return float64(s.Misses) / float64(s.CellsSampled)
}

// GenerateWaypoints scans bounds on a regular XZ grid with the configured
// spacing and samples the surface at every cell. Each cell is probed at each
// vertical offset in order, and the first hit wins; a hit closer than half
// the spacing to an already accepted waypoint is skipped, so sloped and
// multi-level geometry never produces per-cell duplicates or dense clumps
// near concave walls.
//
// IDs are assigned in scan order (outer X, inner Z), making regeneration
// with identical inputs byte-for-byte reproducible. A surface that never
// answers yields an empty set, not an error; callers treat that as a hard
// stop before precompute and export.
func GenerateWaypoints(sampler surface.Sampler, bounds Bounds, cfg Config) ([]Waypoint, GridStats) {
	offsets := cfg.VerticalOffsets
	if len(offsets) == 0 {
		offsets = []float64{0}
	}

	// Integer-stepped cell counts keep the scan free of float accumulation
	// drift across platforms.
	stepsX := int(math.Floor(bounds.Size.X()/cfg.Spacing)) + 1
	stepsZ := int(math.Floor(bounds.Size.Z()/cfg.Spacing)) + 1

	var (
		waypoints []Waypoint
		stats     GridStats
	)
	index := NewSpatialIndex(2 * cfg.Spacing)
	baseY := bounds.Center.Y()

	for ix := 0; ix < stepsX; ix++ {
		x := bounds.Min.X() + float64(ix)*cfg.Spacing
		for iz := 0; iz < stepsZ; iz++ {
			z := bounds.Min.Z() + float64(iz)*cfg.Spacing
			stats.CellsSampled++

			hit, ok := sampleCell(sampler, mgl64.Vec3{x, baseY, z}, offsets, cfg.SearchRadius)
			if !ok {
				stats.Misses++
				continue
			}
			stats.Hits++

			if index.HasWithin(hit, 0.5*cfg.Spacing) {
				stats.DuplicatesSkipped++
				continue
			}

			id := len(waypoints)
			waypoints = append(waypoints, Waypoint{ID: id, Position: hit})
			index.Insert(id, hit)
		}
	}

	slog.Info("waypoint grid generated",
		"waypoints", len(waypoints),
		"cells", stats.CellsSampled,
		"hits", stats.Hits,
		"misses", stats.Misses,
		"duplicates", stats.DuplicatesSkipped,
	)
	return waypoints, stats
}

// sampleCell probes one grid cell at each vertical offset and returns the
// first surface hit.
func sampleCell(sampler surface.Sampler, base mgl64.Vec3, offsets []float64, radius float64) (mgl64.Vec3, bool) {
	for _, off := range offsets {
		probe := mgl64.Vec3{base.X(), base.Y() + off, base.Z()}
		if hit, ok := sampler.Sample(probe, radius); ok {
			return hit, true
		}
	}
	return mgl64.Vec3{}, false
}
