package nav

import (
	"log/slog"
	"sort"

	"github.com/glasspath/navgrid/internal/surface"
)

// Edge admission: a candidate pair within connectDistanceFactor×spacing is
// connected only when the surface confirms a direct walkable path no longer
// than pathDetourFactor× the straight-line distance. The detour cap rejects
// pairs that are geometrically close but separated by an obstacle, where the
// real route goes around a wall.
const (
	connectDistanceFactor = 1.5
	pathDetourFactor      = 1.5
)

// BuildConnectivity populates every waypoint's neighbor list with validated
// undirected edges and returns the number of waypoints left without any.
// Pre-existing neighbor lists are cleared first, so rebuilding with
// unchanged inputs is idempotent. Neighbor lists come out sorted by ID,
// keeping the edge order independent of bucket iteration order.
func BuildConnectivity(waypoints []Waypoint, index *PlanarIndex, sampler surface.Sampler, spacing float64) int {
	for i := range waypoints {
		waypoints[i].Neighbors = nil
	}

	maxDist := connectDistanceFactor * spacing
	maxDistSq := maxDist * maxDist

	for i := range waypoints {
		a := &waypoints[i]
		for _, cand := range index.Nearby(a.Position) {
			// Each unordered pair is tested once; the edge is recorded on
			// both endpoints.
			if cand.ID <= a.ID {
				continue
			}
			distSq := cand.Position.Sub(a.Position).LenSqr()
			if distSq > maxDistSq {
				continue
			}

			b := &waypoints[cand.ID]
			pathLen, ok := sampler.PathBetween(a.Position, b.Position)
			if !ok {
				continue
			}
			dist := a.Position.Sub(b.Position).Len()
			if pathLen > pathDetourFactor*dist {
				continue
			}

			a.Neighbors = append(a.Neighbors, b.ID)
			b.Neighbors = append(b.Neighbors, a.ID)
		}
	}

	isolated := 0
	for i := range waypoints {
		sort.Ints(waypoints[i].Neighbors)
		if len(waypoints[i].Neighbors) == 0 {
			isolated++
		}
	}

	if isolated > 0 {
		slog.Warn("connectivity pass left isolated waypoints",
			"isolated", isolated, "total", len(waypoints))
	}
	return isolated
}
