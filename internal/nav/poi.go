package nav

import (
	"log/slog"

	"github.com/glasspath/navgrid/internal/surface"
)

// ResolvePOIs attaches each registered POI to its nearest waypoint by
// Euclidean distance and records an arrival radius (the POI's collider
// radius when it has one, the configured default otherwise).
//
// A linear scan is deliberate: POI counts are small and the strictly-less
// comparison makes ties resolve to the lowest waypoint ID. With zero
// waypoints the nearest ID degrades to InvalidWaypointID and callers must
// check for it.
func ResolvePOIs(registered []surface.RegisteredPOI, waypoints []Waypoint, defaultArrivalRadius float64) []PointOfInterest {
	pois := make([]PointOfInterest, 0, len(registered))
	for _, r := range registered {
		nearest := InvalidWaypointID
		bestSq := 0.0
		for i := range waypoints {
			dSq := waypoints[i].Position.Sub(r.LocalPosition).LenSqr()
			if nearest == InvalidWaypointID || dSq < bestSq {
				nearest = waypoints[i].ID
				bestSq = dSq
			}
		}

		radius := r.ColliderRadius
		if radius <= 0 {
			radius = defaultArrivalRadius
		}

		if nearest == InvalidWaypointID {
			slog.Warn("POI resolved without waypoint", "poi", r.ID, "name", r.Name)
		}
		pois = append(pois, PointOfInterest{
			ID:                r.ID,
			Name:              r.Name,
			Description:       r.Description,
			Category:          r.Category,
			LocalPosition:     r.LocalPosition,
			WorldPosition:     r.WorldPosition,
			NearestWaypointID: nearest,
			ArrivalRadius:     radius,
		})
	}
	return pois
}
