// Package nav builds portable waypoint-graph datasets from a walkable
// surface: it samples the surface on a regular grid, connects the resulting
// waypoints into an undirected graph, attaches points of interest and
// precomputes the shortest route from every waypoint to every POI. The
// output is a flat dataset that a device without a pathfinding engine can
// follow directly.
package nav

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// InvalidWaypointID is the sentinel stored where no waypoint can be
// referenced (e.g. a POI resolved against an empty waypoint set).
const InvalidWaypointID = -1

// Waypoint is a sampled point on the walkable surface, usable as a graph
// node. IDs are dense integers starting at 0, assigned in grid scan order,
// so regeneration with identical inputs yields identical IDs.
type Waypoint struct {
	ID        int        `json:"id"`
	Position  mgl64.Vec3 `json:"position"`
	Neighbors []int      `json:"connectedWaypoints"`
}

// PointOfInterest is a named destination attached to its nearest waypoint.
type PointOfInterest struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Category          string     `json:"type"`
	LocalPosition     mgl64.Vec3 `json:"position"`
	WorldPosition     mgl64.Vec3 `json:"worldPosition"`
	NearestWaypointID int        `json:"nearestWaypointId"`
	ArrivalRadius     float64    `json:"arrivalRadius"`
}

// Bounds is the axis-aligned bounding box of the walkable region.
type Bounds struct {
	Center mgl64.Vec3 `json:"center"`
	Size   mgl64.Vec3 `json:"size"`
	Min    mgl64.Vec3 `json:"min"`
	Max    mgl64.Vec3 `json:"max"`
}

// NewBounds builds Bounds from min/max corners.
func NewBounds(min, max mgl64.Vec3) Bounds {
	return Bounds{
		Center: min.Add(max).Mul(0.5),
		Size:   max.Sub(min),
		Min:    min,
		Max:    max,
	}
}

// NavigationPath is the precomputed shortest route from one waypoint to one
// POI's nearest waypoint. WaypointPath starts at FromWaypointID and ends at
// the POI's nearest waypoint.
type NavigationPath struct {
	FromWaypointID int     `json:"fromWaypointId"`
	ToPOIID        int     `json:"toPoiId"`
	WaypointPath   []int   `json:"waypointPath"`
	TotalDistance  float64 `json:"totalDistance"`
}

// Dataset is the unit of export: everything a device needs to navigate one
// map without a live pathfinding engine.
type Dataset struct {
	MapIdentifier   string            `json:"mapIdentifier"`
	GeneratedAt     time.Time         `json:"generatedAt"`
	WaypointSpacing float64           `json:"waypointSpacing"`
	Bounds          Bounds            `json:"bounds"`
	POIs            []PointOfInterest `json:"pois"`
	Waypoints       []Waypoint        `json:"waypoints"`
	Paths           []NavigationPath  `json:"paths"`
}
