// Package surface abstracts the walkable-surface collaborator the
// navigation pipeline samples against. Any representation that can answer
// "nearest walkable point" and "direct walkable path" queries can drive a
// generation run; the bundled FloorPlan is one such implementation.
package surface

import "github.com/go-gl/mathgl/mgl64"

// Sampler answers point and path queries against a walkable surface.
type Sampler interface {
	// Sample returns the nearest point on the walkable surface within
	// searchRadius of p, or false if no such point exists.
	Sample(p mgl64.Vec3, searchRadius float64) (mgl64.Vec3, bool)

	// PathBetween reports whether a direct walkable path exists between two
	// surface points, and its traversal length if so.
	PathBetween(a, b mgl64.Vec3) (float64, bool)
}

// BoundsProvider exposes the axis-aligned bounds of the walkable region.
type BoundsProvider interface {
	WalkableBounds() (min, max mgl64.Vec3)
}

// RegisteredPOI is a point of interest as known to the external registry.
// ColliderRadius is zero when the POI has no marker geometry attached.
type RegisteredPOI struct {
	ID             int
	Name           string
	Description    string
	Category       string
	LocalPosition  mgl64.Vec3
	WorldPosition  mgl64.Vec3
	ColliderRadius float64
}

// POIRegistry enumerates the destinations navigation targets.
type POIRegistry interface {
	POIs() []RegisteredPOI
}
