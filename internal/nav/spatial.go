package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// IndexEntry is a waypoint reference stored in a spatial index bucket.
type IndexEntry struct {
	ID       int
	Position mgl64.Vec3
}

type cellKey2 struct {
	x, z int
}

type cellKey3 struct {
	x, y, z int
}

// PlanarIndex is a uniform bucket grid over the XZ plane. With a cell size
// of at least the maximum query distance, any point within that distance of
// a query point lies in the queried cell or one of its 8 neighbors, so
// Nearby is a complete candidate set.
type PlanarIndex struct {
	cellSize float64
	buckets  map[cellKey2][]IndexEntry
}

// NewPlanarIndex creates an empty planar index with the given cell size.
func NewPlanarIndex(cellSize float64) *PlanarIndex {
	return &PlanarIndex{
		cellSize: cellSize,
		buckets:  make(map[cellKey2][]IndexEntry),
	}
}

func (ix *PlanarIndex) key(p mgl64.Vec3) cellKey2 {
	return cellKey2{
		x: int(math.Floor(p.X() / ix.cellSize)),
		z: int(math.Floor(p.Z() / ix.cellSize)),
	}
}

// Insert adds a waypoint reference to the index.
func (ix *PlanarIndex) Insert(id int, p mgl64.Vec3) {
	k := ix.key(p)
	ix.buckets[k] = append(ix.buckets[k], IndexEntry{ID: id, Position: p})
}

// Nearby returns all entries in the cell containing p and its 8 neighbors.
func (ix *PlanarIndex) Nearby(p mgl64.Vec3) []IndexEntry {
	k := ix.key(p)
	var out []IndexEntry
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			out = append(out, ix.buckets[cellKey2{x: k.x + dx, z: k.z + dz}]...)
		}
	}
	return out
}

// SpatialIndex is the 3D variant of PlanarIndex. The grid generator uses it
// for its too-close check: slopes can place two surface hits close in 3D
// without sharing a planar cell.
type SpatialIndex struct {
	cellSize float64
	buckets  map[cellKey3][]IndexEntry
}

// NewSpatialIndex creates an empty 3D index with the given cell size.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	return &SpatialIndex{
		cellSize: cellSize,
		buckets:  make(map[cellKey3][]IndexEntry),
	}
}

func (ix *SpatialIndex) key(p mgl64.Vec3) cellKey3 {
	return cellKey3{
		x: int(math.Floor(p.X() / ix.cellSize)),
		y: int(math.Floor(p.Y() / ix.cellSize)),
		z: int(math.Floor(p.Z() / ix.cellSize)),
	}
}

// Insert adds a waypoint reference to the index.
func (ix *SpatialIndex) Insert(id int, p mgl64.Vec3) {
	k := ix.key(p)
	ix.buckets[k] = append(ix.buckets[k], IndexEntry{ID: id, Position: p})
}

// Nearby returns all entries in the cell containing p and its 26 neighbors.
func (ix *SpatialIndex) Nearby(p mgl64.Vec3) []IndexEntry {
	k := ix.key(p)
	var out []IndexEntry
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				out = append(out, ix.buckets[cellKey3{x: k.x + dx, y: k.y + dy, z: k.z + dz}]...)
			}
		}
	}
	return out
}

// HasWithin reports whether any indexed entry lies within dist of p.
// Requires dist <= cellSize.
func (ix *SpatialIndex) HasWithin(p mgl64.Vec3, dist float64) bool {
	distSq := dist * dist
	for _, e := range ix.Nearby(p) {
		if e.Position.Sub(p).LenSqr() <= distSq {
			return true
		}
	}
	return false
}
