package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/glasspath/navgrid/internal/surface"
)

// flatSampler is a rectangular walkable plane at y=0, bounded in XZ.
// PathBetween is always direct with straight-line length.
type flatSampler struct {
	minX, maxX float64
	minZ, maxZ float64
}

func newFlatSampler(minX, maxX, minZ, maxZ float64) *flatSampler {
	return &flatSampler{minX: minX, maxX: maxX, minZ: minZ, maxZ: maxZ}
}

func (s *flatSampler) Sample(p mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	if p.X() < s.minX || p.X() > s.maxX || p.Z() < s.minZ || p.Z() > s.maxZ {
		return mgl64.Vec3{}, false
	}
	if math.Abs(p.Y()) > radius {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{p.X(), 0, p.Z()}, true
}

func (s *flatSampler) PathBetween(a, b mgl64.Vec3) (float64, bool) {
	return b.Sub(a).Len(), true
}

func (s *flatSampler) WalkableBounds() (mgl64.Vec3, mgl64.Vec3) {
	return mgl64.Vec3{s.minX, 0, s.minZ}, mgl64.Vec3{s.maxX, 0, s.maxZ}
}

// wallSampler splits a flat plane with a wall at wallX: sampling still works
// everywhere, but no direct path crosses the wall.
type wallSampler struct {
	*flatSampler
	wallX float64
}

func (s *wallSampler) PathBetween(a, b mgl64.Vec3) (float64, bool) {
	if (a.X() < s.wallX) != (b.X() < s.wallX) {
		return 0, false
	}
	return s.flatSampler.PathBetween(a, b)
}

// detourSampler reports a walkable path between every pair, but pairs
// crossing wallX take a long way around.
type detourSampler struct {
	*flatSampler
	wallX  float64
	detour float64
}

func (s *detourSampler) PathBetween(a, b mgl64.Vec3) (float64, bool) {
	direct := b.Sub(a).Len()
	if (a.X() < s.wallX) != (b.X() < s.wallX) {
		return direct + s.detour, true
	}
	return direct, true
}

// staticRegistry is a fixed POI list.
type staticRegistry []surface.RegisteredPOI

func (r staticRegistry) POIs() []surface.RegisteredPOI { return r }

// gridGraph builds a hand-wired waypoint graph from positions and edges,
// for search tests that bypass generation.
func gridGraph(positions []mgl64.Vec3, edges [][2]int) []Waypoint {
	wps := make([]Waypoint, len(positions))
	for i, p := range positions {
		wps[i] = Waypoint{ID: i, Position: p}
	}
	for _, e := range edges {
		wps[e[0]].Neighbors = append(wps[e[0]].Neighbors, e[1])
		wps[e[1]].Neighbors = append(wps[e[1]].Neighbors, e[0])
	}
	return wps
}
