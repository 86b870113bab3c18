package surface

import (
	"fmt"
	"math"
	"os"

	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gopkg.in/yaml.v3"
)

// pathStep is the marching step for direct-path checks, and climbTolerance
// the vertical reach when re-projecting a marching point onto the surface
// (steps taller than this break a direct path).
const (
	pathStep       = 0.25
	climbTolerance = 0.6
)

// FloorPlan is a polygon-soup walkable surface: flat walkable polygons (with
// holes) at fixed elevations, suitable for indoor maps. It implements
// Sampler, BoundsProvider and POIRegistry, standing in for an engine-baked
// navigation mesh.
type FloorPlan struct {
	MapIdentifier string

	polygons []*walkablePolygon
	tree     *rtreego.Rtree
	pois     []RegisteredPOI
	min, max mgl64.Vec3
}

type walkablePolygon struct {
	poly      orb.Polygon
	elevation float64
	rect      rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (w *walkablePolygon) Bounds() rtreego.Rect { return w.rect }

// floorPlanDoc is the on-disk YAML shape.
type floorPlanDoc struct {
	Map      string `yaml:"map"`
	Polygons []struct {
		Elevation float64        `yaml:"elevation"`
		Outer     [][2]float64   `yaml:"outer"`
		Holes     [][][2]float64 `yaml:"holes"`
	} `yaml:"polygons"`
	POIs []struct {
		ID            int        `yaml:"id"`
		Name          string     `yaml:"name"`
		Description   string     `yaml:"description"`
		Category      string     `yaml:"category"`
		Position      [3]float64 `yaml:"position"`
		WorldPosition [3]float64 `yaml:"world_position"`
		ArrivalRadius float64    `yaml:"arrival_radius"`
	} `yaml:"pois"`
}

// LoadFloorPlan reads a floor-plan document from a YAML file.
func LoadFloorPlan(path string) (*FloorPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading floor plan %s: %w", path, err)
	}

	var doc floorPlanDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing floor plan %s: %w", path, err)
	}

	fp := &FloorPlan{MapIdentifier: doc.Map}
	for i, p := range doc.Polygons {
		if len(p.Outer) < 3 {
			return nil, fmt.Errorf("floor plan %s: polygon %d has fewer than 3 vertices", path, i)
		}
		rings := []orb.Ring{closedRing(p.Outer)}
		for _, h := range p.Holes {
			if len(h) < 3 {
				return nil, fmt.Errorf("floor plan %s: polygon %d has a degenerate hole", path, i)
			}
			rings = append(rings, closedRing(h))
		}
		if err := fp.addPolygon(orb.Polygon(rings), p.Elevation); err != nil {
			return nil, fmt.Errorf("floor plan %s: polygon %d: %w", path, i, err)
		}
	}
	for _, p := range doc.POIs {
		fp.pois = append(fp.pois, RegisteredPOI{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			Category:       p.Category,
			LocalPosition:  mgl64.Vec3(p.Position),
			WorldPosition:  mgl64.Vec3(p.WorldPosition),
			ColliderRadius: p.ArrivalRadius,
		})
	}

	if len(fp.polygons) == 0 {
		return nil, fmt.Errorf("floor plan %s: no walkable polygons", path)
	}
	return fp, nil
}

// NewFloorPlan builds a floor plan in memory. Rings are XZ coordinates; the
// first ring of each polygon is the outer boundary, the rest are holes.
func NewFloorPlan(mapID string) *FloorPlan {
	return &FloorPlan{MapIdentifier: mapID}
}

// AddPolygon appends a walkable polygon at the given elevation.
func (fp *FloorPlan) AddPolygon(poly orb.Polygon, elevation float64) error {
	return fp.addPolygon(poly, elevation)
}

// AddPOI registers a destination on this plan.
func (fp *FloorPlan) AddPOI(poi RegisteredPOI) {
	fp.pois = append(fp.pois, poi)
}

func (fp *FloorPlan) addPolygon(poly orb.Polygon, elevation float64) error {
	bound := poly.Bound()
	rect, err := rtreego.NewRect(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		[]float64{bound.Max[0] - bound.Min[0], bound.Max[1] - bound.Min[1]},
	)
	if err != nil {
		return fmt.Errorf("computing polygon rect: %w", err)
	}

	wp := &walkablePolygon{poly: poly, elevation: elevation, rect: rect}
	fp.polygons = append(fp.polygons, wp)

	if fp.tree == nil {
		fp.tree = rtreego.NewTree(2, 25, 50)
	}
	fp.tree.Insert(wp)

	lo := mgl64.Vec3{bound.Min[0], elevation, bound.Min[1]}
	hi := mgl64.Vec3{bound.Max[0], elevation, bound.Max[1]}
	if len(fp.polygons) == 1 {
		fp.min, fp.max = lo, hi
	} else {
		fp.min = mgl64.Vec3{math.Min(fp.min.X(), lo.X()), math.Min(fp.min.Y(), lo.Y()), math.Min(fp.min.Z(), lo.Z())}
		fp.max = mgl64.Vec3{math.Max(fp.max.X(), hi.X()), math.Max(fp.max.Y(), hi.Y()), math.Max(fp.max.Z(), hi.Z())}
	}
	return nil
}

// WalkableBounds implements BoundsProvider.
func (fp *FloorPlan) WalkableBounds() (mgl64.Vec3, mgl64.Vec3) {
	return fp.min, fp.max
}

// POIs implements POIRegistry.
func (fp *FloorPlan) POIs() []RegisteredPOI {
	return fp.pois
}

// Sample implements Sampler: it returns the nearest point on any walkable
// polygon within searchRadius of p. Points inside a polygon project straight
// down/up onto it; points outside (or inside a hole) project onto the
// nearest boundary. Candidates come from the R-tree, so cost is bounded by
// the polygons actually near p.
func (fp *FloorPlan) Sample(p mgl64.Vec3, searchRadius float64) (mgl64.Vec3, bool) {
	if searchRadius <= 0 || fp.tree == nil {
		return mgl64.Vec3{}, false
	}

	var (
		best     mgl64.Vec3
		bestDist = math.Inf(1)
	)
	for _, cand := range fp.candidates(p, searchRadius) {
		if math.Abs(p.Y()-cand.elevation) > searchRadius {
			continue
		}
		pt := orb.Point{p.X(), p.Z()}
		var onSurface orb.Point
		if planar.PolygonContains(cand.poly, pt) {
			onSurface = pt
		} else {
			onSurface = nearestBoundaryPoint(cand.poly, pt)
		}
		hit := mgl64.Vec3{onSurface[0], cand.elevation, onSurface[1]}
		if d := hit.Sub(p).Len(); d <= searchRadius && d < bestDist {
			best, bestDist = hit, d
		}
	}

	if math.IsInf(bestDist, 1) {
		return mgl64.Vec3{}, false
	}
	return best, true
}

// PathBetween implements Sampler: it marches the segment from a to b at a
// fixed step, re-projecting every step onto the surface. The path is direct
// only if every step lands on walkable ground within climbTolerance of the
// previous elevation; the returned length follows the projected points, so
// elevation changes lengthen it.
func (fp *FloorPlan) PathBetween(a, b mgl64.Vec3) (float64, bool) {
	flat := b.Sub(a)
	steps := int(math.Ceil(flat.Len()/pathStep)) + 1
	if steps < 2 {
		steps = 2
	}

	prev, ok := fp.projectOnto(a)
	if !ok {
		return 0, false
	}
	total := 0.0
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		probe := a.Add(flat.Mul(t))
		// Carry the previous elevation so ramps and small steps track, while
		// walls (no polygon underfoot) and tall ledges fail.
		probe = mgl64.Vec3{probe.X(), prev.Y(), probe.Z()}
		cur, ok := fp.projectOnto(probe)
		if !ok {
			return 0, false
		}
		total += cur.Sub(prev).Len()
		prev = cur
	}
	return total, true
}

// projectOnto drops p onto the walkable polygon underneath it, within
// climbTolerance vertically.
func (fp *FloorPlan) projectOnto(p mgl64.Vec3) (mgl64.Vec3, bool) {
	if fp.tree == nil {
		return mgl64.Vec3{}, false
	}
	pt := orb.Point{p.X(), p.Z()}
	var (
		bestElev float64
		found    bool
	)
	for _, cand := range fp.candidates(p, pathStep) {
		if math.Abs(p.Y()-cand.elevation) > climbTolerance {
			continue
		}
		if !planar.PolygonContains(cand.poly, pt) {
			continue
		}
		if !found || math.Abs(p.Y()-cand.elevation) < math.Abs(p.Y()-bestElev) {
			bestElev = cand.elevation
			found = true
		}
	}
	if !found {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{p.X(), bestElev, p.Z()}, true
}

// candidates queries the R-tree for polygons whose XZ bounds come within
// radius of p.
func (fp *FloorPlan) candidates(p mgl64.Vec3, radius float64) []*walkablePolygon {
	rect, err := rtreego.NewRect(
		rtreego.Point{p.X() - radius, p.Z() - radius},
		[]float64{2 * radius, 2 * radius},
	)
	if err != nil {
		return nil
	}
	hits := fp.tree.SearchIntersect(rect)
	out := make([]*walkablePolygon, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*walkablePolygon))
	}
	return out
}

// closedRing builds an orb.Ring, closing it if the document left the last
// vertex off.
func closedRing(coords [][2]float64) orb.Ring {
	ring := make(orb.Ring, 0, len(coords)+1)
	for _, c := range coords {
		ring = append(ring, orb.Point{c[0], c[1]})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// nearestBoundaryPoint projects pt onto the closest segment of any of the
// polygon's rings.
func nearestBoundaryPoint(poly orb.Polygon, pt orb.Point) orb.Point {
	best := poly[0][0]
	bestSq := math.Inf(1)
	for _, ring := range poly {
		for i := 0; i+1 < len(ring); i++ {
			q := closestPointOnSegment(ring[i], ring[i+1], pt)
			dx, dy := q[0]-pt[0], q[1]-pt[1]
			if dSq := dx*dx + dy*dy; dSq < bestSq {
				best, bestSq = q, dSq
			}
		}
	}
	return best
}

func closestPointOnSegment(a, b, pt orb.Point) orb.Point {
	abx, aby := b[0]-a[0], b[1]-a[1]
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return a
	}
	t := ((pt[0]-a[0])*abx + (pt[1]-a[1])*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	return orb.Point{a[0] + t*abx, a[1] + t*aby}
}
