package nav

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *Dataset {
	return &Dataset{
		MapIdentifier:   "office-f1",
		GeneratedAt:     time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		WaypointSpacing: 1.0,
		Bounds:          NewBounds(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 3, 10}),
		POIs: []PointOfInterest{{
			ID:                1,
			Name:              "Reception",
			Description:       "Front desk",
			Category:          "service",
			LocalPosition:     mgl64.Vec3{5, 0, 5},
			WorldPosition:     mgl64.Vec3{105, 0, 5},
			NearestWaypointID: 1,
			ArrivalRadius:     2.0,
		}},
		Waypoints: []Waypoint{
			{ID: 0, Position: mgl64.Vec3{0, 0, 0}, Neighbors: []int{1}},
			{ID: 1, Position: mgl64.Vec3{1, 0, 0}, Neighbors: []int{0}},
		},
		Paths: []NavigationPath{
			{FromWaypointID: 0, ToPOIID: 1, WaypointPath: []int{0, 1}, TotalDistance: 1.0},
			{FromWaypointID: 1, ToPOIID: 1, WaypointPath: []int{1}, TotalDistance: 0},
		},
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	ds := sampleDataset()

	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, ds))

	got, err := ReadDataset(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestDatasetFileRoundTrip(t *testing.T) {
	ds := sampleDataset()
	path := filepath.Join(t.TempDir(), "dataset.json")

	require.NoError(t, ExportFile(path, ds))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestDatasetJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, sampleDataset()))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"mapIdentifier", "generatedAt", "waypointSpacing", "bounds", "pois", "waypoints", "paths"} {
		assert.Contains(t, raw, key)
	}

	bounds := raw["bounds"].(map[string]any)
	for _, key := range []string{"center", "size", "min", "max"} {
		assert.Contains(t, bounds, key)
	}

	wp := raw["waypoints"].([]any)[0].(map[string]any)
	assert.Contains(t, wp, "connectedWaypoints")
	assert.Len(t, wp["position"].([]any), 3)

	poi := raw["pois"].([]any)[0].(map[string]any)
	for _, key := range []string{"type", "position", "worldPosition", "nearestWaypointId", "arrivalRadius"} {
		assert.Contains(t, poi, key)
	}

	path := raw["paths"].([]any)[0].(map[string]any)
	for _, key := range []string{"fromWaypointId", "toPoiId", "waypointPath", "totalDistance"} {
		assert.Contains(t, path, key)
	}
}

func TestWriteDatasetRefusesEmpty(t *testing.T) {
	var buf bytes.Buffer

	assert.ErrorIs(t, WriteDataset(&buf, nil), ErrEmptyDataset)
	assert.ErrorIs(t, WriteDataset(&buf, &Dataset{}), ErrEmptyDataset)

	noPOIs := sampleDataset()
	noPOIs.POIs = nil
	assert.ErrorIs(t, WriteDataset(&buf, noPOIs), ErrEmptyDataset)
}
