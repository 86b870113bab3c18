package nav

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePOIsNearestWaypoint(t *testing.T) {
	wps := gridGraph([]mgl64.Vec3{{0, 0, 0}, {5, 0, 0}, {10, 0, 0}}, nil)
	registered := staticRegistry{
		{ID: 1, Name: "Entrance", LocalPosition: mgl64.Vec3{4, 0, 0}},
		{ID: 2, Name: "Exit", LocalPosition: mgl64.Vec3{9.5, 0, 0}},
	}

	pois := ResolvePOIs(registered, wps, 2.0)
	require.Len(t, pois, 2)
	assert.Equal(t, 1, pois[0].NearestWaypointID)
	assert.Equal(t, 2, pois[1].NearestWaypointID)
}

func TestResolvePOIsTieKeepsLowestID(t *testing.T) {
	wps := gridGraph([]mgl64.Vec3{{-1, 0, 0}, {1, 0, 0}}, nil)
	registered := staticRegistry{
		{ID: 1, LocalPosition: mgl64.Vec3{0, 0, 0}},
	}

	pois := ResolvePOIs(registered, wps, 2.0)
	require.Len(t, pois, 1)
	assert.Equal(t, 0, pois[0].NearestWaypointID)
}

func TestResolvePOIsZeroWaypoints(t *testing.T) {
	registered := staticRegistry{
		{ID: 1, Name: "Orphan", LocalPosition: mgl64.Vec3{0, 0, 0}},
	}

	pois := ResolvePOIs(registered, nil, 2.0)
	require.Len(t, pois, 1)
	assert.Equal(t, InvalidWaypointID, pois[0].NearestWaypointID)
}

func TestResolvePOIsArrivalRadius(t *testing.T) {
	wps := gridGraph([]mgl64.Vec3{{0, 0, 0}}, nil)
	registered := staticRegistry{
		{ID: 1, ColliderRadius: 1.25},
		{ID: 2}, // no collider geometry
	}

	pois := ResolvePOIs(registered, wps, 2.0)
	require.Len(t, pois, 2)
	assert.Equal(t, 1.25, pois[0].ArrivalRadius)
	assert.Equal(t, 2.0, pois[1].ArrivalRadius)
}

func TestResolvePOIsCopiesIdentity(t *testing.T) {
	wps := gridGraph([]mgl64.Vec3{{0, 0, 0}}, nil)
	registered := staticRegistry{{
		ID:            7,
		Name:          "Cafe",
		Description:   "Ground floor cafe",
		Category:      "food",
		LocalPosition: mgl64.Vec3{1, 0, 1},
		WorldPosition: mgl64.Vec3{101, 0, 1},
	}}

	pois := ResolvePOIs(registered, wps, 2.0)
	require.Len(t, pois, 1)
	assert.Equal(t, 7, pois[0].ID)
	assert.Equal(t, "Cafe", pois[0].Name)
	assert.Equal(t, "Ground floor cafe", pois[0].Description)
	assert.Equal(t, "food", pois[0].Category)
	assert.Equal(t, mgl64.Vec3{1, 0, 1}, pois[0].LocalPosition)
	assert.Equal(t, mgl64.Vec3{101, 0, 1}, pois[0].WorldPosition)
}
