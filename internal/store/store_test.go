package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glasspath/navgrid/internal/nav"
)

func TestSaveRejectsEmptyDataset(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	assert.ErrorIs(t, s.Save(ctx, nil), nav.ErrEmptyDataset)
	assert.ErrorIs(t, s.Save(ctx, &nav.Dataset{}), nav.ErrEmptyDataset)

	noWaypoints := &nav.Dataset{
		MapIdentifier: "m",
		POIs:          []nav.PointOfInterest{{ID: 1}},
	}
	assert.ErrorIs(t, s.Save(ctx, noWaypoints), nav.ErrEmptyDataset)
}

func TestSaveRejectsMissingIdentifier(t *testing.T) {
	s := &Store{}
	ds := &nav.Dataset{
		POIs:      []nav.PointOfInterest{{ID: 1}},
		Waypoints: []nav.Waypoint{{ID: 0}},
	}

	err := s.Save(context.Background(), ds)
	assert.ErrorContains(t, err, "map identifier")
}
