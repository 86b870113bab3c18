// Package store is the central dataset registry: precomputed navigation
// datasets are uploaded here by the generation tool and fetched by devices
// through the delivery pipeline.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glasspath/navgrid/internal/nav"
)

// ErrNotFound is returned when no dataset exists for a map identifier.
var ErrNotFound = errors.New("store: dataset not found")

// Store wraps a pgx connection pool for dataset operations.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a Store handle.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Save upserts a dataset under its map identifier. Empty datasets are
// rejected: there is nothing a device could navigate with.
func (s *Store) Save(ctx context.Context, ds *nav.Dataset) error {
	if ds == nil || len(ds.Waypoints) == 0 || len(ds.POIs) == 0 {
		return nav.ErrEmptyDataset
	}
	if ds.MapIdentifier == "" {
		return errors.New("store: dataset has no map identifier")
	}

	payload, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encoding dataset %q: %w", ds.MapIdentifier, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO nav_datasets (map_identifier, generated_at, waypoint_spacing, payload)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (map_identifier) DO UPDATE
		 SET generated_at = EXCLUDED.generated_at,
		     waypoint_spacing = EXCLUDED.waypoint_spacing,
		     payload = EXCLUDED.payload`,
		ds.MapIdentifier, ds.GeneratedAt, ds.WaypointSpacing, payload,
	)
	if err != nil {
		return fmt.Errorf("saving dataset %q: %w", ds.MapIdentifier, err)
	}
	return nil
}

// Load retrieves the dataset for a map identifier.
func (s *Store) Load(ctx context.Context, mapID string) (*nav.Dataset, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM nav_datasets WHERE map_identifier = $1`, mapID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying dataset %q: %w", mapID, err)
	}

	var ds nav.Dataset
	if err := json.Unmarshal(payload, &ds); err != nil {
		return nil, fmt.Errorf("decoding dataset %q: %w", mapID, err)
	}
	return &ds, nil
}

// DatasetInfo is one registry listing entry.
type DatasetInfo struct {
	MapIdentifier string
	GeneratedAt   time.Time
}

// List enumerates stored datasets ordered by map identifier.
func (s *Store) List(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT map_identifier, generated_at FROM nav_datasets ORDER BY map_identifier`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var out []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.MapIdentifier, &info.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scanning dataset row: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dataset rows: %w", err)
	}
	return out, nil
}
