// Package config loads the navgen tool configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/glasspath/navgrid/internal/nav"
)

// Config holds one generation run's inputs, tunables and destinations.
type Config struct {
	// MapIdentifier overrides the floor plan's own identifier when set.
	MapIdentifier string `yaml:"map_identifier"`

	FloorPlanPath string `yaml:"floor_plan"`
	OutputPath    string `yaml:"output"`

	Generation GenerationConfig `yaml:"generation"`

	// Database is optional; when a host is set the exported dataset is also
	// uploaded to the dataset registry.
	Database DatabaseConfig `yaml:"database"`
}

// GenerationConfig mirrors nav.Config in YAML form.
type GenerationConfig struct {
	Spacing              float64   `yaml:"spacing"`
	SearchRadius         float64   `yaml:"search_radius"`
	VerticalOffsets      []float64 `yaml:"vertical_offsets"`
	DefaultArrivalRadius float64   `yaml:"default_arrival_radius"`
	PrecomputeWorkers    int       `yaml:"precompute_workers"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the dataset
// registry.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled reports whether a registry upload is configured.
func (d DatabaseConfig) Enabled() bool { return d.Host != "" }

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns the configuration defaults: 1 m spacing, 2 m search
// radius, vertical probes from +1.5 m down to -1.5 m, sequential precompute.
func Default() Config {
	return Config{
		FloorPlanPath: "floorplan.yaml",
		OutputPath:    "navigation_dataset.json",
		Generation: GenerationConfig{
			Spacing:              1.0,
			SearchRadius:         2.0,
			VerticalOffsets:      []float64{1.5, 0.5, -0.5, -1.5},
			DefaultArrivalRadius: 2.0,
			PrecomputeWorkers:    1,
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "disable",
		},
	}
}

// Load reads config from a YAML file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// NavConfig converts the YAML generation section into the pipeline config.
func (c Config) NavConfig(mapID string) nav.Config {
	return nav.Config{
		MapIdentifier:        mapID,
		Spacing:              c.Generation.Spacing,
		SearchRadius:         c.Generation.SearchRadius,
		VerticalOffsets:      c.Generation.VerticalOffsets,
		DefaultArrivalRadius: c.Generation.DefaultArrivalRadius,
		PrecomputeWorkers:    c.Generation.PrecomputeWorkers,
	}
}
