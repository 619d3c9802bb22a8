package game

import (
	"time"

	"github.com/BurntSushi/toml"

	"linechime/phys"
	"linechime/scene"
)

// Config holds every tunable of the toy. A TOML file given with
// -config overrides individual fields; everything else keeps its
// default.
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int `toml:"screen_width"`

	// ScreenHeight is the window height in pixels
	ScreenHeight int `toml:"screen_height"`

	// Gravity is the downward acceleration in pixels per second squared
	Gravity float64 `toml:"gravity"`

	// BallRadius is the radius of spawned balls in pixels
	BallRadius float64 `toml:"ball_radius"`

	// MaxBallSpeed bounds ball velocity in pixels per second
	MaxBallSpeed float64 `toml:"max_ball_speed"`

	// MinLineLength is the shortest line a draw gesture may produce
	MinLineLength float64 `toml:"min_line_length"`

	// LineThickness is the stroke and collision thickness of lines
	LineThickness float64 `toml:"line_thickness"`

	// LineHoverDist is the pointer distance at which a line is hovered
	LineHoverDist float64 `toml:"line_hover_dist"`

	// EndpointHoverDist is the pointer distance at which an endpoint is
	// hovered
	EndpointHoverDist float64 `toml:"endpoint_hover_dist"`

	// SpawnerHoverDist is the pointer distance at which a spawner is
	// hovered
	SpawnerHoverDist float64 `toml:"spawner_hover_dist"`

	// HoldThresholdMS is how long a still press must last to count as a
	// hold (spawner creation) instead of a click (ball spawn)
	HoldThresholdMS int `toml:"hold_threshold_ms"`

	// SprayIntervalMS is the minimum time between balls sprayed from a
	// held pointer
	SprayIntervalMS int `toml:"spray_interval_ms"`

	// SpawnIntervalMS is the emission interval new spawners start with
	SpawnIntervalMS int `toml:"spawn_interval_ms"`

	// MinSpawnIntervalMS and MaxSpawnIntervalMS bound spawner intervals
	MinSpawnIntervalMS int `toml:"min_spawn_interval_ms"`
	MaxSpawnIntervalMS int `toml:"max_spawn_interval_ms"`

	// MaxSpawners caps spawner count; zero means uncapped
	MaxSpawners int `toml:"max_spawners"`

	// HistorySize is the maximum depth of the undo stack
	HistorySize int `toml:"history_size"`

	// TrailLength is the number of positions kept per ball trail
	TrailLength int `toml:"trail_length"`

	// OffscreenMargin is how far below the window balls survive
	OffscreenMargin float64 `toml:"offscreen_margin"`

	// HandleSize is the edge length of selection resize handles
	HandleSize float64 `toml:"handle_size"`

	// MinSelectionSize is the smallest dimension a resize may shrink a
	// selection box to
	MinSelectionSize float64 `toml:"min_selection_size"`

	// Muted disables audio entirely
	Muted bool `toml:"muted"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:        1024,
		ScreenHeight:       768,
		Gravity:            600.0,
		BallRadius:         6.0,
		MaxBallSpeed:       1200.0,
		MinLineLength:      14.0,
		LineThickness:      4.0,
		LineHoverDist:      8.0,
		EndpointHoverDist:  10.0,
		SpawnerHoverDist:   12.0,
		HoldThresholdMS:    450,
		SprayIntervalMS:    90,
		SpawnIntervalMS:    900,
		MinSpawnIntervalMS: 100,
		MaxSpawnIntervalMS: 5000,
		MaxSpawners:        0,
		HistorySize:        100,
		TrailLength:        10,
		OffscreenMargin:    60.0,
		HandleSize:         10.0,
		MinSelectionSize:   24.0,
	}
}

// LoadConfig reads TOML overrides from the given path on top of the
// defaults. On error the defaults are returned along with the error;
// the caller decides whether that is fatal.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// HoldThreshold returns the hold classification threshold as a
// duration.
func (c Config) HoldThreshold() time.Duration {
	return time.Duration(c.HoldThresholdMS) * time.Millisecond
}

// SprayInterval returns the held-pointer spray interval as a duration.
func (c Config) SprayInterval() time.Duration {
	return time.Duration(c.SprayIntervalMS) * time.Millisecond
}

// physConfig derives the physics world parameters.
func (c Config) physConfig() phys.Config {
	pc := phys.DefaultConfig()
	pc.GravityY = c.Gravity
	return pc
}

// sceneConfig derives the scene manager parameters.
func (c Config) sceneConfig() scene.Config {
	return scene.Config{
		MinLineLength:        c.MinLineLength,
		LineThickness:        c.LineThickness,
		BallRadius:           c.BallRadius,
		MaxBallSpeed:         c.MaxBallSpeed,
		OffscreenMargin:      c.OffscreenMargin,
		MaxSpawners:          c.MaxSpawners,
		MinSpawnInterval:     time.Duration(c.MinSpawnIntervalMS) * time.Millisecond,
		MaxSpawnInterval:     time.Duration(c.MaxSpawnIntervalMS) * time.Millisecond,
		DefaultSpawnInterval: time.Duration(c.SpawnIntervalMS) * time.Millisecond,
		TrailLength:          c.TrailLength,
	}
}
