// Package config loads sunpath settings from an optional YAML file, an
// optional .env file and environment overrides, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/sunpath"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "sunpath.yaml"

// Config holds all sunpath configuration.
type Config struct {
	// Site is the default survey location.
	Site SiteConfig `yaml:"site"`

	// Sites are named presets selectable with --site.
	Sites map[string]SiteConfig `yaml:"sites"`

	Trajectory TrajectoryConfig `yaml:"trajectory"`
	Compass    CompassConfig    `yaml:"compass"`
	Location   LocationConfig   `yaml:"location"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SiteConfig is a surveyed location.
type SiteConfig struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone"` // IANA name, e.g. America/Mexico_City
}

// TrajectoryConfig configures the day-path sampler.
type TrajectoryConfig struct {
	Steps int `yaml:"steps"`
}

// CompassConfig configures the compass diagram.
type CompassConfig struct {
	Size         int     `yaml:"size"`          // SVG width and height in px
	Radius       float64 `yaml:"radius"`        // horizon circle radius in px
	BelowHorizon string  `yaml:"below_horizon"` // clamp or extend
}

// LocationConfig configures location acquisition.
type LocationConfig struct {
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Timezone: "Local",
		},
		Sites: map[string]SiteConfig{},
		Trajectory: TrajectoryConfig{
			Steps: 24,
		},
		Compass: CompassConfig{
			Size:         400,
			Radius:       180,
			BelowHorizon: "clamp",
		},
		Location: LocationConfig{
			Timeout: "10s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration. A missing file at path is not an error; the
// defaults plus environment overrides are used instead. A .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies SUNPATH_* and LOG_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SUNPATH_LAT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SUNPATH_LAT %q: %w", v, err)
		}
		c.Site.Latitude = f
	}
	if v := os.Getenv("SUNPATH_LON"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SUNPATH_LON %q: %w", v, err)
		}
		c.Site.Longitude = f
	}
	if v := os.Getenv("SUNPATH_TZ"); v != "" {
		c.Site.Timezone = v
	}
	if v := os.Getenv("SUNPATH_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SUNPATH_STEPS %q: %w", v, err)
		}
		c.Trajectory.Steps = n
	}
	if v := os.Getenv("SUNPATH_LOCATION_TIMEOUT"); v != "" {
		c.Location.Timeout = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := c.Site.Coordinate().Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if _, err := c.Site.Zone(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	for name, s := range c.Sites {
		if err := s.Coordinate().Validate(); err != nil {
			return fmt.Errorf("sites.%s: %w", name, err)
		}
		if _, err := s.Zone(); err != nil {
			return fmt.Errorf("sites.%s: %w", name, err)
		}
	}
	if c.Trajectory.Steps < 0 {
		return fmt.Errorf("trajectory.steps must not be negative, got %d", c.Trajectory.Steps)
	}
	if c.Compass.Size <= 0 {
		return fmt.Errorf("compass.size must be positive, got %d", c.Compass.Size)
	}
	if c.Compass.Radius <= 0 || c.Compass.Radius*2 > float64(c.Compass.Size) {
		return fmt.Errorf("compass.radius must be in (0, size/2], got %v", c.Compass.Radius)
	}
	if _, err := c.Compass.Policy(); err != nil {
		return err
	}
	if _, err := c.LocationTimeout(); err != nil {
		return err
	}
	return nil
}

// Coordinate returns the site as an engine coordinate.
func (s SiteConfig) Coordinate() sunpath.GeoCoordinate {
	return sunpath.GeoCoordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Zone resolves the site's time zone. Empty or "Local" means the host zone.
func (s SiteConfig) Zone() (*time.Location, error) {
	if s.Timezone == "" || strings.EqualFold(s.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// LookupSite returns the named preset, or the default site for "".
func (c *Config) LookupSite(name string) (SiteConfig, error) {
	if name == "" {
		return c.Site, nil
	}
	s, ok := c.Sites[name]
	if !ok {
		return SiteConfig{}, fmt.Errorf("unknown site %q", name)
	}
	if s.Name == "" {
		s.Name = name
	}
	return s, nil
}

// Policy maps below_horizon onto the projector option.
func (c CompassConfig) Policy() (sunpath.BelowHorizon, error) {
	switch strings.ToLower(c.BelowHorizon) {
	case "", "clamp":
		return sunpath.ClampToRim, nil
	case "extend":
		return sunpath.ExtendBeyondRim, nil
	default:
		return 0, fmt.Errorf("compass.below_horizon must be clamp or extend, got %q", c.BelowHorizon)
	}
}

// LocationTimeout parses location.timeout.
func (c *Config) LocationTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Location.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid location.timeout %q: %w", c.Location.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("location.timeout must not be negative, got %s", d)
	}
	return d, nil
}
