package engine

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/force"
	"github.com/matzehuels/forcefield/pkg/view"
)

// ZoomOnLoad selects the initial view placement after new data arrives.
type ZoomOnLoad string

const (
	// ZoomFit fits the layout bounds into the viewport.
	ZoomFit ZoomOnLoad = "fit"
	// ZoomCenter centers the layout at the current scale.
	ZoomCenter ZoomOnLoad = "center"
	// ZoomCustom applies the transform from Config.CustomZoom.
	ZoomCustom ZoomOnLoad = "custom"
	// ZoomNone leaves the view untouched.
	ZoomNone ZoomOnLoad = "none"
)

// Default view tuning.
const (
	DefaultZoomStep   = 1.2
	DefaultFitPadding = 40.0
)

// Config collects every tunable of the engine: solver parameters, zoom
// limits, the zoom-on-load policy, and store endpoints for the CLI.
// Zero values fall back to defaults.
type Config struct {
	// Force holds the solver parameters.
	Force force.Params `toml:"force" json:"force"`

	// Width and Height are the logical layout bounds the centering force
	// pulls toward.
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`

	// Zoom limits and behavior.
	MinZoom    float64    `toml:"min_zoom" json:"minZoom"`
	MaxZoom    float64    `toml:"max_zoom" json:"maxZoom"`
	MaxFitZoom float64    `toml:"max_fit_zoom" json:"maxFitZoom"`
	ZoomStep   float64    `toml:"zoom_step" json:"zoomStep"`
	FitPadding float64    `toml:"fit_padding" json:"fitPadding"`
	ZoomOnLoad ZoomOnLoad `toml:"zoom_on_load" json:"zoomOnLoad"`

	// CustomZoom is the transform applied when ZoomOnLoad is "custom".
	CustomZoom *view.Transform `toml:"custom_zoom" json:"customZoom,omitempty"`

	// KeepPinned leaves dragged nodes fixed after release.
	KeepPinned bool `toml:"keep_pinned" json:"keepPinned"`

	// Store configures the graph store backends used by the CLI.
	Store StoreConfig `toml:"store" json:"store"`
}

// StoreConfig holds endpoints for the pluggable graph stores.
type StoreConfig struct {
	// Backend selects the store: "memory", "file", "redis", or "mongo".
	Backend string `toml:"backend" json:"backend"`

	// Dir is the root directory of the file store.
	Dir string `toml:"dir" json:"dir"`

	// RedisAddr is the host:port of the Redis store.
	RedisAddr string `toml:"redis_addr" json:"redisAddr"`

	// MongoURI and MongoDatabase locate the MongoDB store.
	MongoURI      string `toml:"mongo_uri" json:"mongoUri"`
	MongoDatabase string `toml:"mongo_database" json:"mongoDatabase"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Force:      force.Params{},
		Width:      800,
		Height:     600,
		MinZoom:    view.DefaultMinZoom,
		MaxZoom:    view.DefaultMaxZoom,
		MaxFitZoom: view.DefaultMaxFitZoom,
		ZoomStep:   DefaultZoomStep,
		FitPadding: DefaultFitPadding,
		ZoomOnLoad: ZoomFit,
		Store: StoreConfig{
			Backend: "memory",
			Dir:     ".forcefield",
		},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file is not an error; an unparseable one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations no fallback can repair.
func (c Config) Validate() error {
	if c.MinZoom < 0 || c.MaxZoom < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "zoom limits must be positive")
	}
	if c.ZoomStep != 0 && c.ZoomStep <= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "zoom_step must be greater than 1, got %g", c.ZoomStep)
	}
	switch c.ZoomOnLoad {
	case "", ZoomFit, ZoomCenter, ZoomCustom, ZoomNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown zoom_on_load %q", c.ZoomOnLoad)
	}
	if c.ZoomOnLoad == ZoomCustom && c.CustomZoom == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "zoom_on_load is custom but no custom_zoom set")
	}
	switch c.Store.Backend {
	case "", "memory", "file", "redis", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// normalized resolves zero values to defaults.
func (c Config) normalized() Config {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.ZoomStep <= 1 {
		c.ZoomStep = DefaultZoomStep
	}
	if c.FitPadding < 0 {
		c.FitPadding = DefaultFitPadding
	}
	if c.MaxFitZoom <= 0 {
		c.MaxFitZoom = view.DefaultMaxFitZoom
	}
	if c.ZoomOnLoad == "" {
		c.ZoomOnLoad = ZoomFit
	}
	return c
}
