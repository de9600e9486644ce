package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/forcefield/pkg/errors"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 800 || cfg.ZoomOnLoad != ZoomFit {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forcefield.toml")
	content := `
width = 1024
zoom_on_load = "center"

[force]
charge_strength = 500.0

[store]
backend = "file"
dir = "/tmp/graphs"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 1024 {
		t.Errorf("width = %v, want 1024", cfg.Width)
	}
	if cfg.Height != 600 {
		t.Errorf("height = %v, want untouched default 600", cfg.Height)
	}
	if cfg.ZoomOnLoad != ZoomCenter {
		t.Errorf("zoom_on_load = %q, want center", cfg.ZoomOnLoad)
	}
	if cfg.Force.ChargeStrength != 500 {
		t.Errorf("charge = %v, want 500", cfg.Force.ChargeStrength)
	}
	if cfg.Store.Backend != "file" || cfg.Store.Dir != "/tmp/graphs" {
		t.Errorf("store = %+v, want file backend", cfg.Store)
	}
}

func TestLoadConfigRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("width = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want invalid-config code", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(*Config) {}, false},
		{"ZoomStepTooSmall", func(c *Config) { c.ZoomStep = 0.9 }, true},
		{"UnknownZoomOnLoad", func(c *Config) { c.ZoomOnLoad = "stretch" }, true},
		{"CustomWithoutTransform", func(c *Config) { c.ZoomOnLoad = ZoomCustom; c.CustomZoom = nil }, true},
		{"UnknownStoreBackend", func(c *Config) { c.Store.Backend = "cassandra" }, true},
		{"EmptyBackendAllowed", func(c *Config) { c.Store.Backend = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizedFillsZeroValues(t *testing.T) {
	cfg := Config{}.normalized()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %vx%v, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.ZoomStep != DefaultZoomStep {
		t.Errorf("zoom_step = %v, want %v", cfg.ZoomStep, DefaultZoomStep)
	}
	if cfg.ZoomOnLoad != ZoomFit {
		t.Errorf("zoom_on_load = %q, want fit", cfg.ZoomOnLoad)
	}
}
