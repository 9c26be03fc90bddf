package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !reflect.DeepEqual(cfg.Windows, []int{50, 100, 250}) {
		t.Errorf("windows: got %v", cfg.Windows)
	}
	if cfg.MinPA != 50 {
		t.Errorf("min_pa: got %d, want 50", cfg.MinPA)
	}
	if cfg.TrendPoints != 20 {
		t.Errorf("trend_points: got %d, want 20", cfg.TrendPoints)
	}
	if cfg.Season != 0 {
		t.Errorf("season should default to auto-detect (0), got %d", cfg.Season)
	}
	if cfg.CachePath == "" || cfg.OutputPath == "" {
		t.Error("paths should have defaults")
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinPA != 50 || cfg.TrendPoints != 20 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "min_pa: 100\nwindows: [25, 75]\noutput_path: out.json\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinPA != 100 {
		t.Errorf("min_pa: got %d, want 100", cfg.MinPA)
	}
	if !reflect.DeepEqual(cfg.Windows, []int{25, 75}) {
		t.Errorf("windows: got %v", cfg.Windows)
	}
	if cfg.OutputPath != "out.json" {
		t.Errorf("output_path: got %q", cfg.OutputPath)
	}
	// Untouched keys keep their defaults.
	if cfg.TrendPoints != 20 {
		t.Errorf("trend_points should keep default, got %d", cfg.TrendPoints)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("min_pa: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MLBMETRICS_MIN_PA", "75")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinPA != 75 {
		t.Errorf("env should override file: got %d, want 75", cfg.MinPA)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative min_pa", "min_pa: -1\n"},
		{"empty windows", "windows: []\n"},
		{"zero window", "windows: [0, 50]\n"},
		{"zero trend points", "trend_points: 0\n"},
	}
	for _, c := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(c.yaml), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}
