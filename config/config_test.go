package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Listing.Width != 30 {
		t.Errorf("Listing.Width = %d, want 30", cfg.Listing.Width)
	}
	if !cfg.Listing.ColorOutput {
		t.Error("Listing.ColorOutput should default true")
	}
	if cfg.Simulator.MaxCycles != 1_000_000 {
		t.Errorf("Simulator.MaxCycles = %d, want 1000000", cfg.Simulator.MaxCycles)
	}
	if !cfg.Include.Enabled {
		t.Error("Include.Enabled should default true")
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v, want nil (missing file falls back to defaults)", err)
	}
	if cfg.Listing.Width != 30 {
		t.Errorf("Listing.Width = %d, want default 30", cfg.Listing.Width)
	}
}

func TestLoadFromParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mnemonic.toml")
	content := "[listing]\nwidth = 40\ncolor_output = false\n\n[simulator]\nmax_cycles = 500\n\n[include]\nenabled = false\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Listing.Width != 40 || cfg.Listing.ColorOutput {
		t.Errorf("Listing = %+v, want {40 false}", cfg.Listing)
	}
	if cfg.Simulator.MaxCycles != 500 {
		t.Errorf("Simulator.MaxCycles = %d, want 500", cfg.Simulator.MaxCycles)
	}
	if cfg.Include.Enabled {
		t.Error("Include.Enabled should be false per the loaded file")
	}
}

func TestSaveToAndLoadFromRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "mnemonic.toml")

	cfg := DefaultConfig()
	cfg.Listing.Width = 50
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Listing.Width != 50 {
		t.Errorf("Listing.Width = %d, want 50 after round trip", loaded.Listing.Width)
	}
}
