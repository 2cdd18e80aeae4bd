package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Company.Name != "TBG ENTERPRISES" {
		t.Errorf("company name = %q", cfg.Company.Name)
	}
	if cfg.Brand.Red != "#C41E3A" || cfg.Brand.Black != "#1A1A1A" {
		t.Errorf("brand palette = %+v", cfg.Brand)
	}
	if cfg.Accounts.Receivable != "Accounts Receivable" || cfg.Accounts.Income != "Services" {
		t.Errorf("accounts = %+v", cfg.Accounts)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg != Default() {
		t.Errorf("empty path did not return defaults: %+v", cfg)
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := `company:
  name: Northside Renovations
accounts:
  income: Construction Income
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Company.Name != "Northside Renovations" {
		t.Errorf("overridden name = %q", cfg.Company.Name)
	}
	if cfg.Accounts.Income != "Construction Income" {
		t.Errorf("overridden income account = %q", cfg.Accounts.Income)
	}

	// Untouched keys keep their defaults.
	if cfg.Company.Phone != Default().Company.Phone {
		t.Errorf("phone lost its default: %q", cfg.Company.Phone)
	}
	if cfg.Brand.Red != "#C41E3A" {
		t.Errorf("brand lost its default: %q", cfg.Brand.Red)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("company: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}
