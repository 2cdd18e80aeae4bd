// Package config carries the process-wide constants that are configuration
// rather than quote data: the contractor's identity block, the fixed brand
// palette, and the ledger account names the IIF export posts against. The
// Config value is passed explicitly into the renderer and exporters so tests
// and multiple tenants can override it per call.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Company is the contractor block printed at the top of every page.
type Company struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
}

// Brand is the fixed palette used across the PDF and Excel artifacts,
// as #RRGGBB hex strings.
type Brand struct {
	Red       string `yaml:"red"`
	Black     string `yaml:"black"`
	Gray      string `yaml:"gray"`
	LightGray string `yaml:"light_gray"`
}

// Accounts names the ledger accounts referenced by the desktop import file.
// The importer matches them by exact name against the company file.
type Accounts struct {
	Receivable string `yaml:"receivable"`
	Income     string `yaml:"income"`
}

type Config struct {
	Company  Company  `yaml:"company"`
	Brand    Brand    `yaml:"brand"`
	Accounts Accounts `yaml:"accounts"`
}

// Default returns the TBG Enterprises configuration the app ships with.
func Default() Config {
	return Config{
		Company: Company{
			Name:    "TBG ENTERPRISES",
			Tagline: "Home Renovation",
			Address: "4351 Latimer Cr, Burlington ON L7M 4R3",
			Phone:   "(416) 271-4341",
			Email:   "Ted@TBGEnterprises.com",
		},
		Brand: Brand{
			Red:       "#C41E3A",
			Black:     "#1A1A1A",
			Gray:      "#4A4A4A",
			LightGray: "#F5F5F5",
		},
		Accounts: Accounts{
			Receivable: "Accounts Receivable",
			Income:     "Services",
		},
	}
}

// Load reads a YAML overlay on top of Default. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
