package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration: the set of
// companies served by this deployment.
type AppConfig struct {
	path      string
	Companies []Company `toml:"company"`
}

// Company represents a company configuration entry
type Company struct {
	ID           string `toml:"id"`
	Name         string `toml:"name"`
	SLADays      int    `toml:"sla_days"`
	SlackChannel string `toml:"slack_channel"`
}

// Validate checks if the Company entry is valid
func (c *Company) Validate() error {
	if c.ID == "" {
		return goerr.New("company id is required")
	}
	if c.Name == "" {
		return goerr.New("company name is required", goerr.V("id", c.ID))
	}
	if c.SLADays < 0 {
		return goerr.New("company sla_days must not be negative", goerr.V("id", c.ID), goerr.V("sla_days", c.SLADays))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if len(a.Companies) == 0 {
		return goerr.New("at least one company must be configured")
	}

	ids := make(map[string]bool)
	for _, company := range a.Companies {
		if err := company.Validate(); err != nil {
			return goerr.Wrap(err, "invalid company")
		}
		if ids[company.ID] {
			return goerr.New("duplicate company ID", goerr.V("id", company.ID))
		}
		ids[company.ID] = true
	}

	return nil
}

// Flags returns CLI flags for application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to company configuration file (TOML)",
			Required:    true,
			Sources:     cli.EnvVars("ALETHEIA_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads, validates and converts the configuration into a
// company registry.
func (a *AppConfig) Configure() (*model.CompanyRegistry, error) {
	if err := a.Load(a.path); err != nil {
		return nil, err
	}

	registry := model.NewCompanyRegistry()
	for _, company := range a.Companies {
		registry.Register(&model.Company{
			ID:           company.ID,
			Name:         company.Name,
			SLADays:      company.SLADays,
			SlackChannel: company.SlackChannel,
		})
	}
	return registry, nil
}

// Load reads and validates the configuration from a TOML file
func (a *AppConfig) Load(path string) error {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, a); err != nil {
		return goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := a.Validate(); err != nil {
		return goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return nil
}
