package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for authentication configuration
type Auth struct {
	tokenSecret   string
	noAuthCompany string
}

// Flags returns CLI flags for authentication configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "HMAC secret for verifying bearer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("ALETHEIA_TOKEN_SECRET"),
			Destination: &a.tokenSecret,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and act for the given company ID (development only). Example: --no-auth=acme",
			Category:    "Authentication",
			Sources:     cli.EnvVars("ALETHEIA_NO_AUTH"),
			Destination: &a.noAuthCompany,
		},
	}
}

// Validate checks that exactly one authentication mode is configured
func (a *Auth) Validate() error {
	if a.tokenSecret == "" && a.noAuthCompany == "" {
		return goerr.New("either token-secret or no-auth must be configured")
	}
	if a.tokenSecret != "" && a.noAuthCompany != "" {
		return goerr.New("token-secret and no-auth are mutually exclusive")
	}
	return nil
}

// TokenSecret returns the configured HMAC secret
func (a *Auth) TokenSecret() string {
	return a.tokenSecret
}

// IsNoAuthMode reports whether the development bypass is active
func (a *Auth) IsNoAuthMode() bool {
	return a.noAuthCompany != ""
}

// NoAuthCompany returns the company ID used in no-auth mode
func (a *Auth) NoAuthCompany() string {
	return a.noAuthCompany
}
