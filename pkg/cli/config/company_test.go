package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aletheia/pkg/cli/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()
	return path
}

func TestAppConfig_Load(t *testing.T) {
	t.Run("valid config builds a registry", func(t *testing.T) {
		path := writeConfig(t, `
[[company]]
id = "acme"
name = "ACME Corp"
sla_days = 30
slack_channel = "#compliance-acme"

[[company]]
id = "globex"
name = "Globex"
`)

		var cfg config.AppConfig
		gt.NoError(t, cfg.Load(path)).Required()
		gt.A(t, cfg.Companies).Length(2)
		gt.S(t, cfg.Companies[0].ID).Equal("acme")
		gt.N(t, cfg.Companies[0].SLADays).Equal(30)
		gt.S(t, cfg.Companies[0].SlackChannel).Equal("#compliance-acme")
		gt.N(t, cfg.Companies[1].SLADays).Equal(0)
	})

	t.Run("missing id fails", func(t *testing.T) {
		path := writeConfig(t, `
[[company]]
name = "No ID Inc"
`)

		var cfg config.AppConfig
		gt.Error(t, cfg.Load(path))
	})

	t.Run("missing name fails", func(t *testing.T) {
		path := writeConfig(t, `
[[company]]
id = "acme"
`)

		var cfg config.AppConfig
		gt.Error(t, cfg.Load(path))
	})

	t.Run("duplicate ids fail", func(t *testing.T) {
		path := writeConfig(t, `
[[company]]
id = "acme"
name = "ACME Corp"

[[company]]
id = "acme"
name = "ACME Again"
`)

		var cfg config.AppConfig
		gt.Error(t, cfg.Load(path))
	})

	t.Run("negative sla fails", func(t *testing.T) {
		path := writeConfig(t, `
[[company]]
id = "acme"
name = "ACME Corp"
sla_days = -5
`)

		var cfg config.AppConfig
		gt.Error(t, cfg.Load(path))
	})

	t.Run("empty config fails", func(t *testing.T) {
		path := writeConfig(t, "")

		var cfg config.AppConfig
		gt.Error(t, cfg.Load(path))
	})

	t.Run("unreadable path fails", func(t *testing.T) {
		var cfg config.AppConfig
		gt.Error(t, cfg.Load(filepath.Join(t.TempDir(), "missing.toml")))
	})

	t.Run("broken TOML fails", func(t *testing.T) {
		path := writeConfig(t, "[[company")

		var cfg config.AppConfig
		gt.Error(t, cfg.Load(path))
	})
}
