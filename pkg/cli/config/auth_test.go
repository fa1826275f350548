package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aletheia/pkg/cli/config"
)

func TestAuth_Validate(t *testing.T) {
	t.Run("no mode configured fails", func(t *testing.T) {
		var cfg config.Auth
		gt.Error(t, cfg.Validate())
	})
}
