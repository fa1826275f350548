package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the company configuration file",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			registry, err := appCfg.Configure()
			if err != nil {
				color.Red("✗ configuration validation failed")
				return goerr.Wrap(err, "configuration validation failed")
			}

			companies := registry.Companies()
			color.Green("✓ configuration is valid (%d companies)", len(companies))
			for _, company := range companies {
				sla := "no SLA"
				if company.SLADays > 0 {
					sla = fmt.Sprintf("SLA %d days", company.SLADays)
				}
				notify := "no notification channel"
				if company.SlackChannel != "" {
					notify = "notify " + company.SlackChannel
				}
				fmt.Printf("  %s  %s (%s, %s)\n", color.CyanString(company.ID), company.Name, sla, notify)
			}

			return nil
		},
	}
}
