package config

import (
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/secmon-lab/aletheia/pkg/service/notify"
	"github.com/secmon-lab/aletheia/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Notify holds CLI flags for Slack notification configuration
type Notify struct {
	slackToken   string
	slackChannel string
}

// Flags returns CLI flags for notification configuration
func (n *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for case notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("ALETHEIA_SLACK_OAUTH_TOKEN"),
			Destination: &n.slackToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Default Slack channel for case notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("ALETHEIA_SLACK_CHANNEL"),
			Destination: &n.slackChannel,
		},
	}
}

// IsConfigured reports whether Slack notification is enabled
func (n *Notify) IsConfigured() bool {
	return n.slackToken != ""
}

// Configure builds the Slack notifier. Per-company channels from the
// registry take precedence over the default channel.
func (n *Notify) Configure(registry *model.CompanyRegistry) notify.Service {
	if !n.IsConfigured() {
		logging.Default().Info("Slack token not configured, notifications disabled")
		return nil
	}

	svc := notify.NewSlack(n.slackToken, n.slackChannel,
		notify.WithChannelResolver(func(companyID string) string {
			company, err := registry.Get(companyID)
			if err != nil {
				return ""
			}
			return company.SlackChannel
		}),
	)
	logging.Default().Info("Slack notification enabled", "default_channel", n.slackChannel)
	return svc
}
