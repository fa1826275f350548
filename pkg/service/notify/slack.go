package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aletheia/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Slack posts case notifications to a compliance channel. The message
// deliberately carries only the protocol code and risk level: report
// details and submitter identity never leave the system.
type Slack struct {
	client   *slack.Client
	channel  string
	resolver func(companyID string) string
}

var _ Service = &Slack{}

type SlackOption func(*Slack)

// WithChannelResolver routes notifications per company. An empty
// result falls back to the default channel.
func WithChannelResolver(f func(companyID string) string) SlackOption {
	return func(s *Slack) {
		s.resolver = f
	}
}

func NewSlack(token, channel string, opts ...SlackOption) *Slack {
	s := &Slack{
		client:  slack.New(token),
		channel: channel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Slack) channelFor(companyID string) string {
	if s.resolver != nil {
		if ch := s.resolver(companyID); ch != "" {
			return ch
		}
	}
	return s.channel
}

func (s *Slack) ReportCreated(ctx context.Context, report *model.Report) error {
	channel := s.channelFor(report.CompanyID)
	msg := fmt.Sprintf("New report received: %s (risk level: %s)", report.Protocol, report.Level)

	_, _, err := s.client.PostMessageContext(ctx, channel,
		slack.MsgOptionText(msg, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post report notification",
			goerr.V("channel", channel),
			goerr.V("protocol", report.Protocol))
	}

	return nil
}
