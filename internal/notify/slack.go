package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// slackPoster is the subset of *slack.Client the notifier needs.
type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts messages to a Slack channel with a bot token.
type SlackNotifier struct {
	client  slackPoster
	channel string
}

// NewSlackNotifier creates a SlackNotifier. Extra options are passed to the
// Slack client, e.g. slack.OptionAPIURL in tests.
func NewSlackNotifier(token, channel string, opts ...slack.Option) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(token, opts...),
		channel: channel,
	}
}

// Notify sends message to the configured channel.
func (s *SlackNotifier) Notify(ctx context.Context, message string) error {
	if s.channel == "" {
		return fmt.Errorf("slack channel is not configured")
	}

	_, _, err := s.client.PostMessageContext(ctx, s.channel, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	return nil
}
