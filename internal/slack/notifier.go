package slack

import "context"

// Notifier publishes messages to the HR notification channel, e.g.
// when a new department feedback arrives. The abstraction allows
// swapping the mock for a real Slack integration without refactoring.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}
