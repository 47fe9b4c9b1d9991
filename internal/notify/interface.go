package notify

import "context"

// Notifier posts a run summary somewhere people will see it.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
