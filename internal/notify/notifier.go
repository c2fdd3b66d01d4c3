package notify

import (
	"context"

	"lolbin-monitor/internal/model"
)

// Notifier is the minimal interface all alert outputs must implement.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, a model.Alert) error
}
