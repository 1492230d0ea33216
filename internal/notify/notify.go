// Package notify surfaces sync results to the outside world.
package notify

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

//go:generate mockgen -source=notify.go -destination=../mock/notifier_mock.go -package=mock

// Notifier receives the summary of every completed cycle. Delivery failures
// are reported to the caller but never affect the cycle itself.
type Notifier interface {
	NotifySyncResult(ctx context.Context, result models.SyncResult) error
}

// LogNotifier writes each result as a structured log event.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log.WithComponent("notify")}
}

func (n *LogNotifier) NotifySyncResult(_ context.Context, result models.SyncResult) error {
	ev := n.logger.Info()
	if len(result.Failures) > 0 {
		ev = n.logger.Warn().Int("failed_records", len(result.Failures))
	}
	ev.Int("pushed", result.PushedCount).
		Int("pulled", result.PulledCount).
		Int("conflicts_resolved", result.ConflictsResolved).
		Dur("duration", result.Duration()).
		Msg("inventory sync finished")
	return nil
}

// Notifiers fans a result out to several notifiers. Every notifier is called
// even when an earlier one fails; the failures are joined.
type Notifiers []Notifier

func (ns Notifiers) NotifySyncResult(ctx context.Context, result models.SyncResult) error {
	var errs []error
	for _, n := range ns {
		if err := n.NotifySyncResult(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
