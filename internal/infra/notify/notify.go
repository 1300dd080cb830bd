package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/landing/contacto-api/internal/entity"
)

const DefaultAsyncTimeout = 15 * time.Second

type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead *entity.Lead) error
}

type FailureRecorder interface {
	NotificationFailed(channel string)
}

type Channel struct {
	Name     string
	Notifier LeadNotifier
}

// Fanout delivers to every channel even when an earlier one fails.
type Fanout struct {
	channels []Channel
	metrics  FailureRecorder
}

func NewFanout(metrics FailureRecorder, channels ...Channel) *Fanout {
	return &Fanout{channels: channels, metrics: metrics}
}

func (f *Fanout) Len() int {
	return len(f.channels)
}

func (f *Fanout) NotifyNewLead(ctx context.Context, lead *entity.Lead) error {
	var errs []error
	for _, ch := range f.channels {
		if err := ch.Notifier.NotifyNewLead(ctx, lead); err != nil {
			if f.metrics != nil {
				f.metrics.NotificationFailed(ch.Name)
			}
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Async detaches delivery from the caller. Errors are logged, never returned.
type Async struct {
	next    LeadNotifier
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(next LeadNotifier, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = DefaultAsyncTimeout
	}
	return &Async{next: next, timeout: timeout}
}

func (a *Async) NotifyNewLead(ctx context.Context, lead *entity.Lead) error {
	snapshot := *lead

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if err := a.next.NotifyNewLead(ctx, &snapshot); err != nil {
			slog.Error("staff notification failed", "lead_id", snapshot.ID, "error", err)
			return
		}
		slog.Info("staff notified", "lead_id", snapshot.ID)
	}()

	return nil
}

// Wait blocks until in-flight deliveries finish. Used on shutdown.
func (a *Async) Wait() {
	a.wg.Wait()
}
