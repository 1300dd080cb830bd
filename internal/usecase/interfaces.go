package usecase

import (
	"context"
	"time"

	"github.com/landing/contacto-api/internal/entity"
)

type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// LeadNotifier alerts staff about a freshly stored lead.
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead *entity.Lead) error
}

type AdminAuthenticator interface {
	Authenticate(email, password string) error
}

type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

// Recorder receives business counters. Implemented by the metrics middleware.
type Recorder interface {
	LeadCreated()
	CaptchaRejected()
	NotificationFailed(channel string)
	LoginAttempt(result string)
}

type noopRecorder struct{}

func (noopRecorder) LeadCreated()              {}
func (noopRecorder) CaptchaRejected()          {}
func (noopRecorder) NotificationFailed(string) {}
func (noopRecorder) LoginAttempt(string)       {}
