package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/landing/contacto-api/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, limit, offset int) ([]entity.Lead, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLeadRepository) UpdateEstado(ctx context.Context, id int64, estado entity.Estado) error {
	args := m.Called(ctx, id, estado)
	return args.Error(0)
}

// MockCaptchaVerifier
type MockCaptchaVerifier struct {
	mock.Mock
}

func (m *MockCaptchaVerifier) Verify(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockLeadNotifier
type MockLeadNotifier struct {
	mock.Mock
}

func (m *MockLeadNotifier) NotifyNewLead(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// MockAdminAuthenticator
type MockAdminAuthenticator struct {
	mock.Mock
}

func (m *MockAdminAuthenticator) Authenticate(email, password string) error {
	args := m.Called(email, password)
	return args.Error(0)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(subject string) (string, time.Time, error) {
	args := m.Called(subject)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockRecorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) LeadCreated()                      { m.Called() }
func (m *MockRecorder) CaptchaRejected()                  { m.Called() }
func (m *MockRecorder) NotificationFailed(channel string) { m.Called(channel) }
func (m *MockRecorder) LoginAttempt(result string)        { m.Called(result) }

func boolPtr(b bool) *bool {
	return &b
}
