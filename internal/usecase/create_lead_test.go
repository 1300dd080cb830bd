package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/landing/contacto-api/internal/entity"
	"github.com/landing/contacto-api/internal/usecase"
)

func validContactInput() usecase.ContactInput {
	return usecase.ContactInput{
		RecaptchaToken: "tok",
		Nombre:         "Ana Lopez",
		Telefono:       "555-1234",
		Correo:         "a@b.com",
		Mensaje:        "Hola, quiero info",
		Terminos:       boolPtr(true),
	}
}

// TestCreateLeadSuccess - submission with a passing captcha stores one lead as nuevo
func TestCreateLeadSuccess(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	captcha := new(MockCaptchaVerifier)
	notifier := new(MockLeadNotifier)

	captcha.On("Verify", mock.Anything, "tok").Return(true, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Nombre == "Ana Lopez" &&
			l.Telefono == "555-1234" &&
			l.Correo == "a@b.com" &&
			l.Mensaje == "Hola, quiero info" &&
			l.Terminos &&
			l.Estado == entity.EstadoNuevo
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Lead).ID = 42
	}).Return(nil).Once()
	notifier.On("NotifyNewLead", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.ID == 42
	})).Return(nil)

	uc := usecase.NewCreateLeadUseCase(repo, captcha, notifier, nil)
	out, err := uc.Execute(ctx, validContactInput())

	require.NoError(t, err)
	assert.Equal(t, "Formulario guardado con éxito", out.Mensaje)
	repo.AssertNumberOfCalls(t, "Create", 1)
	repo.AssertExpectations(t)
	captcha.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

// TestCreateLeadTrimsFields - stored values equal submitted values after trimming
func TestCreateLeadTrimsFields(t *testing.T) {
	repo := new(MockLeadRepository)
	captcha := new(MockCaptchaVerifier)

	captcha.On("Verify", mock.Anything, "tok").Return(true, nil)
	var stored *entity.Lead
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*entity.Lead)
	}).Return(nil)

	input := validContactInput()
	input.Nombre = "  Ana Lopez  "
	input.Telefono = " 555-1234 "
	input.Mensaje = "\tHola, quiero info\n"

	uc := usecase.NewCreateLeadUseCase(repo, captcha, nil, nil)
	_, err := uc.Execute(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Ana Lopez", stored.Nombre)
	assert.Equal(t, "555-1234", stored.Telefono)
	assert.Equal(t, "Hola, quiero info", stored.Mensaje)
}

// TestCreateLeadMissingFields - any missing field is rejected before captcha and storage
func TestCreateLeadMissingFields(t *testing.T) {
	cases := map[string]func(*usecase.ContactInput){
		"recaptchaToken": func(in *usecase.ContactInput) { in.RecaptchaToken = "" },
		"nombre":         func(in *usecase.ContactInput) { in.Nombre = "" },
		"telefono":       func(in *usecase.ContactInput) { in.Telefono = "" },
		"correo":         func(in *usecase.ContactInput) { in.Correo = "" },
		"mensaje":        func(in *usecase.ContactInput) { in.Mensaje = "" },
		"terminos":       func(in *usecase.ContactInput) { in.Terminos = nil },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			repo := new(MockLeadRepository)
			captcha := new(MockCaptchaVerifier)
			notifier := new(MockLeadNotifier)

			input := validContactInput()
			mutate(&input)

			uc := usecase.NewCreateLeadUseCase(repo, captcha, notifier, nil)
			out, err := uc.Execute(context.Background(), input)

			assert.Nil(t, out)
			var domainErr *usecase.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, usecase.CodeValidation, domainErr.Code)
			assert.Equal(t, `"`+field+`" is required`, domainErr.Message)

			captcha.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			notifier.AssertNotCalled(t, "NotifyNewLead", mock.Anything, mock.Anything)
		})
	}
}

// TestCreateLeadCaptchaRejected - a failed or unreachable captcha never stores the lead
func TestCreateLeadCaptchaRejected(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
		err  error
	}{
		{"verification false", false, nil},
		{"transport error", false, errors.New("dial tcp: timeout")},
		{"error with ok true", true, errors.New("decode failure")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockLeadRepository)
			captcha := new(MockCaptchaVerifier)
			recorder := new(MockRecorder)

			captcha.On("Verify", mock.Anything, "tok").Return(tc.ok, tc.err)
			recorder.On("CaptchaRejected").Once()

			uc := usecase.NewCreateLeadUseCase(repo, captcha, nil, recorder)
			_, err := uc.Execute(context.Background(), validContactInput())

			var domainErr *usecase.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, usecase.CodeCaptchaFailed, domainErr.Code)
			assert.Equal(t, "reCAPTCHA falló. Intenta nuevamente.", domainErr.Message)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			recorder.AssertExpectations(t)
		})
	}
}

// TestCreateLeadRepositoryError - a store failure is a technical error and skips notification
func TestCreateLeadRepositoryError(t *testing.T) {
	repo := new(MockLeadRepository)
	captcha := new(MockCaptchaVerifier)
	notifier := new(MockLeadNotifier)

	captcha.On("Verify", mock.Anything, "tok").Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	uc := usecase.NewCreateLeadUseCase(repo, captcha, notifier, nil)
	_, err := uc.Execute(context.Background(), validContactInput())

	assert.True(t, usecase.IsTechnicalError(err))
	assert.False(t, usecase.IsDomainError(err))
	notifier.AssertNotCalled(t, "NotifyNewLead", mock.Anything, mock.Anything)
}

// TestCreateLeadNotifierFailureDoesNotFailRequest - a stored lead is acknowledged even if staff alert fails
func TestCreateLeadNotifierFailureDoesNotFailRequest(t *testing.T) {
	repo := new(MockLeadRepository)
	captcha := new(MockCaptchaVerifier)
	notifier := new(MockLeadNotifier)
	recorder := new(MockRecorder)

	captcha.On("Verify", mock.Anything, "tok").Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyNewLead", mock.Anything, mock.Anything).Return(errors.New("email api down"))
	recorder.On("LeadCreated").Once()
	recorder.On("NotificationFailed", "dispatch").Once()

	uc := usecase.NewCreateLeadUseCase(repo, captcha, notifier, recorder)
	out, err := uc.Execute(context.Background(), validContactInput())

	require.NoError(t, err)
	assert.Equal(t, "Formulario guardado con éxito", out.Mensaje)
	repo.AssertNumberOfCalls(t, "Create", 1)
	recorder.AssertExpectations(t)
}
