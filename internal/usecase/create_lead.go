package usecase

import (
	"context"
	"log/slog"

	"github.com/landing/contacto-api/internal/entity"
)

const (
	msgLeadSaved     = "Formulario guardado con éxito"
	msgCaptchaFailed = "reCAPTCHA falló. Intenta nuevamente."
)

type CreateLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Captcha  CaptchaVerifier
	Notifier LeadNotifier
	Metrics  Recorder
}

func NewCreateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	captcha CaptchaVerifier,
	notifier LeadNotifier,
	metrics Recorder,
) *CreateLeadUseCase {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &CreateLeadUseCase{
		Repo:     repo,
		Captcha:  captcha,
		Notifier: notifier,
		Metrics:  metrics,
	}
}

// Execute stores a contact submission as a new lead. Notification runs after
// the row is committed and its failure never fails the request.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input ContactInput) (*CreateLeadOutput, error) {
	input, err := ValidateContactInput(input)
	if err != nil {
		return nil, err
	}

	ok, err := uc.Captcha.Verify(ctx, input.RecaptchaToken)
	if err != nil {
		slog.Warn("captcha verification failed", "error", err)
	}
	if err != nil || !ok {
		uc.Metrics.CaptchaRejected()
		return nil, &DomainError{Code: CodeCaptchaFailed, Message: msgCaptchaFailed}
	}

	lead := &entity.Lead{
		Nombre:   input.Nombre,
		Telefono: input.Telefono,
		Correo:   input.Correo,
		Mensaje:  input.Mensaje,
		Terminos: *input.Terminos,
		Estado:   entity.EstadoNuevo,
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, newServerError(CodeDatabase, err)
	}
	uc.Metrics.LeadCreated()
	slog.Info("lead stored", "lead_id", lead.ID)

	if uc.Notifier != nil {
		if err := uc.Notifier.NotifyNewLead(ctx, lead); err != nil {
			uc.Metrics.NotificationFailed("dispatch")
			slog.Error("lead stored but staff notification failed", "lead_id", lead.ID, "error", err)
		}
	}

	return &CreateLeadOutput{Mensaje: msgLeadSaved}, nil
}
