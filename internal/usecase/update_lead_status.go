package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/landing/contacto-api/internal/entity"
)

const msgEstadoUpdated = "Estado actualizado"

type UpdateLeadStatusUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewUpdateLeadStatusUseCase(repo entity.LeadRepositoryInterface) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{Repo: repo}
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, input UpdateLeadStatusInput) (*UpdateLeadStatusOutput, error) {
	estado := entity.Estado(input.Estado)
	if !estado.IsTriageTarget() {
		return nil, &DomainError{Code: CodeInvalidEstado, Message: "Estado inválido"}
	}

	id, err := strconv.ParseInt(input.ID, 10, 64)
	if err != nil || id < 1 {
		return nil, &DomainError{Code: CodeInvalidID, Message: "ID inválido"}
	}

	if err := uc.Repo.UpdateEstado(ctx, id, estado); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: CodeLeadNotFound, Message: "Lead no encontrado"}
		}
		return nil, newServerError(CodeDatabase, err)
	}

	return &UpdateLeadStatusOutput{Mensaje: msgEstadoUpdated}, nil
}
