package entity

import (
	"context"
	"errors"
)

type Estado string

const (
	EstadoNuevo      Estado = "nuevo"
	EstadoContactado Estado = "contactado"
	EstadoDescartado Estado = "descartado"
)

// ErrLeadNotFound is returned by UpdateEstado when no row matched the id.
var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Correo   string `json:"correo"`
	Mensaje  string `json:"mensaje"`
	Terminos bool   `json:"terminos"`
	Estado   Estado `json:"estado"`
}

// IsTriageTarget reports whether e is a status an admin may move a lead to.
// nuevo is only ever assigned at creation.
func (e Estado) IsTriageTarget() bool {
	return e == EstadoContactado || e == EstadoDescartado
}

type LeadPage struct {
	Leads      []Lead `json:"leads"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context, limit, offset int) ([]Lead, error)
	Count(ctx context.Context) (int, error)
	UpdateEstado(ctx context.Context, id int64, estado Estado) error
}
