package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/landing/contacto-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO contactos (nombre, telefono, correo, mensaje, terminos, estado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.Nombre,
		lead.Telefono,
		lead.Correo,
		lead.Mensaje,
		lead.Terminos,
		string(lead.Estado),
	).Scan(&lead.ID)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// List returns one page ordered newest first.
func (r *LeadRepository) List(ctx context.Context, limit, offset int) ([]entity.Lead, error) {
	query := `
		SELECT id, nombre, telefono, correo, mensaje, terminos, estado
		FROM contactos
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0, limit)
	for rows.Next() {
		var l entity.Lead
		var estado string
		if err := rows.Scan(&l.ID, &l.Nombre, &l.Telefono, &l.Correo, &l.Mensaje, &l.Terminos, &estado); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.Estado = entity.Estado(estado)
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contactos`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return total, nil
}

func (r *LeadRepository) UpdateEstado(ctx context.Context, id int64, estado entity.Estado) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE contactos SET estado = $1 WHERE id = $2`, string(estado), id)
	if err != nil {
		return fmt.Errorf("update lead estado: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lead estado: %w", err)
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}
