package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ repository.ColaboradorRepository = (*ColaboradorRepo)(nil)

// ColaboradorRepo implementação de ColaboradorRepository sobre PostgreSQL.
type ColaboradorRepo struct {
	q Querier
}

// NewColaboradorRepository constrói o adaptador. Aceita pool ou tx.
func NewColaboradorRepository(q Querier) *ColaboradorRepo {
	return &ColaboradorRepo{q: q}
}

// Count conta colaboradores; status vazio conta todos.
func (r *ColaboradorRepo) Count(ctx context.Context, status string) (int, error) {
	var n int
	var err error
	if status == "" {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM colaboradores`).Scan(&n)
	} else {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM colaboradores WHERE status = $1`, status).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count colaboradores: %w", err)
	}
	return n, nil
}

func (r *ColaboradorRepo) Create(ctx context.Context, c *entity.Colaborador) error {
	query := `
		INSERT INTO colaboradores (id, nome_completo, email, cargo, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.NomeCompleto, c.Email, c.Cargo, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert colaborador: %w", err)
	}
	return nil
}
