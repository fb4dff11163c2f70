package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementação de EmpresaRepository sobre PostgreSQL (pool ou tx).
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository constrói o adaptador de persistência para empresas.
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

const empresaColunas = `id, nome_completo, COALESCE(nome_abreviado, ''), COALESCE(cnpj, ''),
		COALESCE(email_gestor, ''), status, created_at, updated_at`

// Count conta empresas; status vazio conta todas.
func (r *EmpresaRepo) Count(ctx context.Context, status string) (int, error) {
	var n int
	var err error
	if status == "" {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM empresas`).Scan(&n)
	} else {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM empresas WHERE status = $1`, status).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count empresas: %w", err)
	}
	return n, nil
}

// ListByStatus lista empresas do status dado ordenadas por nome.
func (r *EmpresaRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Empresa, error) {
	query := `SELECT ` + empresaColunas + ` FROM empresas WHERE status = $1 ORDER BY nome_completo`
	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Empresa, 0)
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(&e.ID, &e.NomeCompleto, &e.NomeAbreviado, &e.CNPJ,
			&e.EmailGestor, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	return list, nil
}

// GetByID obtém uma empresa por ID; (nil, nil) quando não existe.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	query := `SELECT ` + empresaColunas + ` FROM empresas WHERE id = $1`
	var e entity.Empresa
	err := r.q.QueryRow(ctx, query, id).Scan(&e.ID, &e.NomeCompleto, &e.NomeAbreviado, &e.CNPJ,
		&e.EmailGestor, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// Create persiste uma nova empresa.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (id, nome_completo, nome_abreviado, cnpj, email_gestor, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.NomeCompleto, e.NomeAbreviado, e.CNPJ, e.EmailGestor, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}
