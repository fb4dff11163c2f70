package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

var _ repository.HistoricoDisparoRepository = (*HistoricoDisparoRepo)(nil)

// HistoricoDisparoRepo consultas sobre historico_disparos com joins de
// empresa e colaborador. Usável com pool ou tx.
type HistoricoDisparoRepo struct {
	q Querier
}

// NewHistoricoDisparoRepository constrói o adaptador.
func NewHistoricoDisparoRepository(q Querier) *HistoricoDisparoRepo {
	return &HistoricoDisparoRepo{q: q}
}

const historicoSelect = `
	SELECT h.id, h.empresa_id, h.colaborador_id, h.data_disparo, h.status,
	       COALESCE(h.assunto, ''), COALESCE(h.erro_detalhes, ''), h.emails_cc, h.created_at,
	       e.id, e.nome_completo, e.nome_abreviado, e.email_gestor, e.status,
	       c.id, c.nome_completo, c.email, c.status
	FROM historico_disparos h
	LEFT JOIN empresas      e ON e.id = h.empresa_id
	LEFT JOIN colaboradores c ON c.id = h.colaborador_id`

// SearchQuery monta o SELECT completo para as cláusulas (exposto para testes).
func SearchQuery(clausulas []repository.Clausula) (string, []any, error) {
	where, args, err := whereHistorico(clausulas)
	if err != nil {
		return "", nil, err
	}
	return historicoSelect + where + ` ORDER BY h.data_disparo DESC`, args, nil
}

// Count conta os disparos que satisfazem as cláusulas.
func (r *HistoricoDisparoRepo) Count(ctx context.Context, clausulas []repository.Clausula) (int, error) {
	where, args, err := whereHistorico(clausulas)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM historico_disparos h`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count historico_disparos: %w", err)
	}
	return n, nil
}

// Search devolve os disparos por data_disparo decrescente com os snapshots do join.
func (r *HistoricoDisparoRepo) Search(ctx context.Context, clausulas []repository.Clausula) ([]*entity.HistoricoDisparo, error) {
	query, args, err := SearchQuery(clausulas)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search historico_disparos: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.HistoricoDisparo, 0)
	for rows.Next() {
		h, err := scanHistorico(rows)
		if err != nil {
			return nil, fmt.Errorf("scan historico_disparo: %w", err)
		}
		list = append(list, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search historico_disparos: %w", err)
	}
	return list, nil
}

func scanHistorico(rows pgx.Rows) (*entity.HistoricoDisparo, error) {
	var h entity.HistoricoDisparo
	var (
		empID, empNome, empAbrev, empEmail, empStatus *string
		colID, colNome, colEmail, colStatus           *string
	)
	if err := rows.Scan(
		&h.ID, &h.EmpresaID, &h.ColaboradorID, &h.DataDisparo, &h.Status,
		&h.Assunto, &h.ErroDetalhes, &h.EmailsCC, &h.CreatedAt,
		&empID, &empNome, &empAbrev, &empEmail, &empStatus,
		&colID, &colNome, &colEmail, &colStatus,
	); err != nil {
		return nil, err
	}
	if empID != nil {
		h.Empresa = &entity.Empresa{
			ID:            *empID,
			NomeCompleto:  deref(empNome),
			NomeAbreviado: deref(empAbrev),
			EmailGestor:   deref(empEmail),
			Status:        deref(empStatus),
		}
	}
	if colID != nil {
		h.Colaborador = &entity.Colaborador{
			ID:           *colID,
			NomeCompleto: deref(colNome),
			Email:        deref(colEmail),
			Status:       deref(colStatus),
		}
	}
	return &h, nil
}

// Create insere um disparo.
func (r *HistoricoDisparoRepo) Create(ctx context.Context, d *entity.HistoricoDisparo) error {
	query := `
		INSERT INTO historico_disparos
			(id, empresa_id, colaborador_id, data_disparo, status, assunto, erro_detalhes, emails_cc, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	emails := d.EmailsCC
	if emails == nil {
		emails = []string{}
	}
	_, err := r.q.Exec(ctx, query,
		d.ID, d.EmpresaID, d.ColaboradorID, d.DataDisparo, d.Status,
		d.Assunto, d.ErroDetalhes, emails, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert historico_disparo: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
