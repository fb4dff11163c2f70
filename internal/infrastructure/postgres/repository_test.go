package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
	"github.com/jhoicas/painel-books-api/internal/infrastructure/postgres"
)

func ptr[T any](v T) *T { return &v }

func novoMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresaRepo_Count(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewEmpresaRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM empresas WHERE status = $1`)).
		WithArgs(entity.StatusAtivo).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM empresas`)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(9))

	n, err := repo.Count(context.Background(), entity.StatusAtivo)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = repo.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmpresaRepo_ListByStatus(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewEmpresaRepository(mock)
	criado := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)

	cols := []string{"id", "nome_completo", "nome_abreviado", "cnpj", "email_gestor", "status", "created_at", "updated_at"}
	mock.ExpectQuery(`FROM empresas WHERE status = \$1 ORDER BY nome_completo`).
		WithArgs(entity.StatusAtivo).
		WillReturnRows(mock.NewRows(cols).
			AddRow("emp-1", "Alfa Ltda", "Alfa", "11222333000181", "g@alfa.com", entity.StatusAtivo, criado, criado).
			AddRow("emp-2", "Beta S.A.", "", "", "", entity.StatusAtivo, criado, criado))

	list, err := repo.ListByStatus(context.Background(), entity.StatusAtivo)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa Ltda", list[0].NomeCompleto)
	assert.Equal(t, "g@alfa.com", list[0].EmailGestor)
	assert.True(t, list[1].Ativa())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmpresaRepo_GetByID_NaoEncontrada(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewEmpresaRepository(mock)

	cols := []string{"id", "nome_completo", "nome_abreviado", "cnpj", "email_gestor", "status", "created_at", "updated_at"}
	mock.ExpectQuery(`FROM empresas WHERE id = \$1`).
		WithArgs("nao-existe").
		WillReturnRows(mock.NewRows(cols))

	e, err := repo.GetByID(context.Background(), "nao-existe")
	require.NoError(t, err)
	assert.Nil(t, e)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmpresaRepo_Create_Duplicada(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewEmpresaRepository(mock)
	agora := time.Now()
	e := &entity.Empresa{ID: "emp-1", NomeCompleto: "Alfa", Status: entity.StatusAtivo, CreatedAt: agora, UpdatedAt: agora}

	mock.ExpectExec(`INSERT INTO empresas`).
		WithArgs(e.ID, e.NomeCompleto, e.NomeAbreviado, e.CNPJ, e.EmailGestor, e.Status, e.CreatedAt, e.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), e)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// Histórico de disparos
// ──────────────────────────────────────────────────────────────────────────────

var colunasHistorico = []string{
	"id", "empresa_id", "colaborador_id", "data_disparo", "status", "assunto", "erro_detalhes", "emails_cc", "created_at",
	"e_id", "e_nome", "e_abrev", "e_email", "e_status",
	"c_id", "c_nome", "c_email", "c_status",
}

func TestHistoricoRepo_Count(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewHistoricoDisparoRepository(mock)
	inicio := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM historico_disparos h WHERE h.status = $1 AND h.data_disparo >= $2`)).
		WithArgs(entity.DisparoEnviado, inicio).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(42))

	n, err := repo.Count(context.Background(), []repository.Clausula{
		repository.Eq(repository.CampoStatus, entity.DisparoEnviado),
		repository.Gte(repository.CampoDataDisparo, inicio),
	})
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoricoRepo_Search_Joins(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewHistoricoDisparoRepository(mock)
	quando := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM historico_disparos h .* WHERE h\.empresa_id = ANY\(\$1\) ORDER BY h\.data_disparo DESC`).
		WithArgs([]string{"emp-1"}).
		WillReturnRows(mock.NewRows(colunasHistorico).
			AddRow("d-1", "emp-1", ptr("col-1"), quando, entity.DisparoFalhou, "Book", "550", []string{"cc@x.com"}, quando,
				ptr("emp-1"), ptr("Alfa Ltda"), ptr("Alfa"), ptr("g@alfa.com"), ptr(entity.StatusAtivo),
				ptr("col-1"), ptr("Ana"), ptr("ana@alfa.com"), ptr(entity.StatusAtivo)).
			AddRow("d-2", "emp-1", nil, quando.Add(-time.Hour), entity.DisparoEnviado, "", "", []string{}, quando,
				ptr("emp-1"), ptr("Alfa Ltda"), ptr("Alfa"), ptr("g@alfa.com"), ptr(entity.StatusAtivo),
				nil, nil, nil, nil))

	list, err := repo.Search(context.Background(), []repository.Clausula{
		repository.In(repository.CampoEmpresaID, []string{"emp-1"}),
	})
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.True(t, list[0].Falha())
	require.NotNil(t, list[0].Colaborador)
	assert.Equal(t, "Ana", list[0].Colaborador.NomeCompleto)
	require.NotNil(t, list[0].Empresa)
	assert.Equal(t, "Alfa Ltda", list[0].Empresa.NomeCompleto)
	assert.Equal(t, []string{"cc@x.com"}, list[0].EmailsCC)

	assert.Nil(t, list[1].ColaboradorID, "colaborador_id nulo")
	assert.Nil(t, list[1].Colaborador, "join sem colaborador")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoricoRepo_Search_ErroDoBanco(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewHistoricoDisparoRepository(mock)
	boom := errors.New("conexão perdida")

	mock.ExpectQuery(`FROM historico_disparos h`).WillReturnError(boom)

	_, err := repo.Search(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoricoRepo_Search_ClausulaInvalidaNaoConsulta(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewHistoricoDisparoRepository(mock)

	_, err := repo.Search(context.Background(), []repository.Clausula{repository.Eq("assunto", "x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// Controle mensal e transação
// ──────────────────────────────────────────────────────────────────────────────

func TestControleMensalRepo_ListByPeriodo(t *testing.T) {
	mock := novoMock(t)
	repo := postgres.NewControleMensalRepository(mock)
	agora := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)

	cols := []string{"id", "empresa_id", "mes", "ano", "status", "data_processamento", "observacoes",
		"created_at", "updated_at", "e_id", "e_nome", "e_abrev", "e_email", "e_status"}
	mock.ExpectQuery(`FROM controle_mensal cm`).
		WithArgs(3, 2024).
		WillReturnRows(mock.NewRows(cols).
			AddRow("c-1", "emp-1", 3, 2024, entity.ControleConcluido, ptr(agora), "", agora, agora,
				ptr("emp-1"), ptr("Alfa Ltda"), ptr("Alfa"), ptr(""), ptr(entity.StatusAtivo)).
			AddRow("c-2", "emp-x", 3, 2024, entity.ControlePendente, nil, "", agora, agora,
				nil, nil, nil, nil, nil))

	list, err := repo.ListByPeriodo(context.Background(), 3, 2024)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].DataProcessamento)
	assert.Equal(t, "Alfa Ltda", list[0].Empresa.NomeCompleto)
	assert.Nil(t, list[1].DataProcessamento)
	assert.Nil(t, list[1].Empresa)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RunDisparo_Commit(t *testing.T) {
	mock := novoMock(t)
	runner := postgres.NewTxRunner(mock)
	quando := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	criado := time.Date(2024, 3, 5, 10, 0, 1, 0, time.UTC)

	disparo := &entity.HistoricoDisparo{
		ID: "d-1", EmpresaID: "emp-1", DataDisparo: quando, Status: entity.DisparoEnviado, CreatedAt: quando,
	}
	controle := &entity.ControleMensal{EmpresaID: "emp-1", Mes: 3, Ano: 2024, Status: entity.ControleConcluido}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO historico_disparos`).
		WithArgs("d-1", "emp-1", (*string)(nil), quando, entity.DisparoEnviado, "", "", []string{}, quando).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`INSERT INTO controle_mensal .* ON CONFLICT \(empresa_id, mes, ano\) DO UPDATE`).
		WithArgs("emp-1", 3, 2024, entity.ControleConcluido, (*time.Time)(nil), "").
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("c-1", criado, criado))
	mock.ExpectCommit()

	err := runner.RunDisparo(context.Background(), func(h repository.HistoricoDisparoRepository, c repository.ControleMensalRepository) error {
		if err := h.Create(context.Background(), disparo); err != nil {
			return err
		}
		return c.Upsert(context.Background(), controle)
	})
	require.NoError(t, err)
	assert.Equal(t, "c-1", controle.ID)
	assert.Equal(t, criado, controle.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RunDisparo_Rollback(t *testing.T) {
	mock := novoMock(t)
	runner := postgres.NewTxRunner(mock)
	boom := errors.New("falha no callback")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := runner.RunDisparo(context.Background(), func(repository.HistoricoDisparoRepository, repository.ControleMensalRepository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
