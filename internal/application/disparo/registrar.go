package disparo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/domain"
	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

// RegistrarUseCase registra um disparo e atualiza o controle mensal da empresa.
type RegistrarUseCase struct {
	txRunner    TxRunner
	empresaRepo repository.EmpresaRepository
	validate    *validator.Validate
	loc         *time.Location
	now         func() time.Time
	log         zerolog.Logger
}

// NewRegistrarUseCase constrói o caso de uso. loc define em que mês cai o disparo
// (nil usa UTC).
func NewRegistrarUseCase(txRunner TxRunner, empresaRepo repository.EmpresaRepository, loc *time.Location, log zerolog.Logger) *RegistrarUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &RegistrarUseCase{
		txRunner:    txRunner,
		empresaRepo: empresaRepo,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		loc:         loc,
		now:         time.Now,
		log:         log,
	}
}

// Registrar valida o pedido, grava o disparo e, para enviado/falhou, faz upsert
// do controle mensal (concluido/falhou) na mesma transação.
func (uc *RegistrarUseCase) Registrar(ctx context.Context, in dto.RegistrarDisparoRequest) (*dto.RegistrarDisparoResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			campos := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				campos = append(campos, fe.Field())
			}
			return nil, fmt.Errorf("%w: campos inválidos: %s", domain.ErrInvalidInput, strings.Join(campos, ", "))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	empresa, err := uc.empresaRepo.GetByID(ctx, in.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("disparo: buscar empresa: %w", err)
	}
	if empresa == nil {
		return nil, fmt.Errorf("disparo: empresa %s: %w", in.EmpresaID, domain.ErrNotFound)
	}

	now := uc.now()
	quando := now
	if in.DataDisparo != nil {
		quando = *in.DataDisparo
	}

	registro := &entity.HistoricoDisparo{
		ID:            uuid.New().String(),
		EmpresaID:     in.EmpresaID,
		ColaboradorID: in.ColaboradorID,
		DataDisparo:   quando,
		Status:        in.Status,
		Assunto:       in.Assunto,
		ErroDetalhes:  in.ErroDetalhes,
		EmailsCC:      in.EmailsCC,
		CreatedAt:     now,
	}

	var controle *entity.ControleMensal
	if status := statusControle(in.Status); status != "" {
		local := quando.In(uc.loc)
		controle = &entity.ControleMensal{
			EmpresaID:         in.EmpresaID,
			Mes:               int(local.Month()),
			Ano:               local.Year(),
			Status:            status,
			DataProcessamento: &now,
		}
		if status == entity.ControleFalhou {
			controle.Observacoes = in.ErroDetalhes
		}
	}

	err = uc.txRunner.RunDisparo(ctx, func(
		historicoRepo repository.HistoricoDisparoRepository,
		controleRepo repository.ControleMensalRepository,
	) error {
		if err := historicoRepo.Create(ctx, registro); err != nil {
			return fmt.Errorf("gravar histórico: %w", err)
		}
		if controle == nil {
			return nil
		}
		if err := controleRepo.Upsert(ctx, controle); err != nil {
			return fmt.Errorf("atualizar controle mensal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("disparo: registrar: %w", err)
	}

	uc.log.Info().
		Str("disparo_id", registro.ID).
		Str("empresa_id", registro.EmpresaID).
		Str("status", registro.Status).
		Msg("disparo registrado")

	registro.Empresa = empresa
	out := &dto.RegistrarDisparoResponse{Disparo: dto.FromHistorico(registro)}
	if controle != nil {
		controle.Empresa = empresa
		c := dto.FromControleMensal(controle)
		out.ControleMensal = &c
	}
	return out, nil
}

// statusControle devolve o estado do controle mensal para o status do disparo;
// vazio quando o controle não deve ser tocado.
func statusControle(statusDisparo string) string {
	switch statusDisparo {
	case entity.DisparoEnviado:
		return entity.ControleConcluido
	case entity.DisparoFalhou:
		return entity.ControleFalhou
	}
	return ""
}
