// Package relatorio contém o agregador de métricas mensais dos books:
// contagens de empresas e colaboradores, taxa de sucesso dos disparos,
// empresas sem book no mês e as consultas de histórico que alimentam o painel.
package relatorio

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

const (
	defaultMesesHistorico = 12 // janela de BuscarHistoricoEmpresa
	defaultLimiteFalhas   = 10 // tamanho do ranking de colaboradores com falhas
	defaultMesesFalhas    = 3  // janela de BuscarColaboradoresComFalhas
)

var hundred = decimal.NewFromInt(100)

// Service agrega métricas a partir dos repositórios.
//
// Não guarda estado entre chamadas: cada operação lê o backend de novo.
// Pode ser construído por chamador ou injetado; não há instância global.
type Service struct {
	empresas      repository.EmpresaRepository
	colaboradores repository.ColaboradorRepository
	historico     repository.HistoricoDisparoRepository
	controles     repository.ControleMensalRepository

	loc *time.Location
	now func() time.Time
	log zerolog.Logger

	mesesHistorico int
	limiteFalhas   int
	mesesFalhas    int
}

// Option ajusta a construção do Service.
type Option func(*Service)

// WithLocation define o fuso usado nos limites de mês e nos rótulos de data.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock substitui time.Now (usado nas janelas "últimos N meses").
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger injeta o logger estruturado.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithDefaults troca os valores padrão das janelas e do limite do ranking.
// Valores <= 0 mantêm o padrão.
func WithDefaults(mesesHistorico, limiteFalhas, mesesFalhas int) Option {
	return func(s *Service) {
		if mesesHistorico > 0 {
			s.mesesHistorico = mesesHistorico
		}
		if limiteFalhas > 0 {
			s.limiteFalhas = limiteFalhas
		}
		if mesesFalhas > 0 {
			s.mesesFalhas = mesesFalhas
		}
	}
}

// NewService constrói o agregador com os portos de persistência.
func NewService(
	empresas repository.EmpresaRepository,
	colaboradores repository.ColaboradorRepository,
	historico repository.HistoricoDisparoRepository,
	controles repository.ControleMensalRepository,
	opts ...Option,
) *Service {
	s := &Service{
		empresas:       empresas,
		colaboradores:  colaboradores,
		historico:      historico,
		controles:      controles,
		loc:            time.Local,
		now:            time.Now,
		log:            zerolog.Nop(),
		mesesHistorico: defaultMesesHistorico,
		limiteFalhas:   defaultLimiteFalhas,
		mesesFalhas:    defaultMesesFalhas,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location devolve o fuso configurado.
func (s *Service) Location() *time.Location { return s.loc }

// Agora devolve o instante corrente no fuso configurado.
func (s *Service) Agora() time.Time { return s.now().In(s.loc) }

// taxaSucesso = sucessos / (sucessos + falhas) * 100, com 2 casas.
// Sem disparos conclusivos a taxa é exatamente zero.
func taxaSucesso(sucessos, falhas int) decimal.Decimal {
	total := sucessos + falhas
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sucessos)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}
