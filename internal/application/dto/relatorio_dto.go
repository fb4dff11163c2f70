package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Filtros ───────────────────────────────────────────────────────────────────

// FiltroHistorico filtros opcionais da consulta de histórico de disparos.
// Campos zerados não geram cláusula. Mes+Ano e DataInicio/DataFim podem coexistir.
type FiltroHistorico struct {
	EmpresaID        string     `json:"empresa_id,omitempty"`
	EmpresaIDs       []string   `json:"empresa_ids,omitempty"`
	ColaboradorID    string     `json:"colaborador_id,omitempty"`
	ColaboradorIDs   []string   `json:"colaborador_ids,omitempty"`
	Status           []string   `json:"status,omitempty" validate:"omitempty,dive,oneof=enviado falhou agendado cancelado"`
	DataInicio       *time.Time `json:"data_inicio,omitempty"`
	DataFim          *time.Time `json:"data_fim,omitempty"`
	Mes              int        `json:"mes,omitempty" validate:"omitempty,min=1,max=12"`
	Ano              int        `json:"ano,omitempty" validate:"omitempty,min=1,max=9999"`
	ApenasComFalhas  bool       `json:"apenas_com_falhas,omitempty"`
	ApenasComSucesso bool       `json:"apenas_com_sucesso,omitempty"`
	IncluirInativos  bool       `json:"incluir_inativos,omitempty"`
}

// ── Snapshots ─────────────────────────────────────────────────────────────────

// EmpresaResumoDTO dados de exibição de uma empresa.
type EmpresaResumoDTO struct {
	ID            string `json:"id"`
	NomeCompleto  string `json:"nome_completo"`
	NomeAbreviado string `json:"nome_abreviado,omitempty"`
	EmailGestor   string `json:"email_gestor,omitempty"`
	Status        string `json:"status"`
}

// ColaboradorResumoDTO dados de exibição de um colaborador.
type ColaboradorResumoDTO struct {
	ID           string `json:"id"`
	NomeCompleto string `json:"nome_completo"`
	Email        string `json:"email"`
	Status       string `json:"status"`
}

// HistoricoDisparoDTO um disparo com os snapshots do join.
type HistoricoDisparoDTO struct {
	ID            string                `json:"id"`
	EmpresaID     string                `json:"empresa_id"`
	ColaboradorID *string               `json:"colaborador_id,omitempty"`
	DataDisparo   time.Time             `json:"data_disparo"`
	Status        string                `json:"status"`
	Assunto       string                `json:"assunto,omitempty"`
	ErroDetalhes  string                `json:"erro_detalhes,omitempty"`
	EmailsCC      []string              `json:"emails_cc,omitempty"`
	Empresa       *EmpresaResumoDTO     `json:"empresa,omitempty"`
	Colaborador   *ColaboradorResumoDTO `json:"colaborador,omitempty"`
}

// ControleMensalDTO estado do controle mensal de uma empresa.
type ControleMensalDTO struct {
	ID                string            `json:"id"`
	EmpresaID         string            `json:"empresa_id"`
	Mes               int               `json:"mes"`
	Ano               int               `json:"ano"`
	Status            string            `json:"status"`
	DataProcessamento *time.Time        `json:"data_processamento,omitempty"`
	Observacoes       string            `json:"observacoes,omitempty"`
	Empresa           *EmpresaResumoDTO `json:"empresa,omitempty"`
}

// ── Relatórios ────────────────────────────────────────────────────────────────

// RelatorioMetricasDTO resumo mensal de empresas, colaboradores e disparos.
// Contagens de empresas/colaboradores são globais; as de e-mails são do mês.
type RelatorioMetricasDTO struct {
	TotalEmpresas       int                `json:"total_empresas"`
	EmpresasAtivas      int                `json:"empresas_ativas"`
	TotalColaboradores  int                `json:"total_colaboradores"`
	ColaboradoresAtivos int                `json:"colaboradores_ativos"`
	EmailsEnviadosMes   int                `json:"emails_enviados_mes"`
	EmailsFalharamMes   int                `json:"emails_falharam_mes"`
	TaxaSucessoMes      decimal.Decimal    `json:"taxa_sucesso_mes"` // enviados / (enviados + falhas) * 100
	EmpresasSemBooks    []EmpresaResumoDTO `json:"empresas_sem_books"`
}

// RelatorioMensalDTO composição de métricas, histórico e controles de um mês.
type RelatorioMensalDTO struct {
	Mes              int                   `json:"mes"`
	Ano              int                   `json:"ano"`
	Rotulo           string                `json:"rotulo"` // ex: "Março 2024"
	Metricas         RelatorioMetricasDTO  `json:"metricas"`
	Historico        []HistoricoDisparoDTO `json:"historico"`
	ControlesMensais []ControleMensalDTO   `json:"controles_mensais"`
}

// EstatisticasPerformanceDTO desempenho dos disparos num intervalo de datas.
type EstatisticasPerformanceDTO struct {
	TotalDisparos          int             `json:"total_disparos"`
	Sucessos               int             `json:"sucessos"`
	Falhas                 int             `json:"falhas"`
	TaxaSucesso            decimal.Decimal `json:"taxa_sucesso"`
	EmpresasAtendidas      int             `json:"empresas_atendidas"`
	ColaboradoresAtendidos int             `json:"colaboradores_atendidos"`
	MediaDiaria            decimal.Decimal `json:"media_diaria"` // total / dias do período
}

// EstatisticasEmpresaDTO indicadores de uma empresa no período consultado.
type EstatisticasEmpresaDTO struct {
	TotalEnvios int             `json:"total_envios"`
	Sucessos    int             `json:"sucessos"`
	Falhas      int             `json:"falhas"`
	TaxaSucesso decimal.Decimal `json:"taxa_sucesso"`
	UltimoEnvio *time.Time      `json:"ultimo_envio,omitempty"`
}

// HistoricoEmpresaDTO histórico e indicadores de uma empresa.
type HistoricoEmpresaDTO struct {
	Empresa      EmpresaResumoDTO       `json:"empresa"`
	Historico    []HistoricoDisparoDTO  `json:"historico"`
	Estatisticas EstatisticasEmpresaDTO `json:"estatisticas"`
}

// ColaboradorFalhasDTO colaborador com falhas recorrentes numa empresa.
type ColaboradorFalhasDTO struct {
	Colaborador ColaboradorResumoDTO `json:"colaborador"`
	Empresa     EmpresaResumoDTO     `json:"empresa"`
	TotalFalhas int                  `json:"total_falhas"`
	UltimaFalha time.Time            `json:"ultima_falha"`
}

// ── Exportação ────────────────────────────────────────────────────────────────

// Formatos de exportação aceitos. A conversão fica com o consumidor.
const (
	FormatoCSV   = "csv"
	FormatoExcel = "excel"
	FormatoPDF   = "pdf"
)

// ExportConfigRequest corpo de POST /api/relatorios/exportar.
type ExportConfigRequest struct {
	Formato         string          `json:"formato" validate:"required,oneof=csv excel pdf"`
	Filtros         FiltroHistorico `json:"filtros"`
	IncluirMetricas bool            `json:"incluir_metricas"`
	IncluirDetalhes bool            `json:"incluir_detalhes"`
}

// ExportacaoDTO linhas planas prontas para conversão em arquivo.
type ExportacaoDTO struct {
	NomeArquivo string              `json:"nome_arquivo"`
	Formato     string              `json:"formato"`
	Colunas     []string            `json:"colunas"`
	Linhas      []map[string]string `json:"linhas"`
}
