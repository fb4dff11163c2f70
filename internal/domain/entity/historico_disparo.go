package entity

import "time"

// Status de um disparo. Valores fora desta lista são repassados sem alteração,
// mas não contam como sucesso nem como falha.
const (
	DisparoEnviado   = "enviado"
	DisparoFalhou    = "falhou"
	DisparoAgendado  = "agendado"
	DisparoCancelado = "cancelado"
)

// HistoricoDisparo registra uma tentativa de envio de book para uma empresa.
type HistoricoDisparo struct {
	ID            string
	EmpresaID     string
	ColaboradorID *string // nil quando o disparo não tem colaborador
	DataDisparo   time.Time
	Status        string
	Assunto       string
	ErroDetalhes  string
	EmailsCC      []string
	CreatedAt     time.Time

	// Snapshots do join no momento da consulta; nil quando o join não encontrou a linha.
	Empresa     *Empresa
	Colaborador *Colaborador
}

// Sucesso informa se o disparo foi entregue.
func (h *HistoricoDisparo) Sucesso() bool { return h.Status == DisparoEnviado }

// Falha informa se o disparo falhou.
func (h *HistoricoDisparo) Falha() bool { return h.Status == DisparoFalhou }
