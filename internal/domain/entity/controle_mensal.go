package entity

import "time"

// Estados do controle mensal de disparos por empresa.
const (
	ControlePendente    = "pendente"
	ControleProcessando = "processando"
	ControleConcluido   = "concluido"
	ControleFalhou      = "falhou"
)

// ControleMensal acompanha, por empresa e mês, o estado do envio do book.
type ControleMensal struct {
	ID                string
	EmpresaID         string
	Mes               int
	Ano               int
	Status            string
	DataProcessamento *time.Time
	Observacoes       string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Empresa *Empresa
}
