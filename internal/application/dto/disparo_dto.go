package dto

import "time"

// RegistrarDisparoRequest corpo de POST /api/disparos.
// DataDisparo vazio assume o instante do registro.
type RegistrarDisparoRequest struct {
	EmpresaID     string     `json:"empresa_id" validate:"required"`
	ColaboradorID *string    `json:"colaborador_id" validate:"omitempty,min=1"`
	DataDisparo   *time.Time `json:"data_disparo"`
	Status        string     `json:"status" validate:"required,oneof=enviado falhou agendado cancelado"`
	Assunto       string     `json:"assunto" validate:"max=300"`
	ErroDetalhes  string     `json:"erro_detalhes"`
	EmailsCC      []string   `json:"emails_cc" validate:"omitempty,dive,email"`
}

// RegistrarDisparoResponse disparo registrado e o controle mensal resultante.
type RegistrarDisparoResponse struct {
	Disparo        HistoricoDisparoDTO `json:"disparo"`
	ControleMensal *ControleMensalDTO  `json:"controle_mensal,omitempty"`
}
