package entity

import "time"

// Status de ciclo de vida compartilhados por empresas e colaboradores.
const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)

// Empresa representa uma empresa cliente atendida pelos books.
type Empresa struct {
	ID            string
	NomeCompleto  string
	NomeAbreviado string
	CNPJ          string // apenas dígitos
	EmailGestor   string
	Status        string // ativo, inativo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Ativa informa se a empresa entra nas métricas de "ativas".
func (e *Empresa) Ativa() bool {
	return e != nil && e.Status == StatusAtivo
}
