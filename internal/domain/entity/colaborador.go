package entity

import "time"

// Colaborador é o contato que recebe os books em nome de uma empresa.
// A associação com a empresa é implícita, via histórico de disparos.
type Colaborador struct {
	ID           string
	NomeCompleto string
	Email        string
	Cargo        string
	Status       string // ativo, inativo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ativo informa se o colaborador está com status ativo.
func (c *Colaborador) Ativo() bool {
	return c != nil && c.Status == StatusAtivo
}
