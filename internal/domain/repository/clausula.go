package repository

import (
	"fmt"

	"github.com/jhoicas/painel-books-api/internal/domain"
)

// Operador de comparação de uma cláusula de consulta.
type Operador string

const (
	OpEq  Operador = "eq"  // campo = valor
	OpIn  Operador = "in"  // campo pertence a []string
	OpGte Operador = "gte" // campo >= valor
	OpLte Operador = "lte" // campo <= valor
)

// Campos de historico_disparos aceitos em cláusulas.
const (
	CampoEmpresaID     = "empresa_id"
	CampoColaboradorID = "colaborador_id"
	CampoStatus        = "status"
	CampoDataDisparo   = "data_disparo"
)

// Clausula é um predicado explícito aplicado a uma consulta.
// As cláusulas de uma lista são combinadas com AND.
type Clausula struct {
	Campo    string
	Operador Operador
	Valor    any
}

// Eq constrói campo = valor.
func Eq(campo string, valor any) Clausula {
	return Clausula{Campo: campo, Operador: OpEq, Valor: valor}
}

// In constrói campo IN (valores).
func In(campo string, valores []string) Clausula {
	return Clausula{Campo: campo, Operador: OpIn, Valor: valores}
}

// Gte constrói campo >= valor.
func Gte(campo string, valor any) Clausula {
	return Clausula{Campo: campo, Operador: OpGte, Valor: valor}
}

// Lte constrói campo <= valor.
func Lte(campo string, valor any) Clausula {
	return Clausula{Campo: campo, Operador: OpLte, Valor: valor}
}

// CampoValido informa se o campo pode ser usado em cláusulas de historico_disparos.
func CampoValido(campo string) bool {
	switch campo {
	case CampoEmpresaID, CampoColaboradorID, CampoStatus, CampoDataDisparo:
		return true
	}
	return false
}

// Validar confere campo e operador de cada cláusula.
func Validar(clausulas []Clausula) error {
	for _, c := range clausulas {
		if !CampoValido(c.Campo) {
			return fmt.Errorf("%w: campo de filtro desconhecido %q", domain.ErrInvalidInput, c.Campo)
		}
		switch c.Operador {
		case OpEq, OpGte, OpLte:
		case OpIn:
			if _, ok := c.Valor.([]string); !ok {
				return fmt.Errorf("%w: operador in exige []string em %q", domain.ErrInvalidInput, c.Campo)
			}
		default:
			return fmt.Errorf("%w: operador desconhecido %q", domain.ErrInvalidInput, c.Operador)
		}
	}
	return nil
}
