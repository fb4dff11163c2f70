package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/painel-books-api/internal/domain/repository"
)

// colunasHistorico mapeia os campos de cláusula para colunas qualificadas.
// Só estes nomes chegam ao SQL; valores sempre vão como parâmetros.
var colunasHistorico = map[string]string{
	repository.CampoEmpresaID:     "h.empresa_id",
	repository.CampoColaboradorID: "h.colaborador_id",
	repository.CampoStatus:        "h.status",
	repository.CampoDataDisparo:   "h.data_disparo",
}

// whereHistorico traduz as cláusulas em "WHERE ... AND ..." com placeholders
// numerados a partir de $1. Lista vazia devolve "" e nenhum argumento.
func whereHistorico(clausulas []repository.Clausula) (string, []any, error) {
	if err := repository.Validar(clausulas); err != nil {
		return "", nil, err
	}
	if len(clausulas) == 0 {
		return "", nil, nil
	}
	partes := make([]string, 0, len(clausulas))
	args := make([]any, 0, len(clausulas))
	for _, c := range clausulas {
		col := colunasHistorico[c.Campo]
		args = append(args, c.Valor)
		n := len(args)
		switch c.Operador {
		case repository.OpEq:
			partes = append(partes, fmt.Sprintf("%s = $%d", col, n))
		case repository.OpIn:
			partes = append(partes, fmt.Sprintf("%s = ANY($%d)", col, n))
		case repository.OpGte:
			partes = append(partes, fmt.Sprintf("%s >= $%d", col, n))
		case repository.OpLte:
			partes = append(partes, fmt.Sprintf("%s <= $%d", col, n))
		}
	}
	return " WHERE " + strings.Join(partes, " AND "), args, nil
}
