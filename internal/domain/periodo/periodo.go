// Package periodo calcula limites de meses do calendário em um fuso explícito.
package periodo

import (
	"fmt"
	"time"

	"github.com/jhoicas/painel-books-api/internal/domain"
)

// Intervalo fechado [Inicio, Fim].
type Intervalo struct {
	Inicio time.Time
	Fim    time.Time
}

// Contem informa se t está dentro do intervalo (extremos inclusivos).
func (i Intervalo) Contem(t time.Time) bool {
	return !t.Before(i.Inicio) && !t.After(i.Fim)
}

// Mes devolve o primeiro instante (dia 1, 00:00:00) e o último segundo
// (último dia, 23:59:59) do mês informado, no fuso loc.
// Mês fora de 1..12 ou ano fora de 1..9999 devolve domain.ErrInvalidInput.
func Mes(mes, ano int, loc *time.Location) (Intervalo, error) {
	if err := Validar(mes, ano); err != nil {
		return Intervalo{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	inicio := time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, loc)
	ultimoDia := inicio.AddDate(0, 1, -1)
	fim := time.Date(ano, time.Month(mes), ultimoDia.Day(), 23, 59, 59, 0, loc)
	return Intervalo{Inicio: inicio, Fim: fim}, nil
}

// Validar confere se mes/ano formam um mês de calendário válido.
func Validar(mes, ano int) error {
	if mes < 1 || mes > 12 {
		return fmt.Errorf("%w: mês %d fora de 1..12", domain.ErrInvalidInput, mes)
	}
	if ano < 1 || ano > 9999 {
		return fmt.Errorf("%w: ano %d fora de 1..9999", domain.ErrInvalidInput, ano)
	}
	return nil
}

// MesesAtras devolve o instante n meses de calendário antes de now.
func MesesAtras(now time.Time, n int) time.Time {
	return now.AddDate(0, -n, 0)
}

// Dias devolve quantos dias (arredondando para cima) separam inicio de fim.
// Intervalos vazios ou invertidos devolvem 0.
func Dias(inicio, fim time.Time) int {
	d := fim.Sub(inicio)
	if d <= 0 {
		return 0
	}
	dias := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		dias++
	}
	return dias
}

// Rotulo devolve o nome do mês em português, ex: "Março 2024".
func Rotulo(mes, ano int) string {
	meses := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	if mes < 1 || mes > 12 {
		return fmt.Sprintf("%02d/%d", mes, ano)
	}
	return fmt.Sprintf("%s %d", meses[mes-1], ano)
}
