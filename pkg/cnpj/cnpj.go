// Package cnpj valida o CNPJ (cadastro de pessoas jurídicas da Receita Federal).
package cnpj

import (
	"fmt"
	"unicode"
)

// pesos do módulo 11 para o primeiro e o segundo dígito verificador.
var (
	pesosDV1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	pesosDV2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digitos extrai apenas os dígitos; aceita "11.222.333/0001-81" ou "11222333000181".
func Digitos(s string) string {
	out := make([]rune, 0, 14)
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// Validar confere tamanho e os dois dígitos verificadores.
// Sequências repetidas (00000000000000, 11111111111111...) são rejeitadas.
func Validar(s string) error {
	d := Digitos(s)
	if len(d) != 14 {
		return fmt.Errorf("cnpj: deve ter 14 dígitos, encontrados %d", len(d))
	}
	if repetido(d) {
		return fmt.Errorf("cnpj: sequência repetida %s", d)
	}
	dv1 := digito(d[:12], pesosDV1[:])
	dv2 := digito(d[:12]+string(dv1), pesosDV2[:])
	if d[12] != dv1 || d[13] != dv2 {
		return fmt.Errorf("cnpj: dígitos verificadores inválidos: esperado %c%c, recebido %s", dv1, dv2, d[12:])
	}
	return nil
}

// Formatar devolve o CNPJ no formato 00.000.000/0000-00; entrada sem 14 dígitos volta como veio.
func Formatar(s string) string {
	d := Digitos(s)
	if len(d) != 14 {
		return s
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

func digito(base string, pesos []int) byte {
	var soma int
	for i := range base {
		soma += int(base[i]-'0') * pesos[i]
	}
	resto := soma % 11
	if resto < 2 {
		return '0'
	}
	return byte('0' + (11 - resto))
}

func repetido(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
