package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestLerEmpresas_UTF8(t *testing.T) {
	csv := "\ufeffNome_Completo;CNPJ;email_gestor;status\n" +
		"Alfa Consultoria;11.222.333/0001-81;Gestor@Alfa.com.br;\n" +
		"Beta Serviços;22333444000181;;INATIVO\n"

	empresas, problemas, err := lerEmpresas(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, problemas)
	require.Len(t, empresas, 2)

	assert.Equal(t, "Alfa Consultoria", empresas[0].NomeCompleto)
	assert.Equal(t, "11222333000181", empresas[0].CNPJ)
	assert.Equal(t, "gestor@alfa.com.br", empresas[0].EmailGestor)
	assert.Equal(t, "ativo", empresas[0].Status)
	assert.Equal(t, "Beta Serviços", empresas[1].NomeCompleto)
	assert.Equal(t, "inativo", empresas[1].Status)
}

func TestLerEmpresas_Windows1252(t *testing.T) {
	enc, err := charmap.Windows1252.NewEncoder().String("nome_completo;nome_abreviado\nGama Engenharia e Construção;Gama\n")
	require.NoError(t, err)

	empresas, _, err := lerEmpresas(strings.NewReader(enc))
	require.NoError(t, err)
	require.Len(t, empresas, 1)
	assert.Equal(t, "Gama Engenharia e Construção", empresas[0].NomeCompleto)
	assert.Equal(t, "Gama", empresas[0].NomeAbreviado)
}

func TestLerEmpresas_LinhasInvalidas(t *testing.T) {
	csv := "nome_completo;cnpj;status\n" +
		";11222333000181;ativo\n" +
		"Delta;123;ativo\n" +
		"Épsilon;;suspenso\n" +
		"Zeta;;\n"

	empresas, problemas, err := lerEmpresas(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, empresas, 1)
	assert.Equal(t, "Zeta", empresas[0].NomeCompleto)
	require.Len(t, problemas, 3)
	assert.ErrorIs(t, problemas[0], errSemNome)
	assert.Contains(t, problemas[0].Error(), "linha 2")
	assert.Contains(t, problemas[1].Error(), "14 dígitos")
	assert.Contains(t, problemas[2].Error(), "suspenso")
}

func TestLerEmpresas_SemColunaNome(t *testing.T) {
	_, _, err := lerEmpresas(strings.NewReader("cnpj;status\n1;ativo\n"))
	assert.Error(t, err)
}

func TestEscreverSQL(t *testing.T) {
	empresas, _, err := lerEmpresas(strings.NewReader("nome_completo;email_gestor\nD'Ávila & Filhos;\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, escreverSQL(&buf, empresas, now))

	out := buf.String()
	assert.Contains(t, out, "'D''Ávila & Filhos'")
	assert.Contains(t, out, "NULL, NULL, NULL, 'ativo', '2024-03-01T12:00:00Z'")
	assert.Contains(t, out, "ON CONFLICT DO NOTHING;")
	assert.Equal(t, 1, strings.Count(out, "INSERT INTO empresas"))
}
