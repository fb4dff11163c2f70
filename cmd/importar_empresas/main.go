// importar_empresas gera um script SQL para popular a tabela empresas a partir
// de uma planilha exportada em CSV (Excel pt-BR: separador ";" e Windows-1252).
//
// Uso: go run ./cmd/importar_empresas empresas.csv [saida.sql]
// Sem saída informada escreve em stdout.
//
// Colunas esperadas no cabeçalho (ordem livre, maiúsculas ignoradas):
// nome_completo, nome_abreviado, cnpj, email_gestor, status.
// Só nome_completo é obrigatória; status vazio vira "ativo".
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/painel-books-api/internal/domain/entity"
	"github.com/jhoicas/painel-books-api/pkg/cnpj"
)

var errSemNome = errors.New("nome_completo vazio")

type linhaErro struct {
	linha int
	err   error
}

func (e linhaErro) Error() string { return fmt.Sprintf("linha %d: %v", e.linha, e.err) }

func (e linhaErro) Unwrap() error { return e.err }

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: importar_empresas empresas.csv [saida.sql]")
		os.Exit(2)
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	empresas, problemas, err := lerEmpresas(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ler CSV: %v\n", err)
		os.Exit(1)
	}
	for _, p := range problemas {
		fmt.Fprintf(os.Stderr, "ignorada: %v\n", p)
	}

	var out io.Writer = os.Stdout
	if len(os.Args) > 2 {
		file, err := os.Create(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Criar arquivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	if err := escreverSQL(out, empresas, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Escrever SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%d empresas exportadas, %d linhas ignoradas\n", len(empresas), len(problemas))
}

// lerEmpresas decodifica o CSV. Entrada já em UTF-8 válido é lida como está;
// caso contrário é convertida de Windows-1252. Linhas inválidas voltam em
// problemas e não interrompem a leitura.
func lerEmpresas(r io.Reader) ([]*entity.Empresa, []error, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cabeçalho: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx["nome_completo"]; !ok {
		return nil, nil, errors.New("cabeçalho sem coluna nome_completo")
	}
	col := func(rec []string, nome string) string {
		i, ok := idx[nome]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		empresas  []*entity.Empresa
		problemas []error
	)
	for n := 2; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			problemas = append(problemas, linhaErro{n, err})
			continue
		}
		e := &entity.Empresa{
			NomeCompleto:  col(rec, "nome_completo"),
			NomeAbreviado: col(rec, "nome_abreviado"),
			CNPJ:          cnpj.Digitos(col(rec, "cnpj")),
			EmailGestor:   strings.ToLower(col(rec, "email_gestor")),
			Status:        strings.ToLower(col(rec, "status")),
		}
		if e.NomeCompleto == "" {
			problemas = append(problemas, linhaErro{n, errSemNome})
			continue
		}
		switch e.Status {
		case "":
			e.Status = entity.StatusAtivo
		case entity.StatusAtivo, entity.StatusInativo:
		default:
			problemas = append(problemas, linhaErro{n, fmt.Errorf("status %q desconhecido", e.Status)})
			continue
		}
		if e.CNPJ != "" {
			if err := cnpj.Validar(e.CNPJ); err != nil {
				problemas = append(problemas, linhaErro{n, err})
				continue
			}
		}
		empresas = append(empresas, e)
	}
	return empresas, problemas, nil
}

// escreverSQL emite um INSERT por empresa com id uuid novo.
func escreverSQL(w io.Writer, empresas []*entity.Empresa, now time.Time) error {
	ts := now.UTC().Format(time.RFC3339)
	if _, err := fmt.Fprintf(w, "-- Empresas importadas em %s\n\n", ts); err != nil {
		return err
	}
	for _, e := range empresas {
		_, err := fmt.Fprintf(w,
			"INSERT INTO empresas (id, nome_completo, nome_abreviado, cnpj, email_gestor, status, created_at, updated_at)\n"+
				"VALUES ('%s', %s, %s, %s, %s, '%s', '%s', '%s')\nON CONFLICT DO NOTHING;\n",
			uuid.NewString(),
			literal(e.NomeCompleto), literal(e.NomeAbreviado), literal(e.CNPJ), literal(e.EmailGestor),
			e.Status, ts, ts,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// literal devolve o texto entre aspas simples, ou NULL se vazio.
func literal(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
