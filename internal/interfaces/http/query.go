package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
	"github.com/jhoicas/painel-books-api/internal/domain"
)

const layoutData = "2006-01-02"

// queryInt lê um inteiro opcional; ausente devolve def.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s deve ser inteiro", domain.ErrInvalidInput, key)
	}
	return n, nil
}

// queryBool aceita true/false/1/0; ausente é false.
func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s deve ser booleano", domain.ErrInvalidInput, key)
	}
	return b, nil
}

// queryList separa valores por vírgula, descartando vazios.
func queryList(c *fiber.Ctx, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// queryData aceita YYYY-MM-DD (no fuso loc) ou RFC3339. Para datas sem hora,
// fimDoDia leva o instante para 23:59:59 do mesmo dia.
func queryData(c *fiber.Ctx, key string, loc *time.Location, fimDoDia bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(layoutData, raw, loc); err == nil {
		if fimDoDia {
			t = t.Add(24*time.Hour - time.Second)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s deve estar em YYYY-MM-DD ou RFC3339", domain.ErrInvalidInput, key)
	}
	return &t, nil
}

// mesAno lê mes/ano; ausentes assumem o mês corrente em loc.
func mesAno(c *fiber.Ctx, now time.Time) (int, int, error) {
	mes, err := queryInt(c, "mes", int(now.Month()))
	if err != nil {
		return 0, 0, err
	}
	ano, err := queryInt(c, "ano", now.Year())
	if err != nil {
		return 0, 0, err
	}
	return mes, ano, nil
}

// filtroFromQuery monta o FiltroHistorico a partir da query string.
func filtroFromQuery(c *fiber.Ctx, loc *time.Location) (dto.FiltroHistorico, error) {
	f := dto.FiltroHistorico{
		EmpresaID:      c.Query("empresa_id"),
		EmpresaIDs:     queryList(c, "empresa_ids"),
		ColaboradorID:  c.Query("colaborador_id"),
		ColaboradorIDs: queryList(c, "colaborador_ids"),
		Status:         queryList(c, "status"),
	}
	var err error
	if f.DataInicio, err = queryData(c, "data_inicio", loc, false); err != nil {
		return f, err
	}
	if f.DataFim, err = queryData(c, "data_fim", loc, true); err != nil {
		return f, err
	}
	if f.Mes, err = queryInt(c, "mes", 0); err != nil {
		return f, err
	}
	if f.Ano, err = queryInt(c, "ano", 0); err != nil {
		return f, err
	}
	if f.ApenasComFalhas, err = queryBool(c, "apenas_com_falhas"); err != nil {
		return f, err
	}
	if f.ApenasComSucesso, err = queryBool(c, "apenas_com_sucesso"); err != nil {
		return f, err
	}
	if f.IncluirInativos, err = queryBool(c, "incluir_inativos"); err != nil {
		return f, err
	}
	return f, nil
}
