package dto

import "github.com/jhoicas/painel-books-api/internal/domain/entity"

// FromEmpresa converte a entidade no resumo de exibição.
func FromEmpresa(e *entity.Empresa) EmpresaResumoDTO {
	return EmpresaResumoDTO{
		ID:            e.ID,
		NomeCompleto:  e.NomeCompleto,
		NomeAbreviado: e.NomeAbreviado,
		EmailGestor:   e.EmailGestor,
		Status:        e.Status,
	}
}

// FromEmpresas converte preservando a ordem; nunca devolve nil.
func FromEmpresas(list []*entity.Empresa) []EmpresaResumoDTO {
	out := make([]EmpresaResumoDTO, 0, len(list))
	for _, e := range list {
		out = append(out, FromEmpresa(e))
	}
	return out
}

// FromColaborador converte a entidade no resumo de exibição.
func FromColaborador(c *entity.Colaborador) ColaboradorResumoDTO {
	return ColaboradorResumoDTO{
		ID:           c.ID,
		NomeCompleto: c.NomeCompleto,
		Email:        c.Email,
		Status:       c.Status,
	}
}

// FromHistorico converte um disparo com seus snapshots.
func FromHistorico(h *entity.HistoricoDisparo) HistoricoDisparoDTO {
	out := HistoricoDisparoDTO{
		ID:            h.ID,
		EmpresaID:     h.EmpresaID,
		ColaboradorID: h.ColaboradorID,
		DataDisparo:   h.DataDisparo,
		Status:        h.Status,
		Assunto:       h.Assunto,
		ErroDetalhes:  h.ErroDetalhes,
		EmailsCC:      h.EmailsCC,
	}
	if h.Empresa != nil {
		e := FromEmpresa(h.Empresa)
		out.Empresa = &e
	}
	if h.Colaborador != nil {
		c := FromColaborador(h.Colaborador)
		out.Colaborador = &c
	}
	return out
}

// FromHistoricos converte preservando a ordem; nunca devolve nil.
func FromHistoricos(list []*entity.HistoricoDisparo) []HistoricoDisparoDTO {
	out := make([]HistoricoDisparoDTO, 0, len(list))
	for _, h := range list {
		out = append(out, FromHistorico(h))
	}
	return out
}

// FromControleMensal converte o controle mensal.
func FromControleMensal(c *entity.ControleMensal) ControleMensalDTO {
	out := ControleMensalDTO{
		ID:                c.ID,
		EmpresaID:         c.EmpresaID,
		Mes:               c.Mes,
		Ano:               c.Ano,
		Status:            c.Status,
		DataProcessamento: c.DataProcessamento,
		Observacoes:       c.Observacoes,
	}
	if c.Empresa != nil {
		e := FromEmpresa(c.Empresa)
		out.Empresa = &e
	}
	return out
}

// FromControlesMensais converte preservando a ordem; nunca devolve nil.
func FromControlesMensais(list []*entity.ControleMensal) []ControleMensalDTO {
	out := make([]ControleMensalDTO, 0, len(list))
	for _, c := range list {
		out = append(out, FromControleMensal(c))
	}
	return out
}
