package relatorio

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operacoesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "painel_books",
			Subsystem: "relatorio",
			Name:      "operacoes_total",
			Help:      "Total de operações do agregador de relatórios.",
		},
		[]string{"operacao", "resultado"}, // resultado="ok" | "erro"
	)

	operacaoDuracao = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "painel_books",
			Subsystem: "relatorio",
			Name:      "operacao_duracao_segundos",
			Help:      "Duração das operações do agregador de relatórios.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operacao"},
	)
)

func observar(operacao string, inicio time.Time, err error) {
	resultado := "ok"
	if err != nil {
		resultado = "erro"
	}
	operacoesTotal.WithLabelValues(operacao, resultado).Inc()
	operacaoDuracao.WithLabelValues(operacao).Observe(time.Since(inicio).Seconds())
}
