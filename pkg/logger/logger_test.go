package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-books-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verboso"))
}

func TestNew_JSONComComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", App: "painel-books", Output: &buf})

	l.Debug().Msg("não deve sair")
	cl := l.Component("relatorio")
	cl.Info().Int("mes", 3).Msg("métricas calculadas")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "apenas uma linha JSON esperada")
	assert.Equal(t, "painel-books", entry["app"])
	assert.Equal(t, "relatorio", entry["component"])
	assert.Equal(t, "métricas calculadas", entry["message"])
	assert.EqualValues(t, 3, entry["mes"])
}
