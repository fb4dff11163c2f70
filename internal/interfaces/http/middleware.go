package http

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-books-api/internal/application/dto"
)

// RequestLogger registra método, rota, status e latência de cada requisição.
// Respostas 5xx saem em nível error, 4xx em warn.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Aplica o ErrorHandler antes de ler o status final.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(chainErr)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("ip", c.IP()).
			Dur("latency", time.Since(start)).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Msg("request")
		return nil
	}
}

// Recovery converte panics em 500 e registra a pilha.
func Recovery(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("panic", fmt.Sprint(r)).
					Str("stack", string(debug.Stack())).
					Str("path", c.Path()).
					Msg("panic recuperado")
				err = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Code: "INTERNAL", Message: "erro interno do servidor",
				})
			}
		}()
		return c.Next()
	}
}
