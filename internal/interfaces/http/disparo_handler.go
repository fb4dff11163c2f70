package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-books-api/internal/application/disparo"
	"github.com/jhoicas/painel-books-api/internal/application/dto"
)

// DisparoHandler registra disparos de books.
type DisparoHandler struct {
	uc *disparo.RegistrarUseCase
}

// NewDisparoHandler constrói o handler.
func NewDisparoHandler(uc *disparo.RegistrarUseCase) *DisparoHandler {
	return &DisparoHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registra um disparo de book
// @Description  Grava o histórico e atualiza o controle mensal da empresa na mesma transação.
// @Tags         disparos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegistrarDisparoRequest  true  "Disparo"
// @Success      201   {object}  dto.RegistrarDisparoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/disparos [post]
func (h *DisparoHandler) Registrar(c *fiber.Ctx) error {
	var req dto.RegistrarDisparoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo JSON inválido")
	}
	out, err := h.uc.Registrar(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
