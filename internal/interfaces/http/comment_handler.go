package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/application/usecase"
)

// CommentHandler comentarios y calificaciones.
type CommentHandler struct {
	uc *usecase.CommentUseCase
}

// NewCommentHandler construye el handler.
func NewCommentHandler(uc *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Comentarios de un producto
// @Tags         comments
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.CommentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/comments [get]
func (h *CommentHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Comentar y calificar un producto
// @Tags         comments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.CreateCommentRequest  true  "rating 1..5 y contenido (máx. 1000)"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCommentRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar comentario (autor o ADMIN)
// @Tags         comments
// @Security     Bearer
// @Param        id   path  string  true  "ID del comentario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
