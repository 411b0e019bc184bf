package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/application/usecase"
)

// ProductBaseHandler catálogo de plantillas de productos.
type ProductBaseHandler struct {
	uc *usecase.ProductBaseUseCase
}

// NewProductBaseHandler construye el handler.
func NewProductBaseHandler(uc *usecase.ProductBaseUseCase) *ProductBaseHandler {
	return &ProductBaseHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogo de productos base
// @Tags         product-bases
// @Produce      json
// @Param        category  query  string  false  "Categoría"
// @Success      200       {array}   dto.ProductBaseResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/product-bases [get]
func (h *ProductBaseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto base
// @Tags         product-bases
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.ProductBaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-bases/{id} [get]
func (h *ProductBaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto base
// @Tags         product-bases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductBaseRequest  true  "Plantilla"
// @Success      201   {object}  dto.ProductBaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/product-bases [post]
func (h *ProductBaseHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductBaseRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto base
// @Tags         product-bases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la plantilla"
// @Param        body  body  dto.ProductBaseRequest  true  "Plantilla"
// @Success      200   {object}  dto.ProductBaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product-bases/{id} [put]
func (h *ProductBaseHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductBaseRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto base
// @Tags         product-bases
// @Security     Bearer
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-bases/{id} [delete]
func (h *ProductBaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
