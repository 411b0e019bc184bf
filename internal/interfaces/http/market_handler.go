package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/application/usecase"
)

// MarketHandler maneja el directorio de mercados.
type MarketHandler struct {
	uc *usecase.MarketUseCase
}

// NewMarketHandler construye el handler.
func NewMarketHandler(uc *usecase.MarketUseCase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// List godoc
// @Summary      Listar mercados
// @Tags         markets
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por nombre o municipio (sin tildes)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MarketListResponse
// @Router       /api/markets [get]
func (h *MarketHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), dto.MarketListRequest{
		PageRequest: pageFromQuery(c),
		Query:       c.Query("q"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener mercado con horarios
// @Tags         markets
// @Produce      json
// @Param        id   path  string  true  "ID del mercado"
// @Success      200  {object}  dto.MarketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/markets/{id} [get]
func (h *MarketHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Mercado del gestor autenticado
// @Tags         markets
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/markets/mine [get]
func (h *MarketHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.Mine(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear mercado
// @Tags         markets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMarketRequest  true  "Datos del mercado"
// @Success      201   {object}  dto.MarketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/markets [post]
func (h *MarketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMarketRequest
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
// @Summary      Actualizar mercado
// @Tags         markets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del mercado"
// @Param        body  body  dto.UpdateMarketRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MarketResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/markets/{id} [put]
func (h *MarketHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMarketRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar mercado (y en cascada productos, comentarios y horarios)
// @Tags         markets
// @Security     Bearer
// @Param        id   path  string  true  "ID del mercado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/markets/{id} [delete]
func (h *MarketHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReplaceSchedules godoc
// @Summary      Reemplazar horarios del mercado
// @Tags         markets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del mercado"
// @Param        body  body  dto.ReplaceSchedulesRequest  true  "Horarios"
// @Success      200   {array}   dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/markets/{id}/schedules [put]
func (h *MarketHandler) ReplaceSchedules(c *fiber.Ctx) error {
	var in dto.ReplaceSchedulesRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ReplaceSchedules(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadImage godoc
// @Summary      Subir imagen del mercado
// @Tags         markets
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID del mercado"
// @Param        image  formData  file    true  "JPEG, PNG o WebP (máx. 5 MB)"
// @Success      200    {object}  dto.MarketResponse
// @Failure      415    {object}  dto.ErrorResponse
// @Failure      503    {object}  dto.ErrorResponse
// @Router       /api/markets/{id}/image [post]
func (h *MarketHandler) UploadImage(c *fiber.Ctx) error {
	data, err := readImage(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UploadImage(c.UserContext(), actor(c), c.Params("id"), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Catalog godoc
// @Summary      Catálogo XML del mercado
// @Description  Productos disponibles del mercado. Responde 304 si If-None-Match coincide con el ETag.
// @Tags         markets
// @Produce      xml
// @Param        id   path  string  true  "ID del mercado"
// @Success      200
// @Success      304
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/markets/{id}/catalog.xml [get]
func (h *MarketHandler) Catalog(c *fiber.Ctx) error {
	body, etag, err := h.uc.Catalog(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderETag, etag)
	c.Set(fiber.HeaderCacheControl, "public, max-age=60")
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(body)
}
