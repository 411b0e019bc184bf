package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercados-api/internal/application/analytics"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// StatsHandler expone el snapshot de estadísticas y el reporte PDF.
type StatsHandler struct {
	stats  *analytics.StatsUseCase
	report *analytics.ReportUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(stats *analytics.StatsUseCase, report *analytics.ReportUseCase) *StatsHandler {
	return &StatsHandler{stats: stats, report: report}
}

// Global godoc
// @Summary      Estadísticas globales del directorio
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  stats.Snapshot
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stats [get]
func (h *StatsHandler) Global(c *fiber.Ctx) error {
	snap, err := h.stats.Global(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// Market godoc
// @Summary      Estadísticas de un mercado
// @Description  Un gestor obtiene las de su mercado; un ADMIN indica market_id.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        market_id  query  string  false  "ID del mercado (solo ADMIN)"
// @Success      200  {object}  stats.Snapshot
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/stats [get]
func (h *StatsHandler) Market(c *fiber.Ctx) error {
	snap, err := h.stats.ForMarket(c.UserContext(), GetUserID(c), entity.Role(GetRole(c)), c.Query("market_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// Report godoc
// @Summary      Reporte PDF de estadísticas globales
// @Tags         stats
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stats/report.pdf [get]
func (h *StatsHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.report.GlobalReport(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	name := fmt.Sprintf("estadisticas-%s.pdf", h.stats.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}
