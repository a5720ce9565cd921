package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/cafeteria-api/internal/domain"
)

// AlertHandler maneja las peticiones HTTP de alertas de inventario.
type AlertHandler struct {
	alerts *inventory.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(alerts *inventory.AlertUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListUnresolved godoc
// @Summary      Alertas sin resolver
// @Tags         alerts
// @Produce      json
// @Param        limit  query  int  false  "Máximo de alertas (por defecto 50, tope 200)"
// @Success      200  {array}   dto.AlertDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) ListUnresolved(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	list, err := h.alerts.ListUnresolved(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AlertDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.FromAlert(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

// Resolve marca una alerta como resuelta. Resolver dos veces es idempotente.
// POST /api/alerts/:id/resolve
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	if err := h.alerts.Resolve(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "alerta resuelta"})
}
