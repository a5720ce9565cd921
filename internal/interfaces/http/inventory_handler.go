package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/cafeteria-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de materias primas, lotes y
// escaneos del monitor de stock.
type InventoryHandler struct {
	items   *inventory.ItemsUseCase
	monitor *inventory.StockMonitorUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(items *inventory.ItemsUseCase, monitor *inventory.StockMonitorUseCase) *InventoryHandler {
	return &InventoryHandler{items: items, monitor: monitor}
}

// ListItems devuelve las materias primas paginadas.
// GET /api/inventory/items?limit=&offset=
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.items.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InventoryItemDTO, 0, len(list))
	for _, it := range list {
		out = append(out, dto.FromInventoryItem(it))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// GetItem obtiene el detalle de una materia prima.
// GET /api/inventory/items/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.items.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "materia prima no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromInventoryItem(item))
}

// ScanLowStock godoc
// @Summary      Escanear stock bajo y agotado
// @Description  Clasifica las materias primas en stock bajo y agotadas, y
//
//	levanta alertas deduplicadas. Idempotente dentro de la ventana
//	de deduplicación: ejecutarlo de nuevo no duplica alertas.
//
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ScanResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/scan/low-stock [post]
func (h *InventoryHandler) ScanLowStock(c *fiber.Ctx) error {
	result, err := h.monitor.ScanLowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := dto.ScanResponse{
		LowStock:   make([]dto.InventoryItemDTO, 0, len(result.LowStock)),
		OutOfStock: make([]dto.InventoryItemDTO, 0, len(result.OutOfStock)),
	}
	for _, it := range result.LowStock {
		resp.LowStock = append(resp.LowStock, dto.FromInventoryItem(it))
	}
	for _, it := range result.OutOfStock {
		resp.OutOfStock = append(resp.OutOfStock, dto.FromInventoryItem(it))
	}
	return c.JSON(resp)
}

// ScanExpiring godoc
// @Summary      Escanear lotes por vencer
// @Description  Marca los lotes ya vencidos y devuelve los que vencen dentro
//
//	del horizonte dado, levantando alertas para los más próximos.
//
// @Tags         inventory
// @Produce      json
// @Param        days  query  int  false  "Horizonte en días (por defecto 30)"
// @Success      200  {array}   dto.BatchDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/scan/expiring [post]
func (h *InventoryHandler) ScanExpiring(c *fiber.Ctx) error {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days inválido"})
		}
		days = n
	}
	batches, err := h.monitor.ScanExpiring(c.Context(), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BatchDTO, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchDTO{
			ID:          b.ID,
			ItemID:      b.ItemID,
			ItemName:    b.ItemName,
			BatchNumber: b.BatchNumber,
			Quantity:    b.Quantity,
			ExpiryDate:  b.ExpiryDate,
			Status:      b.Status,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "batches": out})
}

// CreateBatch registra un lote nuevo de una materia prima.
// POST /api/inventory/batches
func (h *InventoryHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.items.RegisterBatch(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "materia prima no encontrada"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "número de lote duplicado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchDTO{
		ID:          batch.ID,
		ItemID:      batch.ItemID,
		ItemName:    batch.ItemName,
		BatchNumber: batch.BatchNumber,
		Quantity:    batch.Quantity,
		ExpiryDate:  batch.ExpiryDate,
		Status:      batch.Status,
	})
}
