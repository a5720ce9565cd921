package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/cafeteria-api/internal/domain"
)

// PurchaseHandler maneja las peticiones HTTP de reposición: sugerencias de
// reorden y órdenes de compra.
type PurchaseHandler struct {
	reorder *inventory.ReorderUseCase
	orders  *inventory.PurchaseOrderUseCase
	pdf     *inventory.PurchaseOrderPDFUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(
	reorder *inventory.ReorderUseCase,
	orders *inventory.PurchaseOrderUseCase,
	pdf *inventory.PurchaseOrderPDFUseCase,
) *PurchaseHandler {
	return &PurchaseHandler{reorder: reorder, orders: orders, pdf: pdf}
}

// GetSuggestions godoc
// @Summary      Sugerencias de reposición
// @Description  Calcula, para cada materia prima en o bajo su punto de reorden,
//
//	la cantidad sugerida de pedido y el nivel de urgencia a partir
//	del consumo de los últimos 30 días. No persiste nada.
//
// @Tags         purchasing
// @Produce      json
// @Success      200  {array}   dto.ReorderSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reorder/suggestions [get]
func (h *PurchaseHandler) GetSuggestions(c *fiber.Ctx) error {
	list, err := h.reorder.Suggest(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "suggestions": list})
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  Crea una orden borrador a partir de líneas aceptadas de las
//
//	sugerencias de reposición. Cabecera, líneas y total se escriben
//	en una sola transacción.
//
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "supplier_id e items (item_id, quantity, unit_cost)"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	resp, err := h.orders.CreateFromSuggestions(c.Context(), in.SupplierID, in.Items)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "número de orden duplicado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID obtiene una orden de compra con sus líneas.
// GET /api/purchase-orders/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	po, poLines, err := h.orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	lines := make([]dto.PurchaseOrderLineDTO, 0, len(poLines))
	for _, l := range poLines {
		lines = append(lines, dto.PurchaseOrderLineDTO{
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			TotalCost: l.TotalCost,
		})
	}
	return c.JSON(dto.PurchaseOrderResponse{
		ID:               po.ID,
		OrderNumber:      po.OrderNumber,
		SupplierID:       po.SupplierID,
		OrderDate:        po.OrderDate,
		ExpectedDelivery: po.ExpectedDelivery,
		Status:           po.Status,
		TotalAmount:      po.TotalAmount,
		Lines:            lines,
	})
}

// GetPDF descarga la orden de compra en PDF para enviarla al proveedor.
// GET /api/purchase-orders/:id/pdf
func (h *PurchaseHandler) GetPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.pdf.Generate(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="orden-%s.pdf"`, id))
	return c.Send(data)
}
