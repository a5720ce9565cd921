package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/sales"
	"github.com/jhoicas/cafeteria-api/internal/domain"
)

// SalesHandler maneja las peticiones HTTP de ventas.
type SalesHandler struct {
	record   *sales.RecordSaleUseCase
	query    *sales.SaleQueryUseCase
	resolver *sales.RecipeResolver
}

// NewSalesHandler construye el handler.
func NewSalesHandler(record *sales.RecordSaleUseCase, query *sales.SaleQueryUseCase, resolver *sales.RecipeResolver) *SalesHandler {
	return &SalesHandler{record: record, query: query, resolver: resolver}
}

// RecordSale godoc
// @Summary      Registrar una venta y descontar inventario
// @Description  Persiste cabecera y líneas de forma atómica y luego descuenta
//
//	los ingredientes de cada línea según su receta. Un faltante de
//	stock no revierte la venta: se reporta en el arreglo errors.
//
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "items (product_id, quantity, unit_price), total_amount, reference opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	resp, err := h.record.RecordSale(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "referencia de venta duplicada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID obtiene una venta con sus líneas.
// GET /api/sales/:id
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	txn, err := h.query.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(txn)
}

// GetRecipe devuelve la receta (ingredientes y cantidades por unidad) de un producto.
// GET /api/products/:id/recipe
func (h *SalesHandler) GetRecipe(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	ingredients, err := h.resolver.ResolveRecipe(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"product_id":  id,
		"ingredients": ingredients,
	})
}
