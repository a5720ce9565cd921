// Package pdf implementa la representación imprimible de una orden de compra
// para enviar al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  N° Orden + Fechas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + contacto                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Insumo | Costo Unit. | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE LA ORDEN                                           │
//	│  FOOTER: condiciones de entrega                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinventory "github.com/jhoicas/cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 64, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPOGenerator implementa inventory.PurchaseOrderPDFGenerator usando Maroto v2.
type MarotoPOGenerator struct {
	businessName string
}

// NewMarotoPOGenerator construye el generador con el nombre del negocio para
// el encabezado.
func NewMarotoPOGenerator(businessName string) *MarotoPOGenerator {
	return &MarotoPOGenerator{businessName: businessName}
}

// GeneratePurchaseOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPOGenerator) GeneratePurchaseOrderPDF(
	_ context.Context,
	po *entity.PurchaseOrder,
	supplier *entity.Supplier,
	lines []appinventory.POLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra "+po.OrderNumber, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(po, g.businessName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(po))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(po))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y N° de orden + fechas (der).
func headerRow(po *entity.PurchaseOrder, businessName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden de compra a proveedor", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(po.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(
				fmt.Sprintf("Emitida: %s   Entrega: %s",
					po.OrderDate.Format("02/01/2006"),
					po.ExpectedDelivery.Format("02/01/2006")),
				props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray},
			),
		),
	)
}

// supplierRow: datos del proveedor destinatario.
func supplierRow(supplier *entity.Supplier) core.Row {
	name, contact := "—", "—"
	if supplier != nil {
		name = supplier.Name
		contact = fmt.Sprintf("Contacto: %s   |   Tel: %s   |   Email: %s",
			nonEmpty(supplier.Contact, "—"),
			nonEmpty(supplier.Phone, "—"),
			nonEmpty(supplier.Email, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Insumo", 5, align.Left),
		h("Costo Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de la orden.
func tableLineRows(lines []appinventory.POLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := l.Quantity.String()
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				qty,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ItemName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+l.TotalCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total de la orden alineado a la derecha.
func totalRow(po *entity.PurchaseOrder) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DE LA ORDEN:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+po.TotalAmount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: condiciones de entrega.
func footerRow(po *entity.PurchaseOrder) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf(
				"Entregar a más tardar el %s. Citar el número de orden %s en la remisión y la factura.",
				po.ExpectedDelivery.Format("02/01/2006"), po.OrderNumber,
			),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
