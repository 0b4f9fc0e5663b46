package infra

// pdf.go — expense report export using go-pdf/fpdf.
// Renders the monthly (or arbitrary-range) expense report as an A4 PDF:
//   - Title with the covered date range
//   - Summary block (purchases, total, average, active workers)
//   - Per-worker table (purchases, total spent, last purchase)
//   - Per-product table
// The output file is saved to storagePath/reporte_{inicio}_{fin}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateReporteGastosPDF writes the expense report to disk and returns
// the absolute path of the generated file.
func GenerateReporteGastosPDF(rep *dto.ReporteGastosResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_%s_%s.pdf", rep.FechaInicio, rep.FechaFin)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Reporte de Gastos", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Periodo: %s a %s", rep.FechaInicio, rep.FechaFin), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Summary ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Resumen", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	resumen := [][2]string{
		{"Total de compras", fmt.Sprintf("%d", rep.Resumen.TotalCompras)},
		{"Gasto total", "$ " + rep.Resumen.GastoTotal.StringFixed(2)},
		{"Gasto promedio", "$ " + rep.Resumen.GastoPromedio.StringFixed(2)},
		{"Trabajadores con compras", fmt.Sprintf("%d", rep.Resumen.TrabajadoresActivos)},
		{"Productos comprados", fmt.Sprintf("%d", rep.Resumen.ProductosComprados)},
	}
	for _, row := range resumen {
		pdf.CellFormat(70, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Per-worker table ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Gastos por trabajador", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(70, 6, "Trabajador", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Compras", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 6, "Ultima compra", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, g := range rep.PorTrabajador {
		ultima := "-"
		if g.UltimaCompra != nil {
			ultima = *g.UltimaCompra
		}
		pdf.CellFormat(70, 6, g.Nombre, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", g.TotalCompras), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, "$ "+g.TotalGastado.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, ultima, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Per-product table ────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Gastos por producto", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(95, 6, "Producto", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Compras", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Total", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, g := range rep.PorProducto {
		pdf.CellFormat(95, 6, g.Nombre, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", g.TotalCompras), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, "$ "+g.TotalGastado.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
