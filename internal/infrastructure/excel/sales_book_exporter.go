// Package excel genera el libro de ventas en formato XLSX con excelize.
package excel

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/domain/entity"
)

var _ billing.SalesBookExporter = (*SalesBookExporter)(nil)

// SalesBookExporter implementa billing.SalesBookExporter sobre excelize.
type SalesBookExporter struct{}

// NewSalesBookExporter construye el exportador.
func NewSalesBookExporter() *SalesBookExporter { return &SalesBookExporter{} }

const sheetName = "Libro de Ventas"

// Export arma el XLSX: encabezado de la empresa y el período, una fila por
// documento emitido (los anulados con montos en cero) y la fila de totales.
func (e *SalesBookExporter) Export(company *entity.Company, rows []billing.SalesBookRow, desde, hasta time.Time) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	_ = f.SetCellValue(sheetName, "A1", "LIBRO DE VENTAS")
	_ = f.SetCellValue(sheetName, "A2", company.Name)
	_ = f.SetCellValue(sheetName, "B2", "RIF: "+company.RIF)
	_ = f.SetCellValue(sheetName, "A3", fmt.Sprintf("Período: %s al %s",
		desde.Format("02/01/2006"), hasta.Format("02/01/2006")))

	headers := []string{
		"Fecha", "Tipo", "N° Documento", "N° Control", "RIF Cliente", "Cliente",
		"Base General (G)", "Base Reducida (R)", "Base Adicional (A)", "Exento/No Sujeto",
		"IVA", "IGTF", "Total", "Estado",
	}
	const headerRow = 5
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	var totGeneral, totReducida, totAdicional, totExento, totIVA, totIGTF, totTotal decimal.Decimal
	for i, r := range rows {
		rowNum := headerRow + 1 + i
		estado := "EMITIDA"
		if r.Anulado {
			estado = "ANULADA"
		}
		set := func(colIdx int, v interface{}) {
			cell, _ := excelize.CoordinatesToCellName(colIdx, rowNum)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		set(1, r.Fecha.Format("02/01/2006"))
		set(2, r.Tipo)
		set(3, r.Numero)
		set(4, r.NumeroControl)
		set(5, r.ClienteRIF)
		set(6, r.ClienteNombre)
		set(7, toFloat(r.BaseGeneral))
		set(8, toFloat(r.BaseReducida))
		set(9, toFloat(r.BaseAdicional))
		set(10, toFloat(r.Exento))
		set(11, toFloat(r.TotalIVA))
		set(12, toFloat(r.TotalIGTF))
		set(13, toFloat(r.Total))
		set(14, estado)

		totGeneral = totGeneral.Add(r.BaseGeneral)
		totReducida = totReducida.Add(r.BaseReducida)
		totAdicional = totAdicional.Add(r.BaseAdicional)
		totExento = totExento.Add(r.Exento)
		totIVA = totIVA.Add(r.TotalIVA)
		totIGTF = totIGTF.Add(r.TotalIGTF)
		totTotal = totTotal.Add(r.Total)
	}

	totalRow := headerRow + 1 + len(rows)
	setTot := func(colIdx int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(colIdx, totalRow)
		_ = f.SetCellValue(sheetName, cell, v)
	}
	setTot(6, "TOTALES")
	setTot(7, toFloat(totGeneral))
	setTot(8, toFloat(totReducida))
	setTot(9, toFloat(totAdicional))
	setTot(10, toFloat(totExento))
	setTot(11, toFloat(totIVA))
	setTot(12, toFloat(totIGTF))
	setTot(13, toFloat(totTotal))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro de ventas: %w", err)
	}
	return buf.Bytes(), nil
}

// toFloat convierte a float64 para la celda. El libro es un reporte: los
// montos autoritativos viven en la base de datos como decimales exactos.
func toFloat(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}
