package simulation

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	quoteSheet = "Orçamento"
	xlsxType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportXLSX writes q as a spreadsheet: one row per quoted line followed by
// its components indented in the description column, then the totals.
func ExportXLSX(q *Quote) (*Export, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), quoteSheet); err != nil {
		return nil, errors.Wrap(err, "name sheet")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "create style")
	}
	moneyFmt := "#,##0.00"
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, errors.Wrap(err, "create style")
	}

	w := &sheetWriter{f: f, sheet: quoteSheet}
	if q.Title != "" {
		w.row(q.Title)
		w.style("A", "A", bold)
		w.next()
	}

	w.row("Descrição", "Qtd", "Unitário", "Total")
	w.style("A", "D", bold)
	for _, it := range q.Items {
		w.row(it.ProductName, num(it.Quantity), num(it.UnitPrice), num(it.TotalPrice))
		w.style("C", "D", currency)
		for _, c := range it.Components {
			w.row("    "+c.ProductName, num(c.Quantity))
		}
	}
	w.next()

	w.total("Subtotal", q.Totals.Subtotal, currency)
	if q.Totals.AdditionAmount.IsPositive() {
		w.total("Acréscimo", q.Totals.AdditionAmount, currency)
	}
	if q.Totals.DiscountAmount.IsPositive() {
		w.total("Desconto", q.Totals.DiscountAmount.Neg(), currency)
	}
	if q.Delivery {
		w.total("Taxa de entrega", q.Totals.DeliveryFee, currency)
	}
	w.total("Total", q.Totals.Total, currency)
	w.style("A", "A", bold)

	if w.err != nil {
		return nil, errors.Wrap(w.err, "write quote sheet")
	}
	if err := f.SetColWidth(quoteSheet, "A", "A", 40); err != nil {
		return nil, errors.Wrap(err, "size columns")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "encode xlsx")
	}
	return &Export{
		Filename:    "orcamento.xlsx",
		ContentType: xlsxType,
		Content:     buf.Bytes(),
	}, nil
}

// sheetWriter appends rows and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	line  int
	err   error
}

func (w *sheetWriter) next() { w.line++ }

func (w *sheetWriter) row(values ...interface{}) {
	w.line++
	if w.err != nil {
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, fmt.Sprintf("A%d", w.line), &values)
}

func (w *sheetWriter) style(from, to string, style int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, fmt.Sprintf("%s%d", from, w.line), fmt.Sprintf("%s%d", to, w.line), style)
}

func (w *sheetWriter) total(label string, value decimal.Decimal, style int) {
	w.row(label, nil, nil, num(value))
	w.style("D", "D", style)
}

func num(d decimal.Decimal) float64 { return d.InexactFloat64() }
