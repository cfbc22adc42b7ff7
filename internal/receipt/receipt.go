// Package receipt renders sales and quotes as fixed-width text for thermal
// printers.
package receipt

import (
	"strings"
	"unicode/utf8"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/money"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/pkg/i18n"
	"github.com/shopspring/decimal"
)

const (
	DefaultWidth = 40
	MinWidth     = 24
	MaxWidth     = 80

	componentIndent = "   "
	dateLayout      = "02/01/2006 15:04"
)

type Options struct {
	Width int
	// Lang is an Accept-Language value; empty means the default language.
	Lang string
	// Header is printed centered on the first line, e.g. the store name.
	Header string
}

func (o Options) width() int {
	switch {
	case o.Width <= 0:
		return DefaultWidth
	case o.Width < MinWidth:
		return MinWidth
	case o.Width > MaxWidth:
		return MaxWidth
	}
	return o.Width
}

// Sale renders a complete receipt: header, lines with their expanded
// components, totals, delivery block and the progress indicator.
func Sale(s *model.Sale, opts Options) string {
	w := newWriter(opts)
	w.header()
	w.text(w.t("receipt_order", map[string]interface{}{"ID": shortID(s.ID)}))
	w.text(s.CreatedAt.Format(dateLayout))
	if s.IsDelivery() {
		w.text(w.t("receipt_delivery", nil))
	} else {
		w.text(w.t("receipt_pickup", nil))
	}

	w.rule()
	w.items(s.Items)
	w.rule()
	w.totals(sale.Totals{
		Subtotal:       s.Subtotal,
		AdditionAmount: s.AdditionAmount,
		DiscountAmount: s.DiscountAmount,
		DeliveryFee:    s.DeliveryFee,
		Total:          s.Total,
	}, s.IsDelivery())
	w.text(w.t("receipt_payment", map[string]interface{}{"Method": w.t("payment_"+string(s.PaymentMethod), nil)}))
	if s.Notes != nil && *s.Notes != "" {
		w.wrap(*s.Notes)
	}

	if s.Delivery != nil {
		w.rule()
		w.delivery(s.Delivery)
	}

	w.rule()
	w.progress(s.Status)
	return w.String()
}

// Quote renders an unsaved price quote.
func Quote(title string, items []model.SaleItem, totals sale.Totals, delivery bool, opts Options) string {
	w := newWriter(opts)
	w.header()
	if title == "" {
		title = w.t("receipt_quote", nil)
	}
	w.center(title)
	w.rule()
	w.items(items)
	w.rule()
	w.totals(totals, delivery)
	return w.String()
}

type writer struct {
	b     strings.Builder
	width int
	opts  Options
}

func newWriter(opts Options) *writer {
	return &writer{width: opts.width(), opts: opts}
}

func (w *writer) String() string { return w.b.String() }

func (w *writer) t(id string, data map[string]interface{}) string {
	if w.opts.Lang == "" {
		return i18n.T(id, data)
	}
	return i18n.T(id, data, w.opts.Lang)
}

func (w *writer) header() {
	if w.opts.Header != "" {
		w.center(w.opts.Header)
	}
}

func (w *writer) text(s string) {
	w.b.WriteString(truncate(s, w.width))
	w.b.WriteByte('\n')
}

func (w *writer) center(s string) {
	s = truncate(s, w.width)
	pad := (w.width - utf8.RuneCountInString(s)) / 2
	w.text(strings.Repeat(" ", pad) + s)
}

func (w *writer) rule() {
	w.text(strings.Repeat("-", w.width))
}

// pair prints left and right on one line, right-aligned, truncating left
// when both do not fit.
func (w *writer) pair(left, right string) {
	room := w.width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		w.text(right)
		return
	}
	left = truncate(left, room)
	gap := w.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	w.text(left + strings.Repeat(" ", gap) + right)
}

func (w *writer) wrap(s string) {
	line := ""
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= w.width:
			line += " " + word
		default:
			w.text(line)
			line = word
		}
	}
	if line != "" {
		w.text(line)
	}
}

func (w *writer) items(items []model.SaleItem) {
	for _, it := range items {
		w.pair(quantity(it.Quantity)+"x "+it.ProductName, money.FormatCurrency(it.TotalPrice))
		for _, c := range it.Components {
			w.text(componentIndent + quantity(c.Quantity) + "x " + c.ProductName)
		}
	}
}

func (w *writer) totals(t sale.Totals, delivery bool) {
	w.pair(w.t("receipt_subtotal", nil), money.FormatCurrency(t.Subtotal))
	if t.AdditionAmount.IsPositive() {
		w.pair(w.t("receipt_addition", nil), money.FormatCurrency(t.AdditionAmount))
	}
	if t.DiscountAmount.IsPositive() {
		w.pair(w.t("receipt_discount", nil), money.FormatCurrency(t.DiscountAmount.Neg()))
	}
	if delivery {
		w.pair(w.t("receipt_delivery_fee", nil), money.FormatCurrency(t.DeliveryFee))
	}
	w.pair(w.t("receipt_total", nil), money.FormatCurrency(t.Total))
}

func (w *writer) delivery(d *model.DeliveryInfo) {
	w.text(d.CustomerName)
	w.text(d.CustomerPhone)
	address := d.Street + ", " + d.Number
	if d.Complement != nil && *d.Complement != "" {
		address += " " + *d.Complement
	}
	w.wrap(address + " - " + d.Neighborhood)
	w.text(d.City + "/" + d.State + " " + d.ZipCode)
	if d.DeliveryDate != nil {
		when := d.DeliveryDate.Format("02/01/2006")
		if d.DeliveryTime != nil {
			when += " " + *d.DeliveryTime
		}
		w.text(when)
	}
	for _, extra := range []*string{d.AdditionalInfo, d.From, d.To} {
		if extra != nil && *extra != "" {
			w.wrap(*extra)
		}
	}
}

// progress prints one line per step of the reduced status sequence, marking
// the steps already reached. Statuses off that track print their label.
func (w *writer) progress(s orderstatus.Status) {
	step := orderstatus.ProgressStep(s)
	if step < 0 {
		w.text(w.t("receipt_status", map[string]interface{}{"Label": s.Label()}))
		return
	}
	for i, st := range orderstatus.ProgressSteps() {
		mark := "[ ] "
		if i <= step {
			mark = "[x] "
		}
		w.text(mark + st.Label())
	}
}

func quantity(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
