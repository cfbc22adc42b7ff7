package preparation

import (
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/shopspring/decimal"
)

// PickLine is one thing to take off the shelf: a simple sale item, one
// expanded component of a composite item, or a composite item that has no
// components to expand.
type PickLine struct {
	Key         string
	SaleItemID  string
	ProductID   string
	ProductName string
	// ParentName is the composite item the component belongs to.
	ParentName string
	Required   decimal.Decimal
	Picked     decimal.Decimal
}

func (l PickLine) Done() bool {
	return l.Picked.GreaterThanOrEqual(l.Required)
}

type Checklist struct {
	Sale  *model.Sale
	Lines []PickLine
}

// Complete is true when every line is done. A sale without lines is never
// complete.
func (c *Checklist) Complete() bool {
	if len(c.Lines) == 0 {
		return false
	}
	for _, l := range c.Lines {
		if !l.Done() {
			return false
		}
	}
	return true
}

func (c *Checklist) Line(key string) (PickLine, bool) {
	for _, l := range c.Lines {
		if l.Key == key {
			return l, true
		}
	}
	return PickLine{}, false
}

// BuildChecklist lists the pick lines of s, whose composite items must
// already be expanded, filled with the picked quantities.
func BuildChecklist(s *model.Sale, picked map[string]decimal.Decimal) *Checklist {
	c := &Checklist{Sale: s}
	for _, it := range s.Items {
		if !it.IsComposite || len(it.Components) == 0 {
			c.Lines = append(c.Lines, PickLine{
				Key:         it.ID,
				SaleItemID:  it.ID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Required:    it.Quantity,
				Picked:      picked[it.ID],
			})
			continue
		}
		for _, comp := range it.Components {
			key := ComponentKey(it.ID, comp.ProductID)
			c.Lines = append(c.Lines, PickLine{
				Key:         key,
				SaleItemID:  it.ID,
				ProductID:   comp.ProductID,
				ProductName: comp.ProductName,
				ParentName:  it.ProductName,
				Required:    comp.Quantity,
				Picked:      picked[key],
			})
		}
	}
	return c
}

func ComponentKey(saleItemID, productID string) string {
	return saleItemID + ":" + productID
}

// Clamp bounds qty to [0, required].
func Clamp(qty, required decimal.Decimal) decimal.Decimal {
	if qty.IsNegative() {
		return decimal.Zero
	}
	if qty.GreaterThan(required) {
		return required
	}
	return qty
}
