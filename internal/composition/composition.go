// Package composition prices composite products from their components and
// expands sold composite lines into their parts.
//
// Every function returns a fresh slice and leaves its input untouched, so an
// editing session can keep the previous list around until a write succeeds.
package composition

import (
	"errors"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyInComposition = errors.New("product is already part of the composition")
	ErrNestedComposition    = errors.New("a composition cannot be a component of another composition")
	ErrSelfReference        = errors.New("a product cannot be a component of itself")
	ErrInvalidQuantity      = errors.New("component quantity must be greater than zero")
	ErrNotInComposition     = errors.New("product is not part of the composition")
)

// ValidateQuantity rejects zero and negative component quantities.
func ValidateQuantity(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	return nil
}

// Contains reports whether productID is already a component.
func Contains(list []model.Component, productID string) bool {
	return indexOf(list, productID) >= 0
}

// Add appends candidate with qty. A product that is already present is
// refused rather than merged.
func Add(list []model.Component, candidate model.Product, qty decimal.Decimal) ([]model.Component, error) {
	if Contains(list, candidate.ID) {
		return list, ErrAlreadyInComposition
	}
	if candidate.IsComposition {
		return list, ErrNestedComposition
	}
	if err := ValidateQuantity(qty); err != nil {
		return list, err
	}

	out := make([]model.Component, len(list), len(list)+1)
	copy(out, list)
	return append(out, model.Component{Product: candidate, Quantity: qty}), nil
}

// Remove drops productID from the list. Absent products are ignored.
func Remove(list []model.Component, productID string) []model.Component {
	out := make([]model.Component, 0, len(list))
	for _, c := range list {
		if c.Product.ID != productID {
			out = append(out, c)
		}
	}
	return out
}

// SetQuantity replaces the quantity of productID.
func SetQuantity(list []model.Component, productID string, qty decimal.Decimal) ([]model.Component, error) {
	i := indexOf(list, productID)
	if i < 0 {
		return list, ErrNotInComposition
	}
	if err := ValidateQuantity(qty); err != nil {
		return list, err
	}

	out := make([]model.Component, len(list))
	copy(out, list)
	out[i].Quantity = qty
	return out, nil
}

// Cost sums component cost × quantity. It is recomputed from scratch on
// every call.
func Cost(list []model.Component) decimal.Decimal {
	total := decimal.Zero
	for _, c := range list {
		total = total.Add(c.Product.CostPrice.Mul(c.Quantity))
	}
	return total
}

// SalePrice is the price a composite sells for: override when given,
// otherwise the component cost. An empty composition costs and sells at zero.
func SalePrice(list []model.Component, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return Cost(list)
}

// Relations converts the list into rows owned by parentID.
func Relations(parentID string, list []model.Component) []model.ComponentRelation {
	out := make([]model.ComponentRelation, len(list))
	for i, c := range list {
		out[i] = model.ComponentRelation{
			ParentProductID:    parentID,
			ComponentProductID: c.Product.ID,
			Quantity:           c.Quantity,
		}
	}
	return out
}

// Join pairs stored relations with their component products. Relations whose
// product is missing from products keep an identifier-only product.
func Join(relations []model.ComponentRelation, products map[string]model.Product) []model.Component {
	out := make([]model.Component, len(relations))
	for i, r := range relations {
		p, ok := products[r.ComponentProductID]
		if !ok {
			p = model.Product{BaseModel: model.BaseModel{ID: r.ComponentProductID}}
		}
		out[i] = model.Component{Product: p, Quantity: r.Quantity}
	}
	return out
}

// ExpandSaleItem scales each component of a composite sale item by the sold
// quantity and prices it at the component's cost.
func ExpandSaleItem(item model.SaleItem, components []model.Component) []model.ExpandedComponent {
	out := make([]model.ExpandedComponent, len(components))
	for i, c := range components {
		qty := c.Quantity.Mul(item.Quantity)
		out[i] = model.ExpandedComponent{
			ProductID:   c.Product.ID,
			ProductName: c.Product.Name,
			Quantity:    qty,
			UnitPrice:   c.Product.CostPrice,
			TotalPrice:  qty.Mul(c.Product.CostPrice),
		}
	}
	return out
}

// ComponentIDs lists the product identifiers referenced by relations.
func ComponentIDs(relations []model.ComponentRelation) []string {
	ids := make([]string, 0, len(relations))
	seen := make(map[string]bool, len(relations))
	for _, r := range relations {
		if !seen[r.ComponentProductID] {
			seen[r.ComponentProductID] = true
			ids = append(ids, r.ComponentProductID)
		}
	}
	return ids
}

func indexOf(list []model.Component, productID string) int {
	for i, c := range list {
		if c.Product.ID == productID {
			return i
		}
	}
	return -1
}
