// Package orderstatus holds the closed set of sale statuses, the translation
// between persisted codes and display labels, and the transition rules used
// by the sale and preparation flows.
package orderstatus

import (
	"errors"
	"fmt"
)

// Status is the persisted code of a sale status.
type Status string

const (
	Pending         Status = "pending"
	Processing      Status = "processing"
	AwaitingPayment Status = "awaiting_payment"
	Paid            Status = "paid"
	Shipped         Status = "shipped"
	Delivered       Status = "delivered"
	Canceled        Status = "canceled"
	Returned        Status = "returned"
	Refunded        Status = "refunded"
	AwaitingPickup  Status = "awaiting_pickup"
	// Packed is the ready-for-shipment state reached when a delivery order
	// finishes preparation.
	Packed Status = "packed"
)

var ErrUnknownStatus = errors.New("unknown order status")

// table is the single source for both translation directions.
var table = []struct {
	status Status
	label  string
}{
	{Pending, "Pendente"},
	{Processing, "Processando"},
	{AwaitingPayment, "Aguardando pagamento"},
	{Paid, "Pago"},
	{Shipped, "Enviado"},
	{Delivered, "Entregue"},
	{Canceled, "Cancelado"},
	{Returned, "Devolvido"},
	{Refunded, "Reembolsado"},
	{AwaitingPickup, "Aguardando retirada"},
	{Packed, "Embalado"},
}

var (
	labelByStatus = make(map[Status]string, len(table))
	statusByLabel = make(map[string]Status, len(table))
)

func init() {
	for _, e := range table {
		labelByStatus[e.status] = e.label
		statusByLabel[e.label] = e.status
	}
}

// All returns every status in display order.
func All() []Status {
	out := make([]Status, len(table))
	for i, e := range table {
		out[i] = e.status
	}
	return out
}

func (s Status) String() string { return string(s) }

// Label returns the display label, or the raw code for an unknown status.
func (s Status) Label() string {
	if l, ok := labelByStatus[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := labelByStatus[s]
	return ok
}

// Terminal reports whether the sale lifecycle has ended.
func (s Status) Terminal() bool {
	switch s {
	case Delivered, Canceled, Returned, Refunded:
		return true
	}
	return false
}

// Parse validates a persisted or API-supplied code.
func Parse(code string) (Status, error) {
	s := Status(code)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, code)
	}
	return s, nil
}

// LookupLabel finds the status whose label is exactly label.
func LookupLabel(label string) (Status, bool) {
	s, ok := statusByLabel[label]
	return s, ok
}

// FromTranslation maps a display label back to its status. Anything that is
// not an exact label match becomes Pending.
func FromTranslation(label string) Status {
	if s, ok := LookupLabel(label); ok {
		return s
	}
	return Pending
}

// Transition moves a sale to next. Any valid status may follow any other;
// only the target is checked.
func Transition(current, next Status) (Status, error) {
	if !next.Valid() {
		return current, fmt.Errorf("%w: %q", ErrUnknownStatus, string(next))
	}
	return next, nil
}

// PreparationTarget is the status a fully picked order moves to.
func PreparationTarget(delivery bool) Status {
	if delivery {
		return Packed
	}
	return AwaitingPickup
}

// AwaitingPreparation reports whether a sale belongs on the pending-orders
// board.
func AwaitingPreparation(s Status) bool {
	switch s {
	case Pending, Processing, AwaitingPayment, Paid:
		return true
	}
	return false
}

// PreparationQueue lists the statuses for which AwaitingPreparation is true.
func PreparationQueue() []Status {
	return []Status{Pending, Processing, AwaitingPayment, Paid}
}

var progress = []Status{Pending, Paid, Packed, Delivered}

// ProgressSteps is the reduced sequence printed on thermal receipts.
func ProgressSteps() []Status {
	out := make([]Status, len(progress))
	copy(out, progress)
	return out
}

// ProgressStep returns the index of s within ProgressSteps, folding the
// intermediate statuses onto the nearest step. Side states return -1.
func ProgressStep(s Status) int {
	switch s {
	case Pending, Processing, AwaitingPayment:
		return 0
	case Paid:
		return 1
	case Packed, AwaitingPickup, Shipped:
		return 2
	case Delivered:
		return 3
	}
	return -1
}
