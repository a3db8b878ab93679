package models

import "fmt"

// OrderStatus is the canonical order status shared by the public ordering site
// and the restaurant dashboard. The client-side checks must mirror the
// server-side transition rules exactly, so there is a single machine here.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// forwardSequence is the linear fulfillment progression. cancelled sits outside
// the sequence and is reachable from any non-terminal status.
var forwardSequence = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
}

// ParseOrderStatus validates a raw status string
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if s == StatusCancelled {
		return s, nil
	}
	for _, st := range forwardSequence {
		if s == st {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// Next returns the immediate successor in the forward sequence. The second
// return value is false for delivered and cancelled, which have no successor.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range forwardSequence {
		if s == st && i+1 < len(forwardSequence) {
			return forwardSequence[i+1], true
		}
	}
	return "", false
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to target is legal: only the
// immediate successor in the forward sequence, or cancelled from any
// non-terminal status. No backward transitions.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	next, ok := s.Next()
	return ok && target == next
}

// BoardColumn is one display bucket of the dashboard order board. Columns are
// purely presentational; transition legality is decided by CanTransitionTo.
type BoardColumn struct {
	Title    string        `json:"title"`
	Statuses []OrderStatus `json:"statuses"`
}

// BoardColumns returns the three dashboard columns in display order
func BoardColumns() []BoardColumn {
	return []BoardColumn{
		{Title: "New", Statuses: []OrderStatus{StatusPending}},
		{Title: "In Progress", Statuses: []OrderStatus{StatusConfirmed, StatusPreparing}},
		{Title: "Ready", Statuses: []OrderStatus{StatusReady, StatusOutForDelivery}},
	}
}

// Contains reports whether the column buckets the given status
func (c BoardColumn) Contains(s OrderStatus) bool {
	for _, st := range c.Statuses {
		if st == s {
			return true
		}
	}
	return false
}
