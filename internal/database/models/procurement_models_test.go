package models

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderDraft, OrderSubmitted, true},
		{OrderDraft, OrderApproved, false},
		{OrderDraft, OrderReceived, false},
		{OrderDraft, OrderCancelled, true},
		{OrderSubmitted, OrderApproved, true},
		{OrderSubmitted, OrderDraft, false},
		{OrderSubmitted, OrderCancelled, true},
		{OrderApproved, OrderPartiallyReceived, true},
		{OrderApproved, OrderReceived, true},
		{OrderApproved, OrderSubmitted, false},
		{OrderApproved, OrderCancelled, true},
		{OrderPartiallyReceived, OrderPartiallyReceived, true},
		{OrderPartiallyReceived, OrderReceived, true},
		{OrderPartiallyReceived, OrderApproved, false},
		{OrderPartiallyReceived, OrderCancelled, true},
		{OrderReceived, OrderClosed, true},
		{OrderReceived, OrderPartiallyReceived, false},
		{OrderReceived, OrderCancelled, true},
		{OrderClosed, OrderCancelled, false},
		{OrderClosed, OrderSubmitted, false},
		{OrderCancelled, OrderDraft, false},
		{OrderCancelled, OrderCancelled, false},
	}

	for _, tc := range tests {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	t.Parallel()

	terminal := map[OrderStatus]bool{
		OrderDraft:             false,
		OrderSubmitted:         false,
		OrderApproved:          false,
		OrderPartiallyReceived: false,
		OrderReceived:          false,
		OrderClosed:            true,
		OrderCancelled:         true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestOrderStatusCanReceive(t *testing.T) {
	t.Parallel()

	receivable := map[OrderStatus]bool{
		OrderDraft:             false,
		OrderSubmitted:         false,
		OrderApproved:          true,
		OrderPartiallyReceived: true,
		OrderReceived:          false,
		OrderClosed:            false,
		OrderCancelled:         false,
	}
	for status, want := range receivable {
		if got := status.CanReceive(); got != want {
			t.Errorf("CanReceive(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestQuantityPending(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ordered  int32
		received int32
		want     int32
	}{
		{"nothing received", 10, 0, 10},
		{"partial", 10, 4, 6},
		{"complete", 10, 10, 0},
		{"drift is exposed, not masked", 10, 12, -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := PurchaseOrderItem{QuantityOrdered: tc.ordered, QuantityReceived: tc.received}
			if got := item.QuantityPending(); got != tc.want {
				t.Errorf("QuantityPending() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestIsFullyReceived(t *testing.T) {
	t.Parallel()

	item := PurchaseOrderItem{QuantityOrdered: 5, QuantityReceived: 4}
	if item.IsFullyReceived() {
		t.Error("item with pending quantity reported as fully received")
	}
	item.QuantityReceived = 5
	if !item.IsFullyReceived() {
		t.Error("complete item not reported as fully received")
	}
}
