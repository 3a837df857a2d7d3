package handler

import (
	"testing"

	"thriftpos-system/internal/database/models"
)

func TestStatusAfterReceiving(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []models.PurchaseOrderItem
		want  models.OrderStatus
	}{
		{
			"nothing received",
			[]models.PurchaseOrderItem{
				{QuantityOrdered: 10, QuantityReceived: 0},
				{QuantityOrdered: 5, QuantityReceived: 0},
			},
			models.OrderApproved,
		},
		{
			"one line partially received",
			[]models.PurchaseOrderItem{
				{QuantityOrdered: 10, QuantityReceived: 4},
				{QuantityOrdered: 5, QuantityReceived: 0},
			},
			models.OrderPartiallyReceived,
		},
		{
			"one line complete one pending",
			[]models.PurchaseOrderItem{
				{QuantityOrdered: 10, QuantityReceived: 10},
				{QuantityOrdered: 5, QuantityReceived: 0},
			},
			models.OrderPartiallyReceived,
		},
		{
			"all complete",
			[]models.PurchaseOrderItem{
				{QuantityOrdered: 10, QuantityReceived: 10},
				{QuantityOrdered: 5, QuantityReceived: 5},
			},
			models.OrderReceived,
		},
		{
			"no items",
			nil,
			models.OrderApproved,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusAfterReceiving(tc.items); got != tc.want {
				t.Errorf("statusAfterReceiving() = %s, want %s", got, tc.want)
			}
		})
	}
}

// Recomputing on an unchanged item set must yield the same status.
func TestStatusAfterReceivingIdempotent(t *testing.T) {
	t.Parallel()

	items := []models.PurchaseOrderItem{
		{QuantityOrdered: 10, QuantityReceived: 6},
		{QuantityOrdered: 5, QuantityReceived: 5},
	}
	first := statusAfterReceiving(items)
	second := statusAfterReceiving(items)
	if first != second {
		t.Errorf("statuses differ across recomputation: %s vs %s", first, second)
	}
}
