package handler

import (
	"testing"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

func orderItems() []models.PurchaseOrderItem {
	return []models.PurchaseOrderItem{
		{ID: 1, QuantityOrdered: 10, QuantityReceived: 0},
		{ID: 2, QuantityOrdered: 5, QuantityReceived: 3},
	}
}

func TestApplyReceiptPartial(t *testing.T) {
	t.Parallel()

	items := orderItems()
	err := applyReceipt(items, []ReceiveItemInput{
		{OrderItemID: 1, QuantityReceived: 4},
	})
	if err != nil {
		t.Fatalf("applyReceipt: %v", err)
	}
	if items[0].QuantityReceived != 4 {
		t.Errorf("item 1 received = %d, want 4", items[0].QuantityReceived)
	}
	if items[1].QuantityReceived != 3 {
		t.Errorf("item 2 received = %d, want 3 (untouched)", items[1].QuantityReceived)
	}
}

func TestApplyReceiptCumulative(t *testing.T) {
	t.Parallel()

	items := orderItems()
	if err := applyReceipt(items, []ReceiveItemInput{{OrderItemID: 2, QuantityReceived: 2}}); err != nil {
		t.Fatalf("applyReceipt: %v", err)
	}
	if items[1].QuantityReceived != 5 {
		t.Errorf("item 2 received = %d, want 5", items[1].QuantityReceived)
	}
	if !items[1].IsFullyReceived() {
		t.Error("item 2 should be fully received")
	}
}

func TestApplyReceiptOverReceipt(t *testing.T) {
	t.Parallel()

	items := orderItems()
	err := applyReceipt(items, []ReceiveItemInput{
		{OrderItemID: 2, QuantityReceived: 3}, // 3 already in, only 2 remain
	})
	if err == nil {
		t.Fatal("expected over-receipt error")
	}
	if utils.CodeOf(err) != utils.ErrOverReceipt {
		t.Errorf("error code = %s, want %s", utils.CodeOf(err), utils.ErrOverReceipt)
	}
	if items[1].QuantityReceived != 3 {
		t.Errorf("item 2 received = %d, want 3 (unchanged after rejection)", items[1].QuantityReceived)
	}
}

// A mixed payload with one bad entry must leave every item untouched.
func TestApplyReceiptAtomicity(t *testing.T) {
	t.Parallel()

	items := orderItems()
	err := applyReceipt(items, []ReceiveItemInput{
		{OrderItemID: 1, QuantityReceived: 4},
		{OrderItemID: 2, QuantityReceived: 9},
	})
	if err == nil {
		t.Fatal("expected over-receipt error")
	}
	if items[0].QuantityReceived != 0 {
		t.Errorf("item 1 received = %d, want 0 (rolled back)", items[0].QuantityReceived)
	}
	if items[1].QuantityReceived != 3 {
		t.Errorf("item 2 received = %d, want 3 (rolled back)", items[1].QuantityReceived)
	}
}

// Entries naming the same line item are checked against their combined
// total, so splitting an over-receipt across duplicate entries cannot
// slip past the guard.
func TestApplyReceiptDuplicateLineEntries(t *testing.T) {
	t.Parallel()

	items := orderItems()
	err := applyReceipt(items, []ReceiveItemInput{
		{OrderItemID: 1, QuantityReceived: 6},
		{OrderItemID: 1, QuantityReceived: 6}, // combined 12 > ordered 10
	})
	if err == nil {
		t.Fatal("expected over-receipt error for duplicated line entries")
	}
	if utils.CodeOf(err) != utils.ErrOverReceipt {
		t.Errorf("error code = %s, want %s", utils.CodeOf(err), utils.ErrOverReceipt)
	}
	if items[0].QuantityReceived != 0 {
		t.Errorf("item 1 received = %d, want 0 (unchanged after rejection)", items[0].QuantityReceived)
	}

	// Duplicates within the ordered quantity are legitimate and add up.
	items = orderItems()
	err = applyReceipt(items, []ReceiveItemInput{
		{OrderItemID: 1, QuantityReceived: 3},
		{OrderItemID: 1, QuantityReceived: 4},
	})
	if err != nil {
		t.Fatalf("applyReceipt: %v", err)
	}
	if items[0].QuantityReceived != 7 {
		t.Errorf("item 1 received = %d, want 7", items[0].QuantityReceived)
	}
	if pending := items[0].QuantityPending(); pending != 3 {
		t.Errorf("item 1 pending = %d, want 3", pending)
	}
}

func TestApplyReceiptValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input ReceiveItemInput
		code  utils.ErrorCode
	}{
		{"unknown item", ReceiveItemInput{OrderItemID: 99, QuantityReceived: 1}, utils.ErrNotFound},
		{"zero quantity", ReceiveItemInput{OrderItemID: 1, QuantityReceived: 0}, utils.ErrValidation},
		{"negative quantity", ReceiveItemInput{OrderItemID: 1, QuantityReceived: -2}, utils.ErrValidation},
		{"negative rejected", ReceiveItemInput{OrderItemID: 1, QuantityReceived: 1, RejectedQuantity: -1}, utils.ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := orderItems()
			err := applyReceipt(items, []ReceiveItemInput{tc.input})
			if err == nil {
				t.Fatal("expected error")
			}
			if utils.CodeOf(err) != tc.code {
				t.Errorf("error code = %s, want %s", utils.CodeOf(err), tc.code)
			}
		})
	}
}
