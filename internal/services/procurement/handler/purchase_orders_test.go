package handler

import (
	"testing"

	"github.com/shopspring/decimal"

	"thriftpos-system/internal/database/models"
)

func TestLineTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity int32
		unitCost string
		tax      string
		want     string
	}{
		{"no tax", 10, "5.00", "0.00", "50.00"},
		{"with tax", 5, "20.00", "2.50", "102.50"},
		{"single unit", 1, "0.99", "0.00", "0.99"},
		{"fractional cost", 3, "1.333", "0.00", "4.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cost, _ := decimal.NewFromString(tc.unitCost)
			tax, _ := decimal.NewFromString(tc.tax)
			if got := lineTotal(tc.quantity, cost, tax).StringFixed(2); got != tc.want {
				t.Errorf("lineTotal(%d, %s, %s) = %s, want %s", tc.quantity, tc.unitCost, tc.tax, got, tc.want)
			}
		})
	}
}

func TestRecalculateTotals(t *testing.T) {
	t.Parallel()

	order := models.PurchaseOrder{
		TaxAmount:      "0.00",
		ShippingAmount: "0.00",
		OtherCharges:   "0.00",
		DiscountAmount: "0.00",
	}
	items := []models.PurchaseOrderItem{
		{QuantityOrdered: 10, UnitCost: "5.00", LineTotal: "50.00"},
		{QuantityOrdered: 5, UnitCost: "20.00", LineTotal: "100.00"},
	}

	recalculateTotals(&order, items)

	if order.Subtotal != "150.00" {
		t.Errorf("Subtotal = %s, want 150.00", order.Subtotal)
	}
	if order.TotalAmount != "150.00" {
		t.Errorf("TotalAmount = %s, want 150.00", order.TotalAmount)
	}
}

func TestRecalculateTotalsWithCharges(t *testing.T) {
	t.Parallel()

	order := models.PurchaseOrder{
		TaxAmount:      "12.00",
		ShippingAmount: "25.00",
		OtherCharges:   "3.00",
		DiscountAmount: "10.00",
	}
	items := []models.PurchaseOrderItem{
		{LineTotal: "50.00"},
		{LineTotal: "100.00"},
	}

	recalculateTotals(&order, items)

	if order.Subtotal != "150.00" {
		t.Errorf("Subtotal = %s, want 150.00", order.Subtotal)
	}
	// 150 + 12 + 25 + 3 - 10
	if order.TotalAmount != "180.00" {
		t.Errorf("TotalAmount = %s, want 180.00", order.TotalAmount)
	}
}

func TestRecalculateTotalsEmptyOrder(t *testing.T) {
	t.Parallel()

	order := models.PurchaseOrder{
		TaxAmount:      "0.00",
		ShippingAmount: "0.00",
		OtherCharges:   "0.00",
		DiscountAmount: "0.00",
	}

	recalculateTotals(&order, nil)

	if order.Subtotal != "0.00" || order.TotalAmount != "0.00" {
		t.Errorf("empty order totals = %s/%s, want 0.00/0.00", order.Subtotal, order.TotalAmount)
	}
}

func TestFormatDocNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		seq    int64
		want   string
	}{
		{"PO202608", 1, "PO2026080001"},
		{"PO202608", 42, "PO2026080042"},
		{"RCV20260830", 7, "RCV202608300007"},
	}

	for _, tc := range tests {
		if got := formatDocNumber(tc.prefix, tc.seq); got != tc.want {
			t.Errorf("formatDocNumber(%q, %d) = %s, want %s", tc.prefix, tc.seq, got, tc.want)
		}
	}
}

func TestNormalizeAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"5", "5.00"},
		{"5.5", "5.50"},
		{"5.499", "5.50"},
		{"", "0.00"},
		{"garbage", "0.00"},
	}

	for _, tc := range tests {
		if got := normalizeAmount(tc.in); got != tc.want {
			t.Errorf("normalizeAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
