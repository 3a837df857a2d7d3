package handler

import (
	"testing"

	"thriftpos-system/internal/database/models"
)

func vendorPtr(id int32) *int32 {
	return &id
}

func TestGroupSuggestions(t *testing.T) {
	t.Parallel()

	acme := &models.Vendor{ID: 1, VendorName: "Acme Supply"}
	bulk := &models.Vendor{ID: 2, VendorName: "Bulk Goods Co"}

	products := []models.Product{
		{
			ID: 10, SKU: "WID-1", ProductName: "Widget",
			QuantityInStock: 3, ReorderLevel: 10, ReorderQuantity: 20,
			CostPrice: "2.50", PrimaryVendorID: vendorPtr(1), PrimaryVendor: acme,
		},
		{
			ID: 11, SKU: "GAD-1", ProductName: "Gadget",
			QuantityInStock: 0, ReorderLevel: 5, ReorderQuantity: 10,
			CostPrice: "4.00", PrimaryVendorID: vendorPtr(1), PrimaryVendor: acme,
		},
		{
			ID: 12, SKU: "BLK-1", ProductName: "Bulk Item",
			QuantityInStock: 1, ReorderLevel: 2, ReorderQuantity: 6,
			CostPrice: "1.00", PrimaryVendorID: vendorPtr(2), PrimaryVendor: bulk,
		},
		{
			ID: 13, SKU: "ORPH-1", ProductName: "Orphan",
			QuantityInStock: 0, ReorderLevel: 5, ReorderQuantity: 5,
			CostPrice: "9.99", PrimaryVendorID: nil,
		},
	}

	groups := groupSuggestions(products)

	if len(groups) != 2 {
		t.Fatalf("got %d vendor groups, want 2", len(groups))
	}

	acmeGroup := groups[0]
	if acmeGroup.VendorID != 1 || acmeGroup.VendorName != "Acme Supply" {
		t.Errorf("first group = vendor %d %q, want 1 Acme Supply", acmeGroup.VendorID, acmeGroup.VendorName)
	}
	if len(acmeGroup.Items) != 2 {
		t.Fatalf("acme group has %d items, want 2", len(acmeGroup.Items))
	}
	widget := acmeGroup.Items[0]
	if widget.SuggestedQuantity != 20 {
		t.Errorf("widget suggested quantity = %d, want 20", widget.SuggestedQuantity)
	}
	if widget.EstimatedCost != "50.00" {
		t.Errorf("widget estimated cost = %s, want 50.00", widget.EstimatedCost)
	}
	// 20 * 2.50 + 10 * 4.00
	if acmeGroup.EstimatedTotal != "90.00" {
		t.Errorf("acme estimated total = %s, want 90.00", acmeGroup.EstimatedTotal)
	}

	bulkGroup := groups[1]
	if bulkGroup.VendorID != 2 || len(bulkGroup.Items) != 1 {
		t.Errorf("second group = vendor %d with %d items, want vendor 2 with 1 item", bulkGroup.VendorID, len(bulkGroup.Items))
	}
	if bulkGroup.EstimatedTotal != "6.00" {
		t.Errorf("bulk estimated total = %s, want 6.00", bulkGroup.EstimatedTotal)
	}

	for _, group := range groups {
		for _, item := range group.Items {
			if item.ProductID == 13 {
				t.Error("product without a primary vendor must not be suggested")
			}
		}
	}
}

func TestGroupSuggestionsEmpty(t *testing.T) {
	t.Parallel()

	if groups := groupSuggestions(nil); len(groups) != 0 {
		t.Errorf("got %d groups for no products, want 0", len(groups))
	}
}
