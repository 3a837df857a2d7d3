package handler

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"

	"thriftpos-system/internal/database/models"
	inventory "thriftpos-system/internal/services/inventory/handler"
)

type ReorderSuggestion struct {
	ProductID         int32  `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	QuantityInStock   int32  `json:"quantity_in_stock"`
	ReorderLevel      int32  `json:"reorder_level"`
	SuggestedQuantity int32  `json:"suggested_quantity"`
	UnitCost          string `json:"unit_cost"`
	EstimatedCost     string `json:"estimated_cost"`
}

type VendorSuggestions struct {
	VendorID       int32               `json:"vendor_id"`
	VendorName     string              `json:"vendor_name"`
	Items          []ReorderSuggestion `json:"items"`
	EstimatedTotal string              `json:"estimated_total"`
}

// groupSuggestions builds the per-vendor report from low-stock
// products. The suggested quantity comes from the product's configured
// reorder quantity; it is not derived from sales velocity.
func groupSuggestions(products []models.Product) []VendorSuggestions {
	grouped := make(map[int32]*VendorSuggestions)
	for _, product := range products {
		if product.PrimaryVendorID == nil {
			continue // unreachable via this report without a vendor to order from
		}
		vendorID := *product.PrimaryVendorID

		cost, _ := decimal.NewFromString(product.CostPrice)
		estimated := cost.Mul(decimal.NewFromInt32(product.ReorderQuantity))

		entry, ok := grouped[vendorID]
		if !ok {
			entry = &VendorSuggestions{VendorID: vendorID}
			if product.PrimaryVendor != nil {
				entry.VendorName = product.PrimaryVendor.VendorName
			}
			grouped[vendorID] = entry
		}
		entry.Items = append(entry.Items, ReorderSuggestion{
			ProductID:         product.ID,
			SKU:               product.SKU,
			ProductName:       product.ProductName,
			QuantityInStock:   product.QuantityInStock,
			ReorderLevel:      product.ReorderLevel,
			SuggestedQuantity: product.ReorderQuantity,
			UnitCost:          cost.StringFixed(2),
			EstimatedCost:     estimated.StringFixed(2),
		})
	}

	result := make([]VendorSuggestions, 0, len(grouped))
	for _, entry := range grouped {
		total := decimal.Zero
		for _, item := range entry.Items {
			estimated, _ := decimal.NewFromString(item.EstimatedCost)
			total = total.Add(estimated)
		}
		entry.EstimatedTotal = total.StringFixed(2)
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].VendorID < result[j].VendorID
	})
	return result
}

// GenerateSuggestions is a read-only report of active products at or
// below their reorder level, grouped by primary vendor. Safe to call
// repeatedly and concurrently; cached briefly and invalidated by stock
// writes.
func (s *ProcurementHandler) GenerateSuggestions(ctx context.Context) ([]VendorSuggestions, error) {
	if cached, err := s.redis.Get(ctx, inventory.REORDER_REPORT_CACHE_KEY).Result(); err == nil {
		var suggestions []VendorSuggestions
		if err := json.Unmarshal([]byte(cached), &suggestions); err == nil {
			return suggestions, nil
		}
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Preload("PrimaryVendor").
		Where("is_active = ? AND quantity_in_stock <= reorder_level AND primary_vendor_id IS NOT NULL", true).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}

	suggestions := groupSuggestions(products)

	if payload, err := json.Marshal(suggestions); err == nil {
		_ = s.redis.Set(ctx, inventory.REORDER_REPORT_CACHE_KEY, payload, inventory.CACHE_TTL_SHORT)
	}

	return suggestions, nil
}
