package handler

import (
	"testing"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

func TestValidateAdjustment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		adjType models.AdjustmentType
		reason  models.ReasonCode
		delta   int32
		wantErr bool
	}{
		{"valid restock", models.AdjustmentRestock, models.ReasonPOReceived, 6, false},
		{"valid negative variance", models.AdjustmentReconciliation, models.ReasonCountVariance, -2, false},
		{"unknown type", "shrinkage", models.ReasonDamaged, 1, true},
		{"unknown reason", models.AdjustmentDamage, "because", -1, true},
		{"zero delta", models.AdjustmentCorrection, models.ReasonDataEntryError, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAdjustment(tc.adjType, tc.reason, tc.delta)
			if tc.wantErr {
				if utils.CodeOf(err) != utils.ErrValidation {
					t.Errorf("error = %v, want %s", err, utils.ErrValidation)
				}
				return
			}
			if err != nil {
				t.Errorf("validateAdjustment: %v", err)
			}
		})
	}
}

func TestBuildAdjustmentBracketsDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stock      int32
		delta      int32
		wantBefore int32
		wantAfter  int32
	}{
		{"restock", 0, 6, 0, 6},
		{"shortage variance", 45, -2, 45, 43},
		{"to exactly zero", 5, -5, 5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			product := models.Product{ID: 7, QuantityInStock: tc.stock}
			adj, err := buildAdjustment(&product, tc.delta,
				models.AdjustmentReconciliation, models.ReasonCountVariance, "reconciliation", nil, nil, 1)
			if err != nil {
				t.Fatalf("buildAdjustment: %v", err)
			}
			if adj.QuantityBefore != tc.wantBefore || adj.QuantityAfter != tc.wantAfter {
				t.Errorf("before/after = %d/%d, want %d/%d",
					adj.QuantityBefore, adj.QuantityAfter, tc.wantBefore, tc.wantAfter)
			}
			if adj.QuantityAfter-adj.QuantityBefore != adj.QuantityChange {
				t.Errorf("after - before = %d, change = %d; audit row must bracket the delta",
					adj.QuantityAfter-adj.QuantityBefore, adj.QuantityChange)
			}
			if adj.QuantityChange != tc.delta {
				t.Errorf("change = %d, want %d", adj.QuantityChange, tc.delta)
			}
		})
	}
}

func TestBuildAdjustmentRefusesNegativeStock(t *testing.T) {
	t.Parallel()

	product := models.Product{ID: 7, QuantityInStock: 3}
	_, err := buildAdjustment(&product, -5,
		models.AdjustmentDamage, models.ReasonDamaged, "", nil, nil, 1)
	if err == nil {
		t.Fatal("expected constraint error")
	}
	if utils.CodeOf(err) != utils.ErrConstraint {
		t.Errorf("error code = %s, want %s", utils.CodeOf(err), utils.ErrConstraint)
	}
}

func TestBuildAdjustmentReference(t *testing.T) {
	t.Parallel()

	product := models.Product{ID: 7, QuantityInStock: 10}
	refID := int64(42)
	adj, err := buildAdjustment(&product, 3,
		models.AdjustmentRestock, models.ReasonPOReceived, "receiving_record", &refID, nil, 1)
	if err != nil {
		t.Fatalf("buildAdjustment: %v", err)
	}
	if adj.ReferenceType == nil || *adj.ReferenceType != "receiving_record" {
		t.Error("reference type not carried")
	}
	if adj.ReferenceID == nil || *adj.ReferenceID != 42 {
		t.Error("reference id not carried")
	}

	plain, err := buildAdjustment(&product, 3,
		models.AdjustmentCorrection, models.ReasonDataEntryError, "", nil, nil, 1)
	if err != nil {
		t.Fatalf("buildAdjustment: %v", err)
	}
	if plain.ReferenceType != nil || plain.ReferenceID != nil {
		t.Error("manual adjustment should carry no reference")
	}
}

// Stock writes must drop the key the reorder report is cached under,
// or the report serves stale data until its TTL runs out.
func TestStockWritesInvalidateReorderReport(t *testing.T) {
	t.Parallel()

	found := false
	for _, key := range stockWriteCacheKeys() {
		if key == REORDER_REPORT_CACHE_KEY {
			found = true
		}
	}
	if !found {
		t.Errorf("stock write invalidation %v does not cover the reorder report key %q",
			stockWriteCacheKeys(), REORDER_REPORT_CACHE_KEY)
	}
}
