package models

import "testing"

func int32Ptr(v int32) *int32 {
	return &v
}

func TestCountItemVariance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		system  int32
		counted *int32
		want    int32
	}{
		{"shortage", 45, int32Ptr(43), -2},
		{"overage", 10, int32Ptr(12), 2},
		{"exact", 7, int32Ptr(7), 0},
		{"not counted", 45, nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := CountItem{SystemQuantity: tc.system, CountedQuantity: tc.counted}
			if got := item.Variance(); got != tc.want {
				t.Errorf("Variance() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCountItemIsResolved(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  CountItemStatus
		recount bool
		want    bool
	}{
		{"pending", CountItemPending, false, false},
		{"counted but unreviewed", CountItemCounted, false, false},
		{"verified", CountItemVerified, false, true},
		{"verified awaiting recount", CountItemVerified, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := CountItem{Status: tc.status, RecountRequired: tc.recount}
			if got := item.IsResolved(); got != tc.want {
				t.Errorf("IsResolved() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAdjustmentTypeIsValid(t *testing.T) {
	t.Parallel()

	for _, valid := range []AdjustmentType{
		AdjustmentRestock, AdjustmentReconciliation, AdjustmentSale,
		AdjustmentDamage, AdjustmentCorrection,
	} {
		if !valid.IsValid() {
			t.Errorf("adjustment type %q should be valid", valid)
		}
	}
	for _, invalid := range []AdjustmentType{"", "shrinkage", "RESTOCK"} {
		if invalid.IsValid() {
			t.Errorf("adjustment type %q should be invalid", invalid)
		}
	}
}

func TestReasonCodeIsValid(t *testing.T) {
	t.Parallel()

	for _, valid := range []ReasonCode{
		ReasonPOReceived, ReasonDonationReceived, ReasonCountVariance,
		ReasonDamaged, ReasonExpired, ReasonTheft, ReasonDataEntryError,
		ReasonSaleCompleted,
	} {
		if !valid.IsValid() {
			t.Errorf("reason code %q should be valid", valid)
		}
	}
	for _, invalid := range []ReasonCode{"", "misc", "free text reason"} {
		if invalid.IsValid() {
			t.Errorf("reason code %q should be invalid", invalid)
		}
	}
}
