package handler

import (
	"testing"

	"thriftpos-system/internal/database/models"
)

func countedPtr(v int32) *int32 {
	return &v
}

func TestCountUnresolved(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []models.CountItem
		want  int
	}{
		{
			"all verified",
			[]models.CountItem{
				{Status: models.CountItemVerified},
				{Status: models.CountItemVerified},
			},
			0,
		},
		{
			"one pending",
			[]models.CountItem{
				{Status: models.CountItemVerified},
				{Status: models.CountItemPending},
			},
			1,
		},
		{
			"counted but not reviewed",
			[]models.CountItem{
				{Status: models.CountItemCounted, CountedQuantity: countedPtr(4)},
			},
			1,
		},
		{
			"recount flagged blocks completion",
			[]models.CountItem{
				{Status: models.CountItemVerified},
				{Status: models.CountItemPending, RecountRequired: true},
			},
			1,
		},
		{
			"empty",
			nil,
			0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := countUnresolved(tc.items); got != tc.want {
				t.Errorf("countUnresolved() = %d, want %d", got, tc.want)
			}
		})
	}
}
