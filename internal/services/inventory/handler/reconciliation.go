package handler

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

type DecisionAction string

const (
	DecisionApprove DecisionAction = "approve"
	DecisionReject  DecisionAction = "reject"
	DecisionRecount DecisionAction = "recount"
)

type VarianceDecision struct {
	CountItemID int64          `json:"count_item_id" binding:"required"`
	Action      DecisionAction `json:"action" binding:"required"`
	ReasonCode  string         `json:"reason_code"` // required for approve
}

type ApproveVariancesRequest struct {
	Decisions []VarianceDecision `json:"decisions" binding:"required"`
}

// ApproveVariances applies reviewer decisions to a reconciliation's
// count items. Approvals are the only path that turns a variance into a
// stock change, and they route through ApplyAdjustment so the audit
// row lands in the same transaction. All decisions in one call succeed
// or none do.
func (s *InventoryHandler) ApproveVariances(ctx context.Context, reconciliationID int64, req ApproveVariancesRequest, userID int64) (*models.Reconciliation, error) {
	if len(req.Decisions) == 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "at least one decision is required")
	}

	var reconciliation models.Reconciliation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reconciliation, reconciliationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewDomainErrorf(utils.ErrNotFound, "reconciliation %d not found", reconciliationID)
			}
			return err
		}
		if reconciliation.Status != models.ReconciliationInReview {
			return utils.NewDomainErrorf(utils.ErrInvalidState, "reconciliation is %s, not in review", reconciliation.Status)
		}

		for _, decision := range req.Decisions {
			var item models.CountItem
			if err := tx.Where("id = ? AND session_id = ?", decision.CountItemID, reconciliation.SessionID).First(&item).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return utils.NewDomainErrorf(utils.ErrNotFound,
						"count item %d not found in reconciliation %d", decision.CountItemID, reconciliationID)
				}
				return err
			}

			switch decision.Action {
			case DecisionApprove:
				if !item.HasCount() {
					return utils.NewDomainErrorf(utils.ErrInvalidState,
						"count item %d has no recorded count to approve", item.ID)
				}
				if item.Status == models.CountItemVerified {
					return utils.NewDomainErrorf(utils.ErrInvalidState,
						"count item %d is already verified", item.ID)
				}
				reason := models.ReasonCode(decision.ReasonCode)
				if decision.ReasonCode == "" {
					reason = models.ReasonCountVariance
				}
				if variance := item.Variance(); variance != 0 {
					refID := reconciliation.ID
					if _, err := ApplyAdjustment(tx, item.ProductID, variance,
						models.AdjustmentReconciliation, reason,
						"reconciliation", &refID, nil, userID); err != nil {
						return err
					}
				}
				item.Status = models.CountItemVerified
				item.RecountRequired = false

			case DecisionReject:
				if !item.HasCount() {
					return utils.NewDomainErrorf(utils.ErrInvalidState,
						"count item %d has no recorded count to reject", item.ID)
				}
				// System quantity stands; no adjustment.
				item.Status = models.CountItemVerified
				item.RecountRequired = false

			case DecisionRecount:
				item.CountedQuantity = nil
				item.CountedBy = nil
				item.CountedAt = nil
				item.Status = models.CountItemPending
				item.RecountRequired = true

			default:
				return utils.NewDomainErrorf(utils.ErrValidation, "unknown decision action %q", decision.Action)
			}

			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx)

	return &reconciliation, nil
}

// CompleteReconciliation finalizes the review. Refused while any item
// is still pending or flagged for recount.
func (s *InventoryHandler) CompleteReconciliation(ctx context.Context, reconciliationID, userID int64) (*models.Reconciliation, error) {
	var reconciliation models.Reconciliation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reconciliation, reconciliationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewDomainErrorf(utils.ErrNotFound, "reconciliation %d not found", reconciliationID)
			}
			return err
		}
		if reconciliation.Status != models.ReconciliationInReview {
			return utils.NewDomainErrorf(utils.ErrInvalidState, "reconciliation is %s, not in review", reconciliation.Status)
		}

		var items []models.CountItem
		if err := tx.Where("session_id = ?", reconciliation.SessionID).Find(&items).Error; err != nil {
			return err
		}
		if unresolved := countUnresolved(items); unresolved > 0 {
			return utils.NewDomainErrorf(utils.ErrIncompleteReconciliation,
				"%d count item(s) still pending review or recount", unresolved)
		}

		now := time.Now()
		reconciliation.Status = models.ReconciliationCompleted
		reconciliation.CompletedBy = &userID
		reconciliation.CompletedAt = &now
		return tx.Save(&reconciliation).Error
	})
	if err != nil {
		return nil, err
	}

	return &reconciliation, nil
}

func (s *InventoryHandler) GetReconciliation(ctx context.Context, reconciliationID int64) (*models.Reconciliation, error) {
	var reconciliation models.Reconciliation
	if err := s.db.WithContext(ctx).Preload("Session").Preload("Session.Items").First(&reconciliation, reconciliationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "reconciliation %d not found", reconciliationID)
		}
		return nil, err
	}
	return &reconciliation, nil
}

func countUnresolved(items []models.CountItem) int {
	unresolved := 0
	for _, item := range items {
		if !item.IsResolved() {
			unresolved++
		}
	}
	return unresolved
}
