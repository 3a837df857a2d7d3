package handler

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

// transition loads the order under FOR UPDATE, checks the status graph
// and applies the side effects of one transition. Every explicit
// lifecycle event (submit, approve, cancel, close) funnels through
// here; receiving-driven statuses are set by the receiving processor.
func (s *ProcurementHandler) transition(ctx context.Context, orderID int64, target models.OrderStatus, apply func(tx *gorm.DB, order *models.PurchaseOrder) error) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewDomainErrorf(utils.ErrNotFound, "purchase order %d not found", orderID)
			}
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Order("id").Find(&order.Items).Error; err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(target) {
			return utils.NewDomainErrorf(utils.ErrInvalidTransition,
				"cannot move purchase order %s from %s to %s", order.OrderNumber, order.Status, target)
		}

		if err := apply(tx, &order); err != nil {
			return err
		}

		order.Status = target
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Submit moves a draft order into the approval queue. Requires at
// least one line item.
func (s *ProcurementHandler) Submit(ctx context.Context, orderID, userID int64) (*models.PurchaseOrder, error) {
	return s.transition(ctx, orderID, models.OrderSubmitted, func(tx *gorm.DB, order *models.PurchaseOrder) error {
		if len(order.Items) == 0 {
			return utils.NewDomainError(utils.ErrValidation, "cannot submit a purchase order without line items")
		}
		now := time.Now()
		order.SubmittedAt = &now
		return nil
	})
}

// Approve records the approver identity and timestamp.
func (s *ProcurementHandler) Approve(ctx context.Context, orderID, userID int64) (*models.PurchaseOrder, error) {
	if userID == 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "approver identity is required")
	}
	return s.transition(ctx, orderID, models.OrderApproved, func(tx *gorm.DB, order *models.PurchaseOrder) error {
		now := time.Now()
		order.ApprovedBy = &userID
		order.ApprovedAt = &now
		return nil
	})
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Cancel voids the order. Refused once any goods have been received:
// the stock adjustments already written cannot be silently undone, so
// a received order must run its course and be amended instead.
func (s *ProcurementHandler) Cancel(ctx context.Context, orderID int64, req CancelRequest, userID int64) (*models.PurchaseOrder, error) {
	if req.Reason == "" {
		return nil, utils.NewDomainError(utils.ErrValidation, "cancel reason is required")
	}
	return s.transition(ctx, orderID, models.OrderCancelled, func(tx *gorm.DB, order *models.PurchaseOrder) error {
		for _, item := range order.Items {
			if item.QuantityReceived > 0 {
				return utils.NewDomainErrorf(utils.ErrInvalidState,
					"purchase order %s has received goods and can no longer be cancelled", order.OrderNumber)
			}
		}
		now := time.Now()
		order.CancelledAt = &now
		order.CancelReason = &req.Reason
		return nil
	})
}

// Close finalizes a fully received order. Terminal.
func (s *ProcurementHandler) Close(ctx context.Context, orderID, userID int64) (*models.PurchaseOrder, error) {
	return s.transition(ctx, orderID, models.OrderClosed, func(tx *gorm.DB, order *models.PurchaseOrder) error {
		now := time.Now()
		order.ClosedAt = &now
		return nil
	})
}

// statusAfterReceiving derives the order status from its items.
// Idempotent: recomputing on an unchanged order yields the same
// status.
func statusAfterReceiving(items []models.PurchaseOrderItem) models.OrderStatus {
	allReceived := len(items) > 0
	anyReceived := false
	for _, item := range items {
		if !item.IsFullyReceived() {
			allReceived = false
		}
		if item.QuantityReceived > 0 {
			anyReceived = true
		}
	}
	if allReceived {
		return models.OrderReceived
	}
	if anyReceived {
		return models.OrderPartiallyReceived
	}
	return models.OrderApproved
}
