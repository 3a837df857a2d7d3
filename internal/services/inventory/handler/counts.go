package handler

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

type CreateCountSessionRequest struct {
	Location   *string `json:"location"`
	ProductIDs []int32 `json:"product_ids"` // empty means all active products
}

// CreateCountSession opens a session and snapshots the current system
// quantity for every product in scope. Variances are always computed
// against this snapshot, not against live stock.
func (s *InventoryHandler) CreateCountSession(ctx context.Context, req CreateCountSessionRequest, userID int64) (*models.CountSession, error) {
	var products []models.Product
	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if len(req.ProductIDs) > 0 {
		query = query.Where("id IN ?", req.ProductIDs)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "count session requires at least one active product")
	}
	if len(req.ProductIDs) > 0 && len(products) != len(req.ProductIDs) {
		return nil, utils.NewDomainError(utils.ErrValidation, "one or more products not found or inactive")
	}

	now := time.Now()
	session := models.CountSession{
		Status:    models.CountSessionOpen,
		Location:  req.Location,
		StartedBy: userID,
		StartedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Scoped to the day; the unique index catches concurrent clashes.
		var seq int64
		prefix := "CNT" + now.Format("20060102")
		if err := tx.Model(&models.CountSession{}).Where("session_number LIKE ?", prefix+"%").Count(&seq).Error; err != nil {
			return err
		}
		session.SessionNumber = fmt.Sprintf("%s%04d", prefix, seq+1)

		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		items := make([]models.CountItem, 0, len(products))
		for _, product := range products {
			items = append(items, models.CountItem{
				SessionID:      session.ID,
				ProductID:      product.ID,
				SystemQuantity: product.QuantityInStock,
				Status:         models.CountItemPending,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		session.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

type RecordCountRequest struct {
	CountedQuantity int32 `json:"counted_quantity"`
}

// RecordCount records a physical count for one item. Items flagged for
// recount re-enter here the same way as first-time counts.
func (s *InventoryHandler) RecordCount(ctx context.Context, sessionID, itemID int64, req RecordCountRequest, userID int64) (*models.CountItem, error) {
	if req.CountedQuantity < 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "counted quantity cannot be negative")
	}

	var item models.CountItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.CountSession
		if err := tx.First(&session, sessionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewDomainErrorf(utils.ErrNotFound, "count session %d not found", sessionID)
			}
			return err
		}
		if session.Status == models.CountSessionCancelled {
			return utils.NewDomainError(utils.ErrInvalidState, "count session is cancelled")
		}

		if err := tx.Where("id = ? AND session_id = ?", itemID, sessionID).First(&item).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewDomainErrorf(utils.ErrNotFound, "count item %d not found in session %d", itemID, sessionID)
			}
			return err
		}
		if item.Status == models.CountItemVerified {
			return utils.NewDomainError(utils.ErrInvalidState, "count item already verified")
		}
		if session.Status == models.CountSessionCompleted && !item.RecountRequired {
			return utils.NewDomainError(utils.ErrInvalidState, "count session is completed; only recounts may be recorded")
		}

		now := time.Now()
		counted := req.CountedQuantity
		item.CountedQuantity = &counted
		item.Status = models.CountItemCounted
		item.RecountRequired = false
		item.CountedBy = &userID
		item.CountedAt = &now

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// CompleteCountSession closes the session and opens the reconciliation
// that reviews its variances.
func (s *InventoryHandler) CompleteCountSession(ctx context.Context, sessionID, userID int64) (*models.Reconciliation, error) {
	var reconciliation models.Reconciliation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.CountSession
		if err := tx.Preload("Items").First(&session, sessionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewDomainErrorf(utils.ErrNotFound, "count session %d not found", sessionID)
			}
			return err
		}
		if session.Status != models.CountSessionOpen {
			return utils.NewDomainErrorf(utils.ErrInvalidState, "count session is %s, not open", session.Status)
		}

		for _, item := range session.Items {
			if !item.HasCount() {
				return utils.NewDomainErrorf(utils.ErrInvalidState,
					"product %d has not been counted yet", item.ProductID)
			}
		}

		now := time.Now()
		session.Status = models.CountSessionCompleted
		session.CompletedAt = &now
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		reconciliation = models.Reconciliation{
			SessionID: session.ID,
			Status:    models.ReconciliationInReview,
			CreatedBy: userID,
		}
		return tx.Create(&reconciliation).Error
	})
	if err != nil {
		return nil, err
	}

	return &reconciliation, nil
}

func (s *InventoryHandler) GetCountSession(ctx context.Context, sessionID int64) (*models.CountSession, error) {
	var session models.CountSession
	if err := s.db.WithContext(ctx).Preload("Items").Preload("Items.Product").First(&session, sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "count session %d not found", sessionID)
		}
		return nil, err
	}
	return &session, nil
}

func (s *InventoryHandler) ListCountSessions(ctx context.Context, status *string, limit, offset int) ([]models.CountSession, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.CountSession{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var sessions []models.CountSession
	if err := query.Order("started_at DESC").Limit(limit).Offset(offset).Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}
