package handler

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

const (
	VENDORS_CACHE_KEY        = "inventory:vendors"
	REORDER_REPORT_CACHE_KEY = "inventory:reorder-report"
	CACHE_TTL_SHORT          = 5 * time.Minute
	CACHE_TTL_MEDIUM         = 30 * time.Minute
)

type InventoryHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewInventoryHandler(db *gorm.DB, redisClient *redis.Client) *InventoryHandler {
	return &InventoryHandler{
		db:    db,
		redis: redisClient,
	}
}

// stockWriteCacheKeys lists every cached read that a stock or catalog
// write can leave stale. The reorder report key here is the one the
// suggestion generator writes under.
func stockWriteCacheKeys() []string {
	return []string{REORDER_REPORT_CACHE_KEY, VENDORS_CACHE_KEY}
}

func (s *InventoryHandler) InvalidateInventoryCaches(ctx context.Context) {
	_ = s.redis.Del(ctx, stockWriteCacheKeys()...)
}

func validateAdjustment(adjType models.AdjustmentType, reason models.ReasonCode, delta int32) error {
	if !adjType.IsValid() {
		return utils.NewDomainErrorf(utils.ErrValidation, "unknown adjustment type %q", adjType)
	}
	if !reason.IsValid() {
		return utils.NewDomainErrorf(utils.ErrValidation, "unknown reason code %q", reason)
	}
	if delta == 0 {
		return utils.NewDomainError(utils.ErrValidation, "adjustment quantity change cannot be zero")
	}
	return nil
}

// buildAdjustment computes the audit row for one stock change. The
// before/after pair always brackets exactly the applied delta; a delta
// that would drive stock negative is refused.
func buildAdjustment(product *models.Product, delta int32, adjType models.AdjustmentType, reason models.ReasonCode, refType string, refID *int64, notes *string, userID int64) (*models.InventoryAdjustment, error) {
	before := product.QuantityInStock
	after := before + delta
	if after < 0 {
		return nil, utils.NewDomainErrorf(utils.ErrConstraint,
			"adjustment of %d would drive stock of product %d below zero (on hand %d)", delta, product.ID, before)
	}

	adjustment := &models.InventoryAdjustment{
		ProductID:      product.ID,
		AdjustmentType: adjType,
		QuantityBefore: before,
		QuantityAfter:  after,
		QuantityChange: delta,
		ReasonCode:     reason,
		AdjustedBy:     userID,
		Notes:          notes,
	}
	if refType != "" {
		adjustment.ReferenceType = &refType
		adjustment.ReferenceID = refID
	}
	return adjustment, nil
}

// ApplyAdjustment is the only writer of Product.QuantityInStock. It
// locks the product row, refuses any change that would drive stock
// negative, and records the before/after audit row in the same
// transaction. Callers must already be inside tx.
func ApplyAdjustment(tx *gorm.DB, productID int32, delta int32, adjType models.AdjustmentType, reason models.ReasonCode, refType string, refID *int64, notes *string, userID int64) (*models.InventoryAdjustment, error) {
	if err := validateAdjustment(adjType, reason, delta); err != nil {
		return nil, err
	}

	var product models.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "product %d not found", productID)
		}
		return nil, err
	}

	adjustment, err := buildAdjustment(&product, delta, adjType, reason, refType, refID, notes, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Product{}).Where("id = ?", productID).
		Update("quantity_in_stock", adjustment.QuantityAfter).Error; err != nil {
		return nil, err
	}
	if err := tx.Create(adjustment).Error; err != nil {
		return nil, err
	}

	return adjustment, nil
}

type ManualAdjustmentRequest struct {
	ProductID      int32
	QuantityChange int32
	AdjustmentType models.AdjustmentType
	ReasonCode     models.ReasonCode
	Notes          *string
}

// CreateManualAdjustment handles operator-initiated corrections such as
// damage write-offs and data entry fixes. It runs its own transaction;
// receiving and reconciliation call ApplyAdjustment inside theirs.
func (s *InventoryHandler) CreateManualAdjustment(ctx context.Context, req ManualAdjustmentRequest, userID int64) (*models.InventoryAdjustment, error) {
	var adjustment *models.InventoryAdjustment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		adjustment, err = ApplyAdjustment(tx, req.ProductID, req.QuantityChange,
			req.AdjustmentType, req.ReasonCode, "", nil, req.Notes, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx)

	return adjustment, nil
}

type ListAdjustmentsRequest struct {
	ProductID      *int32
	AdjustmentType *string
	Limit          int
	Offset         int
}

func (s *InventoryHandler) ListAdjustments(ctx context.Context, req ListAdjustmentsRequest) ([]models.InventoryAdjustment, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.InventoryAdjustment{})
	if req.ProductID != nil {
		query = query.Where("product_id = ?", *req.ProductID)
	}
	if req.AdjustmentType != nil {
		query = query.Where("adjustment_type = ?", *req.AdjustmentType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var adjustments []models.InventoryAdjustment
	if err := query.Order("created_at DESC").Limit(limit).Offset(req.Offset).Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}

	return adjustments, total, nil
}
