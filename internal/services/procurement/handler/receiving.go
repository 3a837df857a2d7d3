package handler

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventory "thriftpos-system/internal/services/inventory/handler"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

type ReceiveItemInput struct {
	OrderItemID      int64   `json:"order_item_id" binding:"required"`
	QuantityReceived int32   `json:"quantity_received" binding:"required"`
	RejectedQuantity int32   `json:"rejected_quantity"`
	Condition        *string `json:"condition"`
}

type ReceiveItemsRequest struct {
	Items []ReceiveItemInput `json:"items" binding:"required"`
	Notes *string            `json:"notes"`
}

// applyReceipt validates every entry against the order's line items
// and, only if all entries pass, applies the received quantities.
// Requested quantities are accumulated per line item first, so a
// payload naming the same item twice is checked against the combined
// total. Over-receipt is rejected outright rather than clamped so the
// paper trail forces a manual order amendment.
func applyReceipt(items []models.PurchaseOrderItem, inputs []ReceiveItemInput) error {
	byID := make(map[int64]*models.PurchaseOrderItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	requested := make(map[int64]int32, len(inputs))
	for _, input := range inputs {
		item, ok := byID[input.OrderItemID]
		if !ok {
			return utils.NewDomainErrorf(utils.ErrNotFound, "line item %d not found on this order", input.OrderItemID)
		}
		if input.QuantityReceived <= 0 {
			return utils.NewDomainErrorf(utils.ErrValidation,
				"received quantity for line item %d must be positive, got %d", input.OrderItemID, input.QuantityReceived)
		}
		if input.RejectedQuantity < 0 {
			return utils.NewDomainErrorf(utils.ErrValidation,
				"rejected quantity for line item %d cannot be negative", input.OrderItemID)
		}
		requested[input.OrderItemID] += input.QuantityReceived
		if item.QuantityReceived+requested[input.OrderItemID] > item.QuantityOrdered {
			return utils.NewDomainErrorf(utils.ErrOverReceipt,
				"line item %d: receiving %d would exceed ordered %d (already received %d)",
				input.OrderItemID, requested[input.OrderItemID], item.QuantityOrdered, item.QuantityReceived)
		}
	}

	// All entries valid; apply the per-item totals in one pass.
	for itemID, quantity := range requested {
		byID[itemID].QuantityReceived += quantity
	}
	return nil
}

// ReceiveItems records one delivery event against an approved or
// partially received order. The whole call is a single transaction:
// line-item updates, the receiving record, the stock adjustments and
// the status recomputation land together or not at all. The FOR UPDATE
// lock on the order row serializes concurrent deliveries for the same
// order.
func (s *ProcurementHandler) ReceiveItems(ctx context.Context, orderID int64, req ReceiveItemsRequest, userID int64) (*models.PurchaseOrder, error) {
	if len(req.Items) == 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "receiving payload requires at least one entry")
	}

	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NewDomainErrorf(utils.ErrNotFound, "purchase order %d not found", orderID)
			}
			return err
		}
		if !order.Status.CanReceive() {
			return utils.NewDomainErrorf(utils.ErrInvalidState,
				"purchase order %s is %s; goods can only be received after approval", order.OrderNumber, order.Status)
		}
		if err := tx.Where("order_id = ?", orderID).Order("id").Find(&order.Items).Error; err != nil {
			return err
		}

		if err := applyReceipt(order.Items, req.Items); err != nil {
			return err
		}

		byID := make(map[int64]*models.PurchaseOrderItem, len(order.Items))
		for i := range order.Items {
			byID[order.Items[i].ID] = &order.Items[i]
		}

		now := time.Now()
		record := models.ReceivingRecord{
			OrderID:       &order.ID,
			VendorID:      &order.VendorID,
			ReceivingType: models.ReceivingPurchaseOrder,
			ReceivedBy:    userID,
			ReceivedAt:    now,
			Notes:         req.Notes,
		}
		number, err := nextDocNumber(tx, &models.ReceivingRecord{}, "receipt_number", "RCV"+now.Format("20060102"))
		if err != nil {
			return err
		}
		record.ReceiptNumber = number

		totalValue := decimal.Zero
		for _, input := range req.Items {
			item := byID[input.OrderItemID]
			cost, _ := decimal.NewFromString(item.UnitCost)
			totalValue = totalValue.Add(cost.Mul(decimal.NewFromInt32(input.QuantityReceived)))
			record.ItemCount++
			record.TotalQuantity += input.QuantityReceived
		}
		record.TotalValue = totalValue.StringFixed(2)

		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		for _, input := range req.Items {
			item := byID[input.OrderItemID]
			itemID := item.ID
			receivingItem := models.ReceivingItem{
				RecordID:         record.ID,
				OrderItemID:      &itemID,
				ProductID:        item.ProductID,
				QuantityReceived: input.QuantityReceived,
				RejectedQuantity: input.RejectedQuantity,
				Condition:        input.Condition,
				UnitCost:         item.UnitCost,
			}
			if err := tx.Create(&receivingItem).Error; err != nil {
				return err
			}

			if err := tx.Save(item).Error; err != nil {
				return err
			}

			// Catalogued items restock on receipt; uncataloged items
			// only exist on the paper trail until they are created as
			// products.
			if item.ProductID != nil && order.OrderType != models.OrderTypeDonation {
				recordID := record.ID
				if _, err := inventory.ApplyAdjustment(tx, *item.ProductID, input.QuantityReceived,
					models.AdjustmentRestock, models.ReasonPOReceived,
					"receiving_record", &recordID, nil, userID); err != nil {
					return err
				}
			}
		}

		newStatus := statusAfterReceiving(order.Items)
		if !order.Status.CanTransitionTo(newStatus) && order.Status != newStatus {
			return utils.NewDomainErrorf(utils.ErrInvalidTransition,
				"cannot move purchase order %s from %s to %s", order.OrderNumber, order.Status, newStatus)
		}
		order.Status = newStatus
		if newStatus == models.OrderReceived {
			order.DeliveredAt = &now
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	_ = s.redis.Del(ctx, inventory.REORDER_REPORT_CACHE_KEY)

	return &order, nil
}

type DonationItemInput struct {
	ProductID        *int32  `json:"product_id"`
	QuantityReceived int32   `json:"quantity_received" binding:"required"`
	Condition        *string `json:"condition"`
	UnitValue        string  `json:"unit_value"`
}

type ReceiveDonationRequest struct {
	VendorID        *int32              `json:"vendor_id"`
	Items           []DonationItemInput `json:"items" binding:"required"`
	FairMarketValue string              `json:"fair_market_value"`
	ReceiptIssued   bool                `json:"receipt_issued"`
	Notes           *string             `json:"notes"`
}

// ReceiveDonation records a non-PO receipt. Donated goods restock
// catalogued products with a donation reason; the fair market value is
// carried for donor receipt paperwork only.
func (s *ProcurementHandler) ReceiveDonation(ctx context.Context, req ReceiveDonationRequest, userID int64) (*models.ReceivingRecord, error) {
	if len(req.Items) == 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "donation receipt requires at least one item")
	}
	for _, input := range req.Items {
		if input.QuantityReceived <= 0 {
			return nil, utils.NewDomainErrorf(utils.ErrValidation,
				"donation item quantity must be positive, got %d", input.QuantityReceived)
		}
	}
	fmv, err := parseAmount(req.FairMarketValue)
	if err != nil || fmv.IsNegative() {
		return nil, utils.NewDomainErrorf(utils.ErrValidation, "invalid fair market value %q", req.FairMarketValue)
	}

	var record models.ReceivingRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		fmvStr := fmv.StringFixed(2)
		record = models.ReceivingRecord{
			VendorID:        req.VendorID,
			ReceivingType:   models.ReceivingDonation,
			ReceivedBy:      userID,
			ReceivedAt:      now,
			FairMarketValue: &fmvStr,
			ReceiptIssued:   req.ReceiptIssued,
			Notes:           req.Notes,
		}
		number, err := nextDocNumber(tx, &models.ReceivingRecord{}, "receipt_number", "RCV"+now.Format("20060102"))
		if err != nil {
			return err
		}
		record.ReceiptNumber = number

		totalValue := decimal.Zero
		for _, input := range req.Items {
			unitValue, err := parseAmount(input.UnitValue)
			if err != nil || unitValue.IsNegative() {
				return utils.NewDomainErrorf(utils.ErrValidation, "invalid unit value %q", input.UnitValue)
			}
			totalValue = totalValue.Add(unitValue.Mul(decimal.NewFromInt32(input.QuantityReceived)))
			record.ItemCount++
			record.TotalQuantity += input.QuantityReceived
		}
		record.TotalValue = totalValue.StringFixed(2)

		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		for _, input := range req.Items {
			unitValue, _ := parseAmount(input.UnitValue)
			receivingItem := models.ReceivingItem{
				RecordID:         record.ID,
				ProductID:        input.ProductID,
				QuantityReceived: input.QuantityReceived,
				Condition:        input.Condition,
				UnitCost:         unitValue.StringFixed(2),
			}
			if err := tx.Create(&receivingItem).Error; err != nil {
				return err
			}

			if input.ProductID != nil {
				recordID := record.ID
				if _, err := inventory.ApplyAdjustment(tx, *input.ProductID, input.QuantityReceived,
					models.AdjustmentRestock, models.ReasonDonationReceived,
					"receiving_record", &recordID, nil, userID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.redis.Del(ctx, inventory.REORDER_REPORT_CACHE_KEY)

	return &record, nil
}

func (s *ProcurementHandler) GetReceivingRecord(ctx context.Context, recordID int64) (*models.ReceivingRecord, error) {
	var record models.ReceivingRecord
	if err := s.db.WithContext(ctx).Preload("Items").First(&record, recordID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "receiving record %d not found", recordID)
		}
		return nil, err
	}
	return &record, nil
}

type ListReceivingRecordsRequest struct {
	OrderID       *int64
	ReceivingType *string
	Limit         int
	Offset        int
}

func (s *ProcurementHandler) ListReceivingRecords(ctx context.Context, req ListReceivingRecordsRequest) ([]models.ReceivingRecord, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.ReceivingRecord{})
	if req.OrderID != nil {
		query = query.Where("order_id = ?", *req.OrderID)
	}
	if req.ReceivingType != nil {
		query = query.Where("receiving_type = ?", *req.ReceivingType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var records []models.ReceivingRecord
	if err := query.Order("received_at DESC").Limit(limit).Offset(req.Offset).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
