package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

type ProcurementHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewProcurementHandler(db *gorm.DB, redisClient *redis.Client) *ProcurementHandler {
	return &ProcurementHandler{
		db:    db,
		redis: redisClient,
	}
}

type OrderItemInput struct {
	ProductID       *int32 `json:"product_id"`
	SKU             string `json:"sku"`
	ProductName     string `json:"product_name"`
	QuantityOrdered int32  `json:"quantity_ordered" binding:"required"`
	UnitCost        string `json:"unit_cost"`
	TaxAmount       string `json:"tax_amount"`
}

type CreatePurchaseOrderRequest struct {
	VendorID       int32            `json:"vendor_id" binding:"required"`
	OrderType      string           `json:"order_type"`
	ExpectedAt     *time.Time       `json:"expected_at"`
	TaxAmount      string           `json:"tax_amount"`
	ShippingAmount string           `json:"shipping_amount"`
	OtherCharges   string           `json:"other_charges"`
	DiscountAmount string           `json:"discount_amount"`
	Notes          *string          `json:"notes"`
	Items          []OrderItemInput `json:"items" binding:"required"`
}

// CreatePurchaseOrder creates a draft order with computed line and
// order totals. Totals are always derived here; they are never
// accepted from the request.
func (s *ProcurementHandler) CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest, userID int64) (*models.PurchaseOrder, error) {
	if req.VendorID == 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "vendor is required")
	}
	if len(req.Items) == 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "purchase order requires at least one line item")
	}

	orderType := models.OrderType(req.OrderType)
	if req.OrderType == "" {
		orderType = models.OrderTypePurchase
	}
	if !orderType.IsValid() {
		return nil, utils.NewDomainErrorf(utils.ErrValidation, "unknown order type %q", req.OrderType)
	}

	var vendor models.Vendor
	if err := s.db.WithContext(ctx).First(&vendor, req.VendorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrValidation, "vendor %d does not exist", req.VendorID)
		}
		return nil, err
	}

	now := time.Now()
	order := models.PurchaseOrder{
		VendorID:   req.VendorID,
		OrderType:  orderType,
		Status:     models.OrderDraft,
		OrderDate:  now,
		ExpectedAt: req.ExpectedAt,
		Notes:      req.Notes,
		CreatedBy:  userID,
	}
	for field, value := range map[string]string{
		"tax":      req.TaxAmount,
		"shipping": req.ShippingAmount,
		"other":    req.OtherCharges,
		"discount": req.DiscountAmount,
	} {
		amount, err := parseAmount(value)
		if err != nil || amount.IsNegative() {
			return nil, utils.NewDomainErrorf(utils.ErrValidation, "invalid %s amount %q", field, value)
		}
	}
	order.TaxAmount = normalizeAmount(req.TaxAmount)
	order.ShippingAmount = normalizeAmount(req.ShippingAmount)
	order.OtherCharges = normalizeAmount(req.OtherCharges)
	order.DiscountAmount = normalizeAmount(req.DiscountAmount)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextDocNumber(tx, &models.PurchaseOrder{}, "order_number", "PO"+now.Format("200601"))
		if err != nil {
			return err
		}
		order.OrderNumber = number

		items := make([]models.PurchaseOrderItem, 0, len(req.Items))
		for _, input := range req.Items {
			item, err := s.buildLineItem(tx, input)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		recalculateTotals(&order, items)

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for idx := range items {
			items[idx].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// buildLineItem validates one input row and resolves the product
// snapshot. Uncataloged items (nil product) carry their own SKU/name.
func (s *ProcurementHandler) buildLineItem(tx *gorm.DB, input OrderItemInput) (*models.PurchaseOrderItem, error) {
	if input.QuantityOrdered <= 0 {
		return nil, utils.NewDomainErrorf(utils.ErrValidation, "quantity ordered must be positive, got %d", input.QuantityOrdered)
	}

	item := models.PurchaseOrderItem{
		ProductID:       input.ProductID,
		SKU:             input.SKU,
		ProductName:     input.ProductName,
		QuantityOrdered: input.QuantityOrdered,
	}

	unitCost, err := parseAmount(input.UnitCost)
	if err != nil {
		return nil, utils.NewDomainErrorf(utils.ErrValidation, "invalid unit cost %q", input.UnitCost)
	}

	if input.ProductID != nil {
		var product models.Product
		if err := tx.First(&product, *input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, utils.NewDomainErrorf(utils.ErrValidation, "product %d does not exist", *input.ProductID)
			}
			return nil, err
		}
		if item.SKU == "" {
			item.SKU = product.SKU
		}
		if item.ProductName == "" {
			item.ProductName = product.ProductName
		}
		if input.UnitCost == "" {
			unitCost, _ = decimal.NewFromString(product.CostPrice)
		}
	}
	if item.ProductName == "" {
		return nil, utils.NewDomainError(utils.ErrValidation, "line item requires a product reference or a name")
	}
	if unitCost.IsNegative() {
		return nil, utils.NewDomainErrorf(utils.ErrValidation, "unit cost cannot be negative, got %s", unitCost)
	}

	tax, err := parseAmount(input.TaxAmount)
	if err != nil || tax.IsNegative() {
		return nil, utils.NewDomainErrorf(utils.ErrValidation, "invalid line tax amount %q", input.TaxAmount)
	}

	item.UnitCost = unitCost.StringFixed(2)
	item.TaxAmount = tax.StringFixed(2)
	item.LineTotal = lineTotal(item.QuantityOrdered, unitCost, tax).StringFixed(2)

	return &item, nil
}

// lineTotal = quantity * unit cost + tax.
func lineTotal(quantity int32, unitCost, tax decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt32(quantity)).Add(tax)
}

// recalculateTotals recomputes subtotal and total from the line items
// and the order-level charges. total = subtotal + tax + shipping +
// other charges - discount. Called after every item mutation while the
// order is in draft; receiving never changes monetary fields.
func recalculateTotals(order *models.PurchaseOrder, items []models.PurchaseOrderItem) {
	subtotal := decimal.Zero
	for _, item := range items {
		line, _ := decimal.NewFromString(item.LineTotal)
		subtotal = subtotal.Add(line)
	}

	tax, _ := decimal.NewFromString(order.TaxAmount)
	shipping, _ := decimal.NewFromString(order.ShippingAmount)
	other, _ := decimal.NewFromString(order.OtherCharges)
	discount, _ := decimal.NewFromString(order.DiscountAmount)

	total := subtotal.Add(tax).Add(shipping).Add(other).Sub(discount)

	order.Subtotal = subtotal.StringFixed(2)
	order.TotalAmount = total.StringFixed(2)
}

type UpdateDraftRequest struct {
	ExpectedAt     *time.Time `json:"expected_at"`
	TaxAmount      *string    `json:"tax_amount"`
	ShippingAmount *string    `json:"shipping_amount"`
	OtherCharges   *string    `json:"other_charges"`
	DiscountAmount *string    `json:"discount_amount"`
	Notes          *string    `json:"notes"`
}

// UpdateDraft edits order-level charges and metadata. Draft only.
func (s *ProcurementHandler) UpdateDraft(ctx context.Context, orderID int64, req UpdateDraftRequest, userID int64) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDraftOrder(tx, orderID, &order); err != nil {
			return err
		}

		if req.ExpectedAt != nil {
			order.ExpectedAt = req.ExpectedAt
		}
		if req.Notes != nil {
			order.Notes = req.Notes
		}
		for field, value := range map[string]*string{
			"tax":      req.TaxAmount,
			"shipping": req.ShippingAmount,
			"other":    req.OtherCharges,
			"discount": req.DiscountAmount,
		} {
			if value == nil {
				continue
			}
			amount, err := parseAmount(*value)
			if err != nil || amount.IsNegative() {
				return utils.NewDomainErrorf(utils.ErrValidation, "invalid %s amount %q", field, *value)
			}
		}
		if req.TaxAmount != nil {
			order.TaxAmount = normalizeAmount(*req.TaxAmount)
		}
		if req.ShippingAmount != nil {
			order.ShippingAmount = normalizeAmount(*req.ShippingAmount)
		}
		if req.OtherCharges != nil {
			order.OtherCharges = normalizeAmount(*req.OtherCharges)
		}
		if req.DiscountAmount != nil {
			order.DiscountAmount = normalizeAmount(*req.DiscountAmount)
		}

		recalculateTotals(&order, order.Items)
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AddItem appends a line item to a draft order and recomputes totals.
func (s *ProcurementHandler) AddItem(ctx context.Context, orderID int64, input OrderItemInput, userID int64) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDraftOrder(tx, orderID, &order); err != nil {
			return err
		}

		item, err := s.buildLineItem(tx, input)
		if err != nil {
			return err
		}
		item.OrderID = order.ID
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		order.Items = append(order.Items, *item)

		recalculateTotals(&order, order.Items)
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type UpdateItemRequest struct {
	QuantityOrdered *int32  `json:"quantity_ordered"`
	UnitCost        *string `json:"unit_cost"`
	TaxAmount       *string `json:"tax_amount"`
}

// UpdateItem edits an existing line item on a draft order.
func (s *ProcurementHandler) UpdateItem(ctx context.Context, orderID, itemID int64, req UpdateItemRequest, userID int64) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDraftOrder(tx, orderID, &order); err != nil {
			return err
		}

		idx := -1
		for i := range order.Items {
			if order.Items[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return utils.NewDomainErrorf(utils.ErrNotFound, "line item %d not found on order %d", itemID, orderID)
		}
		item := &order.Items[idx]

		if req.QuantityOrdered != nil {
			if *req.QuantityOrdered <= 0 {
				return utils.NewDomainErrorf(utils.ErrValidation, "quantity ordered must be positive, got %d", *req.QuantityOrdered)
			}
			item.QuantityOrdered = *req.QuantityOrdered
		}
		if req.UnitCost != nil {
			cost, err := parseAmount(*req.UnitCost)
			if err != nil || cost.IsNegative() {
				return utils.NewDomainErrorf(utils.ErrValidation, "invalid unit cost %q", *req.UnitCost)
			}
			item.UnitCost = cost.StringFixed(2)
		}
		if req.TaxAmount != nil {
			tax, err := parseAmount(*req.TaxAmount)
			if err != nil || tax.IsNegative() {
				return utils.NewDomainErrorf(utils.ErrValidation, "invalid line tax amount %q", *req.TaxAmount)
			}
			item.TaxAmount = tax.StringFixed(2)
		}

		cost, _ := decimal.NewFromString(item.UnitCost)
		tax, _ := decimal.NewFromString(item.TaxAmount)
		item.LineTotal = lineTotal(item.QuantityOrdered, cost, tax).StringFixed(2)

		if err := tx.Save(item).Error; err != nil {
			return err
		}

		recalculateTotals(&order, order.Items)
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// RemoveItem deletes a line item from a draft order. Items are never
// deleted once the order leaves draft.
func (s *ProcurementHandler) RemoveItem(ctx context.Context, orderID, itemID int64, userID int64) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDraftOrder(tx, orderID, &order); err != nil {
			return err
		}

		idx := -1
		for i := range order.Items {
			if order.Items[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return utils.NewDomainErrorf(utils.ErrNotFound, "line item %d not found on order %d", itemID, orderID)
		}

		if err := tx.Delete(&models.PurchaseOrderItem{}, itemID).Error; err != nil {
			return err
		}
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)

		recalculateTotals(&order, order.Items)
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *ProcurementHandler) GetPurchaseOrder(ctx context.Context, orderID int64) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := s.db.WithContext(ctx).Preload("Vendor").Preload("Items").First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "purchase order %d not found", orderID)
		}
		return nil, err
	}
	return &order, nil
}

type ListPurchaseOrdersRequest struct {
	Status   *string
	VendorID *int32
	Limit    int
	Offset   int
}

func (s *ProcurementHandler) ListPurchaseOrders(ctx context.Context, req ListPurchaseOrdersRequest) ([]models.PurchaseOrder, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.PurchaseOrder{})
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}
	if req.VendorID != nil {
		query = query.Where("vendor_id = ?", *req.VendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var orders []models.PurchaseOrder
	if err := query.Preload("Vendor").Order("order_date DESC").Limit(limit).Offset(req.Offset).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// lockDraftOrder loads an order with its items under FOR UPDATE and
// verifies it is still mutable.
func lockDraftOrder(tx *gorm.DB, orderID int64, order *models.PurchaseOrder) error {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NewDomainErrorf(utils.ErrNotFound, "purchase order %d not found", orderID)
		}
		return err
	}
	if order.Status != models.OrderDraft {
		return utils.NewDomainErrorf(utils.ErrInvalidState,
			"purchase order %s is %s; items and charges are only editable in draft", order.OrderNumber, order.Status)
	}
	return tx.Where("order_id = ?", orderID).Order("id").Find(&order.Items).Error
}

// nextDocNumber issues the next sequential document number within the
// date prefix. Two concurrent issuers can still draw the same sequence;
// the unique index on the number column turns that into a constraint
// error the caller resubmits, rather than a silently reused number.
func nextDocNumber(tx *gorm.DB, model interface{}, column, prefix string) (string, error) {
	var seq int64
	if err := tx.Model(model).Where(column+" LIKE ?", prefix+"%").Count(&seq).Error; err != nil {
		return "", err
	}
	return formatDocNumber(prefix, seq+1), nil
}

func formatDocNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

func parseAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

func normalizeAmount(value string) string {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return "0.00"
	}
	return amount.StringFixed(2)
}
