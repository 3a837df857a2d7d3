package handler

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"thriftpos-system/internal/database/models"
	"thriftpos-system/internal/utils"
)

type CreateVendorRequest struct {
	VendorCode    string  `json:"vendor_code" binding:"required"`
	VendorName    string  `json:"vendor_name" binding:"required"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
}

func (s *InventoryHandler) CreateVendor(ctx context.Context, req CreateVendorRequest) (*models.Vendor, error) {
	if req.VendorCode == "" || req.VendorName == "" {
		return nil, utils.NewDomainError(utils.ErrValidation, "vendor code and vendor name are required")
	}

	vendor := models.Vendor{
		VendorCode:    req.VendorCode,
		VendorName:    req.VendorName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		IsActive:      true,
	}

	if err := s.db.WithContext(ctx).Create(&vendor).Error; err != nil {
		return nil, err
	}

	_ = s.redis.Del(ctx, VENDORS_CACHE_KEY)

	return &vendor, nil
}

type UpdateVendorRequest struct {
	VendorName    *string `json:"vendor_name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"is_active"`
}

func (s *InventoryHandler) UpdateVendor(ctx context.Context, id int32, req UpdateVendorRequest) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.WithContext(ctx).First(&vendor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "vendor %d not found", id)
		}
		return nil, err
	}

	if req.VendorName != nil {
		vendor.VendorName = *req.VendorName
	}
	if req.ContactPerson != nil {
		vendor.ContactPerson = req.ContactPerson
	}
	if req.Phone != nil {
		vendor.Phone = req.Phone
	}
	if req.Email != nil {
		vendor.Email = req.Email
	}
	if req.Address != nil {
		vendor.Address = req.Address
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(&vendor).Error; err != nil {
		return nil, err
	}

	_ = s.redis.Del(ctx, VENDORS_CACHE_KEY, REORDER_REPORT_CACHE_KEY)

	return &vendor, nil
}

func (s *InventoryHandler) GetVendor(ctx context.Context, id int32) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.WithContext(ctx).First(&vendor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "vendor %d not found", id)
		}
		return nil, err
	}
	return &vendor, nil
}

func (s *InventoryHandler) ListVendors(ctx context.Context, activeOnly bool) ([]models.Vendor, error) {
	if !activeOnly {
		var vendors []models.Vendor
		if err := s.db.WithContext(ctx).Order("vendor_name").Find(&vendors).Error; err != nil {
			return nil, err
		}
		return vendors, nil
	}

	if cached, err := s.redis.Get(ctx, VENDORS_CACHE_KEY).Result(); err == nil {
		var vendors []models.Vendor
		if err := json.Unmarshal([]byte(cached), &vendors); err == nil {
			return vendors, nil
		}
	}

	var vendors []models.Vendor
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("vendor_name").Find(&vendors).Error; err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(vendors); err == nil {
		_ = s.redis.Set(ctx, VENDORS_CACHE_KEY, payload, CACHE_TTL_MEDIUM)
	}

	return vendors, nil
}

type CreateProductRequest struct {
	SKU             string  `json:"sku" binding:"required"`
	ProductName     string  `json:"product_name" binding:"required"`
	ProductPrice    string  `json:"product_price"`
	CostPrice       string  `json:"cost_price"`
	ReorderLevel    int32   `json:"reorder_level"`
	ReorderQuantity int32   `json:"reorder_quantity"`
	PrimaryVendorID *int32  `json:"primary_vendor_id"`
	Notes           *string `json:"notes"`
}

func (s *InventoryHandler) CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if req.SKU == "" || req.ProductName == "" {
		return nil, utils.NewDomainError(utils.ErrValidation, "sku and product name are required")
	}

	price, err := parseMoney(req.ProductPrice)
	if err != nil {
		return nil, utils.NewDomainErrorf(utils.ErrValidation, "invalid product price %q", req.ProductPrice)
	}
	cost, err := parseMoney(req.CostPrice)
	if err != nil {
		return nil, utils.NewDomainErrorf(utils.ErrValidation, "invalid cost price %q", req.CostPrice)
	}
	if price.IsNegative() || cost.IsNegative() {
		return nil, utils.NewDomainError(utils.ErrValidation, "prices cannot be negative")
	}
	if req.ReorderLevel < 0 || req.ReorderQuantity < 0 {
		return nil, utils.NewDomainError(utils.ErrValidation, "reorder thresholds cannot be negative")
	}

	product := models.Product{
		SKU:             req.SKU,
		ProductName:     req.ProductName,
		ProductPrice:    price.StringFixed(2),
		CostPrice:       cost.StringFixed(2),
		ReorderLevel:    req.ReorderLevel,
		ReorderQuantity: req.ReorderQuantity,
		PrimaryVendorID: req.PrimaryVendorID,
		Notes:           req.Notes,
		IsActive:        true,
	}

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx)

	return &product, nil
}

// UpdateProductRequest deliberately has no stock quantity field: stock
// only moves through ApplyAdjustment.
type UpdateProductRequest struct {
	ProductName     *string `json:"product_name"`
	ProductPrice    *string `json:"product_price"`
	CostPrice       *string `json:"cost_price"`
	ReorderLevel    *int32  `json:"reorder_level"`
	ReorderQuantity *int32  `json:"reorder_quantity"`
	PrimaryVendorID *int32  `json:"primary_vendor_id"`
	IsActive        *bool   `json:"is_active"`
	Notes           *string `json:"notes"`
}

func (s *InventoryHandler) UpdateProduct(ctx context.Context, id int32, req UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "product %d not found", id)
		}
		return nil, err
	}

	if req.ProductName != nil {
		product.ProductName = *req.ProductName
	}
	if req.ProductPrice != nil {
		price, err := parseMoney(*req.ProductPrice)
		if err != nil || price.IsNegative() {
			return nil, utils.NewDomainErrorf(utils.ErrValidation, "invalid product price %q", *req.ProductPrice)
		}
		product.ProductPrice = price.StringFixed(2)
	}
	if req.CostPrice != nil {
		cost, err := parseMoney(*req.CostPrice)
		if err != nil || cost.IsNegative() {
			return nil, utils.NewDomainErrorf(utils.ErrValidation, "invalid cost price %q", *req.CostPrice)
		}
		product.CostPrice = cost.StringFixed(2)
	}
	if req.ReorderLevel != nil {
		if *req.ReorderLevel < 0 {
			return nil, utils.NewDomainError(utils.ErrValidation, "reorder level cannot be negative")
		}
		product.ReorderLevel = *req.ReorderLevel
	}
	if req.ReorderQuantity != nil {
		if *req.ReorderQuantity < 0 {
			return nil, utils.NewDomainError(utils.ErrValidation, "reorder quantity cannot be negative")
		}
		product.ReorderQuantity = *req.ReorderQuantity
	}
	if req.PrimaryVendorID != nil {
		product.PrimaryVendorID = req.PrimaryVendorID
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		product.Notes = req.Notes
	}

	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}

	s.InvalidateInventoryCaches(ctx)

	return &product, nil
}

func (s *InventoryHandler) GetProduct(ctx context.Context, id int32) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("PrimaryVendor").First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NewDomainErrorf(utils.ErrNotFound, "product %d not found", id)
		}
		return nil, err
	}
	return &product, nil
}

type ListProductsRequest struct {
	ActiveOnly bool
	VendorID   *int32
	Search     *string
	Limit      int
	Offset     int
}

func (s *InventoryHandler) ListProducts(ctx context.Context, req ListProductsRequest) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if req.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if req.VendorID != nil {
		query = query.Where("primary_vendor_id = ?", *req.VendorID)
	}
	if req.Search != nil {
		term := "%" + *req.Search + "%"
		query = query.Where("product_name ILIKE ? OR sku ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var products []models.Product
	if err := query.Order("product_name").Limit(limit).Offset(req.Offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func parseMoney(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
