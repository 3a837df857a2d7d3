package models

import "time"

type Product struct {
	ID              int32     `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU             string    `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	ProductName     string    `gorm:"size:255;not null" json:"product_name"`
	ProductPrice    string    `gorm:"type:varchar(32);not null;default:'0.00'" json:"product_price"`
	CostPrice       string    `gorm:"type:varchar(32);not null;default:'0.00'" json:"cost_price"`
	QuantityInStock int32     `gorm:"not null;default:0;check:quantity_in_stock >= 0" json:"quantity_in_stock"`
	ReorderLevel    int32     `gorm:"not null;default:0" json:"reorder_level"`
	ReorderQuantity int32     `gorm:"not null;default:0" json:"reorder_quantity"`
	PrimaryVendorID *int32    `gorm:"index" json:"primary_vendor_id,omitempty"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	Notes           *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	PrimaryVendor *Vendor `gorm:"foreignKey:PrimaryVendorID" json:"primary_vendor,omitempty"`
}

// AdjustmentType classifies what caused a stock change.
type AdjustmentType string

const (
	AdjustmentRestock        AdjustmentType = "restock"
	AdjustmentReconciliation AdjustmentType = "reconciliation"
	AdjustmentSale           AdjustmentType = "sale"
	AdjustmentDamage         AdjustmentType = "damage"
	AdjustmentCorrection     AdjustmentType = "correction"
)

func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentRestock, AdjustmentReconciliation, AdjustmentSale,
		AdjustmentDamage, AdjustmentCorrection:
		return true
	}
	return false
}

// ReasonCode is the enumerated justification required on every
// adjustment. Free text is not accepted at the boundary.
type ReasonCode string

const (
	ReasonPOReceived       ReasonCode = "po_received"
	ReasonDonationReceived ReasonCode = "donation_received"
	ReasonCountVariance    ReasonCode = "count_variance"
	ReasonDamaged          ReasonCode = "damaged"
	ReasonExpired          ReasonCode = "expired"
	ReasonTheft            ReasonCode = "theft"
	ReasonDataEntryError   ReasonCode = "data_entry_error"
	ReasonSaleCompleted    ReasonCode = "sale_completed"
)

func (r ReasonCode) IsValid() bool {
	switch r {
	case ReasonPOReceived, ReasonDonationReceived, ReasonCountVariance,
		ReasonDamaged, ReasonExpired, ReasonTheft, ReasonDataEntryError,
		ReasonSaleCompleted:
		return true
	}
	return false
}

// InventoryAdjustment is the sole audit record for stock changes. Every
// mutation of Product.QuantityInStock writes exactly one row here, in
// the same transaction.
type InventoryAdjustment struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID      int32          `gorm:"not null;index" json:"product_id"`
	AdjustmentType AdjustmentType `gorm:"type:varchar(20);not null;index" json:"adjustment_type"`
	QuantityBefore int32          `gorm:"not null" json:"quantity_before"`
	QuantityAfter  int32          `gorm:"not null" json:"quantity_after"`
	QuantityChange int32          `gorm:"not null" json:"quantity_change"`
	ReasonCode     ReasonCode     `gorm:"type:varchar(30);not null" json:"reason_code"`
	ReferenceType  *string        `gorm:"size:30" json:"reference_type,omitempty"`
	ReferenceID    *int64         `json:"reference_id,omitempty"`
	Notes          *string        `gorm:"size:255" json:"notes,omitempty"`
	AdjustedBy     int64          `gorm:"not null" json:"adjusted_by"`
	CreatedAt      time.Time      `json:"created_at"`
}

type CountSessionStatus string

const (
	CountSessionOpen      CountSessionStatus = "open"
	CountSessionCompleted CountSessionStatus = "completed"
	CountSessionCancelled CountSessionStatus = "cancelled"
)

type CountSession struct {
	ID            int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionNumber string             `gorm:"size:30;uniqueIndex;not null" json:"session_number"`
	Status        CountSessionStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Location      *string            `gorm:"size:100" json:"location,omitempty"`
	StartedBy     int64              `gorm:"not null" json:"started_by"`
	StartedAt     time.Time          `gorm:"not null" json:"started_at"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	Items []CountItem `gorm:"foreignKey:SessionID" json:"items,omitempty"`
}

type CountItemStatus string

const (
	CountItemPending  CountItemStatus = "pending"
	CountItemCounted  CountItemStatus = "counted"
	CountItemVerified CountItemStatus = "verified"
)

type CountItem struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID       int64           `gorm:"not null;index" json:"session_id"`
	ProductID       int32           `gorm:"not null;index" json:"product_id"`
	SystemQuantity  int32           `gorm:"not null" json:"system_quantity"`
	CountedQuantity *int32          `json:"counted_quantity,omitempty"` // nil until counted
	Status          CountItemStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RecountRequired bool            `gorm:"not null;default:false" json:"recount_required"`
	CountedBy       *int64          `json:"counted_by,omitempty"`
	CountedAt       *time.Time      `json:"counted_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// HasCount reports whether a counted quantity has been recorded.
func (c *CountItem) HasCount() bool {
	return c.CountedQuantity != nil
}

// Variance is counted minus system, sign preserved. Zero when no count
// has been recorded yet.
func (c *CountItem) Variance() int32 {
	if c.CountedQuantity == nil {
		return 0
	}
	return *c.CountedQuantity - c.SystemQuantity
}

// IsResolved reports whether the item no longer blocks reconciliation
// completion.
func (c *CountItem) IsResolved() bool {
	return c.Status == CountItemVerified && !c.RecountRequired
}

type ReconciliationStatus string

const (
	ReconciliationInReview  ReconciliationStatus = "in_review"
	ReconciliationCompleted ReconciliationStatus = "completed"
	ReconciliationCancelled ReconciliationStatus = "cancelled"
)

type Reconciliation struct {
	ID          int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID   int64                `gorm:"uniqueIndex;not null" json:"session_id"`
	Status      ReconciliationStatus `gorm:"type:varchar(20);not null;default:'in_review'" json:"status"`
	CreatedBy   int64                `gorm:"not null" json:"created_by"`
	CompletedBy *int64               `json:"completed_by,omitempty"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	Notes       *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`

	Session *CountSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}
