package models

import "time"

// OrderStatus is the purchase order lifecycle state.
type OrderStatus string

const (
	OrderDraft             OrderStatus = "draft"
	OrderSubmitted         OrderStatus = "submitted"
	OrderApproved          OrderStatus = "approved"
	OrderPartiallyReceived OrderStatus = "partially_received"
	OrderReceived          OrderStatus = "received"
	OrderClosed            OrderStatus = "closed"
	OrderCancelled         OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderDraft, OrderSubmitted, OrderApproved, OrderPartiallyReceived,
		OrderReceived, OrderClosed, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderClosed || s == OrderCancelled
}

// CanReceive reports whether goods may be received in this status.
func (s OrderStatus) CanReceive() bool {
	return s == OrderApproved || s == OrderPartiallyReceived
}

// CanTransitionTo encodes the legal status graph. Receiving-driven
// statuses (partially_received, received) are only ever set by the
// receiving processor, never by a direct transition request.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderDraft:
		return target == OrderSubmitted
	case OrderSubmitted:
		return target == OrderApproved
	case OrderApproved:
		return target == OrderPartiallyReceived || target == OrderReceived
	case OrderPartiallyReceived:
		return target == OrderPartiallyReceived || target == OrderReceived
	case OrderReceived:
		return target == OrderClosed
	}
	return false
}

type OrderType string

const (
	OrderTypePurchase    OrderType = "purchase"
	OrderTypeDonation    OrderType = "donation"
	OrderTypeConsignment OrderType = "consignment"
	OrderTypeTransfer    OrderType = "transfer"
)

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypePurchase, OrderTypeDonation, OrderTypeConsignment, OrderTypeTransfer:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type Vendor struct {
	ID            int32     `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorCode    string    `gorm:"size:100;uniqueIndex;not null" json:"vendor_code"`
	VendorName    string    `gorm:"size:255;not null" json:"vendor_name"`
	ContactPerson *string   `gorm:"size:100" json:"contact_person,omitempty"`
	Phone         *string   `gorm:"size:50" json:"phone,omitempty"`
	Email         *string   `gorm:"size:100" json:"email,omitempty"`
	Address       *string   `gorm:"size:255" json:"address,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:PrimaryVendorID" json:"products,omitempty"`
}

type PurchaseOrder struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string      `gorm:"size:30;uniqueIndex;not null" json:"order_number"`
	VendorID    int32       `gorm:"not null;index" json:"vendor_id"`
	OrderType   OrderType   `gorm:"type:varchar(20);not null;default:'purchase'" json:"order_type"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	OrderDate   time.Time   `gorm:"not null" json:"order_date"`
	ExpectedAt  *time.Time  `json:"expected_at,omitempty"`
	DeliveredAt *time.Time  `json:"delivered_at,omitempty"`

	Subtotal       string `gorm:"type:varchar(32);not null;default:'0.00'" json:"subtotal"`
	TaxAmount      string `gorm:"type:varchar(32);not null;default:'0.00'" json:"tax_amount"`
	ShippingAmount string `gorm:"type:varchar(32);not null;default:'0.00'" json:"shipping_amount"`
	OtherCharges   string `gorm:"type:varchar(32);not null;default:'0.00'" json:"other_charges"`
	DiscountAmount string `gorm:"type:varchar(32);not null;default:'0.00'" json:"discount_amount"`
	TotalAmount    string `gorm:"type:varchar(32);not null;default:'0.00'" json:"total_amount"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	Notes         *string       `gorm:"type:text" json:"notes,omitempty"`

	CreatedBy    int64      `gorm:"not null" json:"created_by"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	ApprovedBy   *int64     `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelReason *string    `gorm:"size:500" json:"cancel_reason,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Vendor *Vendor             `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Items  []PurchaseOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type PurchaseOrderItem struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID          int64     `gorm:"not null;index" json:"order_id"`
	ProductID        *int32    `gorm:"index" json:"product_id,omitempty"` // nil for uncataloged items
	SKU              string    `gorm:"size:64" json:"sku"`
	ProductName      string    `gorm:"size:255;not null" json:"product_name"`
	QuantityOrdered  int32     `gorm:"not null" json:"quantity_ordered"`
	QuantityReceived int32     `gorm:"not null;default:0" json:"quantity_received"`
	UnitCost         string    `gorm:"type:varchar(32);not null" json:"unit_cost"`
	TaxAmount        string    `gorm:"type:varchar(32);not null;default:'0.00'" json:"tax_amount"`
	LineTotal        string    `gorm:"type:varchar(32);not null" json:"line_total"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// QuantityPending is derived, never stored: ordered minus received.
// The receiving processor guarantees this never goes negative; the raw
// value is returned so any drift is visible instead of masked.
func (i *PurchaseOrderItem) QuantityPending() int32 {
	return i.QuantityOrdered - i.QuantityReceived
}

// IsFullyReceived reports whether nothing remains to deliver.
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.QuantityReceived >= i.QuantityOrdered
}

type ReceivingType string

const (
	ReceivingPurchaseOrder ReceivingType = "purchase_order"
	ReceivingDonation      ReceivingType = "donation"
)

type ReceivingRecord struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptNumber string        `gorm:"size:30;uniqueIndex;not null" json:"receipt_number"`
	OrderID       *int64        `gorm:"index" json:"order_id,omitempty"` // nil for non-PO receipts
	VendorID      *int32        `gorm:"index" json:"vendor_id,omitempty"`
	ReceivingType ReceivingType `gorm:"type:varchar(20);not null" json:"receiving_type"`
	ReceivedBy    int64         `gorm:"not null" json:"received_by"`
	ReceivedAt    time.Time     `gorm:"not null" json:"received_at"`

	ItemCount     int32  `gorm:"not null;default:0" json:"item_count"`
	TotalQuantity int32  `gorm:"not null;default:0" json:"total_quantity"`
	TotalValue    string `gorm:"type:varchar(32);not null;default:'0.00'" json:"total_value"`

	// Donation receipts only.
	FairMarketValue *string `gorm:"type:varchar(32)" json:"fair_market_value,omitempty"`
	ReceiptIssued   bool    `gorm:"not null;default:false" json:"receipt_issued"`

	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Items []ReceivingItem `gorm:"foreignKey:RecordID" json:"items,omitempty"`
}

type ReceivingItem struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RecordID         int64     `gorm:"not null;index" json:"record_id"`
	OrderItemID      *int64    `gorm:"index" json:"order_item_id,omitempty"`
	ProductID        *int32    `gorm:"index" json:"product_id,omitempty"`
	QuantityReceived int32     `gorm:"not null" json:"quantity_received"`
	RejectedQuantity int32     `gorm:"not null;default:0" json:"rejected_quantity"`
	Condition        *string   `gorm:"size:50" json:"condition,omitempty"`
	UnitCost         string    `gorm:"type:varchar(32);not null;default:'0.00'" json:"unit_cost"`
	CreatedAt        time.Time `json:"created_at"`
}
