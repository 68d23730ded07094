package models

import (
	"time"

	"gorm.io/gorm"
)

type IncomingOrderStatus string

const (
	IncomingPending   IncomingOrderStatus = "pending"
	IncomingPartial   IncomingOrderStatus = "partial"
	IncomingCompleted IncomingOrderStatus = "completed"
)

// IncomingOrder is a vendor-submitted expected shipment reconciled
// line by line against received stock.
type IncomingOrder struct {
	ID             uint                `json:"id" gorm:"primaryKey"`
	VendorID       uint                `json:"vendor_id" gorm:"not null;index"`
	Vendor         Vendor              `json:"vendor" gorm:"foreignKey:VendorID"`
	Reference      string              `json:"reference"`
	Status         IncomingOrderStatus `json:"status" gorm:"type:VARCHAR(20);default:'pending'"`
	ProductDetails []IncomingOrderItem `json:"product_details" gorm:"type:jsonb;serializer:json"`
	// Manual override for the computed match percentage; nil means none.
	MatchOverride *float64               `json:"match_override"`
	Comments      []IncomingOrderComment `json:"comments" gorm:"foreignKey:IncomingOrderID;constraint:OnDelete:CASCADE"`
	ExpectedAt    *time.Time             `json:"expected_at"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	DeletedAt     gorm.DeletedAt         `json:"deleted_at" gorm:"index"`
}

// IncomingOrderItem lines are stored as a single jsonb array and always
// replaced whole; there is no per-line row.
type IncomingOrderItem struct {
	ProductID       uint     `json:"product_id"`
	ProductName     string   `json:"product_name"`
	Color           string   `json:"color"`
	Sizes           []string `json:"sizes"`
	Quantity        int      `json:"quantity"`
	MatchedQuantity int      `json:"matched_quantity"` // 0 <= matched <= quantity
}

// Comments are append-only; no edit or delete.
type IncomingOrderComment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	IncomingOrderID uint      `json:"incoming_order_id" gorm:"index;not null"`
	Author          string    `json:"author"`
	Text            string    `json:"text" gorm:"type:text;not null"`
	CreatedAt       time.Time `json:"created_at"`
}

// MatchPercentage recomputes completion from the current lines,
// ignoring any manual override.
func (o IncomingOrder) MatchPercentage() float64 {
	totalQty := 0
	matchedQty := 0
	for _, item := range o.ProductDetails {
		totalQty += item.Quantity
		matchedQty += item.MatchedQuantity
	}
	if totalQty == 0 {
		return 0
	}
	return float64(matchedQty) / float64(totalQty) * 100
}
