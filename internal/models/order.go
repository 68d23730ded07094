package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type OrderMode string
type PaymentMode string

const (
	// Order statuses (fulfilment flow)
	OrderStatusPending       OrderStatus = "pending"       // Placed, awaiting confirmation
	OrderStatusConfirmed     OrderStatus = "confirmed"     // Confirmed by back office
	OrderStatusPacked        OrderStatus = "packed"        // Packed and ready for dispatch
	OrderStatusDispatched    OrderStatus = "dispatched"    // Handed to the carrier
	OrderStatusOutForDeliver OrderStatus = "outfordeliver" // Out for delivery
	OrderStatusDelivered     OrderStatus = "delivered"     // Customer received the order
	OrderStatusCancelled     OrderStatus = "cancelled"     // Cancelled before dispatch
	OrderStatusReturn        OrderStatus = "return"        // Customer returned the order

	// Order modes
	OrderModeDelivery OrderMode = "delivery" // Shipped to the customer address
	OrderModePickup   OrderMode = "pickup"   // Collected at the counter
	OrderModePrint    OrderMode = "print"    // Receipt only, no shipment

	// Payment modes
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeCard   PaymentMode = "card"
	PaymentModeUPI    PaymentMode = "upi"
	PaymentModeCredit PaymentMode = "credit" // Booked against the customer ledger
)

// Order is an immutable snapshot derived from a bill. Line pricing is
// frozen at creation and never follows later product price changes.
type Order struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OrderNumber     int64          `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	CustomerName    string         `json:"customer_name" gorm:"not null"`
	CustomerPhone   string         `json:"customer_phone" gorm:"not null"`
	CustomerAddress string         `json:"customer_address"`
	OrderMode       OrderMode      `json:"order_mode" gorm:"type:VARCHAR(20);default:'pickup'"`
	PaymentMode     PaymentMode    `json:"payment_mode" gorm:"type:VARCHAR(20);default:'cash'"`
	Status          OrderStatus    `json:"status" gorm:"type:VARCHAR(20);default:'pending'"`
	TotalAmount     float64        `json:"total_amount" gorm:"not null"`
	Items           []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderItem struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	OrderID         uint    `json:"order_id" gorm:"index"`
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Color           string  `json:"color"`
	Size            string  `json:"size"`
	Amount          float64 `json:"amount"` // unit price at creation time
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
}

// FinalPrice is the frozen line total with the frozen discount applied.
func (i OrderItem) FinalPrice() float64 {
	return i.Amount * float64(i.Quantity) * (1 - i.DiscountPercent/100)
}

// NextStatuses lists the transitions allowed from a given status.
var NextStatuses = map[OrderStatus][]OrderStatus{
	OrderStatusPending:       {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:     {OrderStatusPacked, OrderStatusCancelled},
	OrderStatusPacked:        {OrderStatusDispatched, OrderStatusCancelled},
	OrderStatusDispatched:    {OrderStatusOutForDeliver},
	OrderStatusOutForDeliver: {OrderStatusDelivered},
	OrderStatusDelivered:     {OrderStatusReturn},
}

// CanTransition reports whether moving from one status to the next is valid.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range NextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}
