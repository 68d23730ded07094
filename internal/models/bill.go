package models

import "time"

// Bill is the server-held cart. One bill per user; items are upserted
// per (product, color) and cascade-deleted with the bill.
type Bill struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Items     []BillItem `json:"items" gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type BillItem struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	BillID          uint      `json:"bill_id" gorm:"index;uniqueIndex:idx_bill_product_color,priority:1"`
	ProductID       uint      `json:"product_id" gorm:"uniqueIndex:idx_bill_product_color,priority:2"`
	ProductName     string    `json:"product_name"`
	Color           string    `json:"color" gorm:"uniqueIndex:idx_bill_product_color,priority:3"`
	Size            string    `json:"size"`
	UnitPrice       float64   `json:"unit_price"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	DiscountPercent float64   `json:"discount_percent" gorm:"default:0"`
	AddedAt         time.Time `json:"added_at"`
}

// FinalPrice is the line total with the discount applied.
func (i BillItem) FinalPrice() float64 {
	return i.UnitPrice * float64(i.Quantity) * (1 - i.DiscountPercent/100)
}

// Total sums the discounted line totals.
func (b Bill) Total() float64 {
	total := 0.0
	for _, item := range b.Items {
		total += item.FinalPrice()
	}
	return total
}
