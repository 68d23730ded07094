package client

import (
	"context"
	"net/http"
	"time"
)

// Wire types mirroring the API's JSON shapes.

type Product struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Colors    []string `json:"colors"`
	Sizes     []string `json:"sizes"`
	UnitPrice float64  `json:"unit_price"`
	Stock     int      `json:"stock"`
	Image     string   `json:"image"`
}

type BillItem struct {
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Color           string  `json:"color"`
	Size            string  `json:"size"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
}

// FinalPrice is the line total with the discount applied.
func (i BillItem) FinalPrice() float64 {
	return i.UnitPrice * float64(i.Quantity) * (1 - i.DiscountPercent/100)
}

type Bill struct {
	Items       []BillItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
}

type OrderItem struct {
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Color           string  `json:"color"`
	Size            string  `json:"size"`
	Amount          float64 `json:"amount"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
}

type Order struct {
	ID              uint        `json:"id"`
	OrderNumber     int64       `json:"order_number"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	OrderMode       string      `json:"order_mode"`
	PaymentMode     string      `json:"payment_mode"`
	Status          string      `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

type IncomingOrderLine struct {
	ProductID       uint     `json:"product_id"`
	ProductName     string   `json:"product_name"`
	Color           string   `json:"color"`
	Sizes           []string `json:"sizes"`
	Quantity        int      `json:"quantity"`
	MatchedQuantity int      `json:"matched_quantity"`
}

type IncomingOrder struct {
	ID             uint                `json:"id"`
	VendorID       uint                `json:"vendor_id"`
	Reference      string              `json:"reference"`
	Status         string              `json:"status"`
	ProductDetails []IncomingOrderLine `json:"product_details"`
	MatchOverride  *float64            `json:"match_override"`
}

type incomingOrderResponse struct {
	Order           IncomingOrder `json:"order"`
	MatchPercentage float64       `json:"match_percentage"`
}

type Comment struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Endpoint bindings used by the interactive flows.

func (c *Client) GetBill(ctx context.Context) (*Bill, error) {
	var bill Bill
	if err := c.do(ctx, http.MethodGet, "/api/bill", nil, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

type billItemPatch struct {
	ProductID       uint     `json:"product_id"`
	Color           string   `json:"color"`
	Quantity        *int     `json:"quantity,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
}

func (c *Client) UpdateBillItem(ctx context.Context, productID uint, color string, quantity *int, discountPercent *float64) (*BillItem, error) {
	var item BillItem
	patch := billItemPatch{ProductID: productID, Color: color, Quantity: quantity, DiscountPercent: discountPercent}
	if err := c.do(ctx, http.MethodPatch, "/api/bill/update-item", patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveBillItem(ctx context.Context, productID uint, color string) error {
	body := map[string]interface{}{"product_id": productID, "color": color}
	return c.do(ctx, http.MethodDelete, "/api/bill/remove-item", body, nil)
}

func (c *Client) ClearBill(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/bill/clear-all", nil, nil)
}

func (c *Client) CreateOrder(ctx context.Context, info CustomerInfo) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", info, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	var products []Product
	path := "/api/products/search?q=" + urlQueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetIncomingOrder(ctx context.Context, id uint) (*IncomingOrder, float64, error) {
	var resp incomingOrderResponse
	if err := c.do(ctx, http.MethodGet, incomingOrderPath(id), nil, &resp); err != nil {
		return nil, 0, err
	}
	return &resp.Order, resp.MatchPercentage, nil
}

type incomingOrderPatch struct {
	ProductDetails []IncomingOrderLine `json:"product_details,omitempty"`
	MatchOverride  *float64            `json:"match_override,omitempty"`
}

func (c *Client) PatchIncomingOrderLines(ctx context.Context, id uint, lines []IncomingOrderLine) (*IncomingOrder, error) {
	var resp incomingOrderResponse
	patch := incomingOrderPatch{ProductDetails: lines}
	if err := c.do(ctx, http.MethodPatch, incomingOrderPath(id), patch, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (c *Client) SetIncomingOrderOverride(ctx context.Context, id uint, override float64) (*IncomingOrder, error) {
	var resp incomingOrderResponse
	patch := incomingOrderPatch{MatchOverride: &override}
	if err := c.do(ctx, http.MethodPatch, incomingOrderPath(id), patch, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (c *Client) AddIncomingOrderComment(ctx context.Context, id uint, text string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, incomingOrderPath(id)+"/comments", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
