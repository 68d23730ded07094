package handlers

import (
	"fmt"
	"math"
	"net/http"

	"retail_pos/internal/services"
	"retail_pos/pkg/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	orderService  services.OrderService
	paymentClient *payment.Client
}

func NewPaymentHandler(orderService services.OrderService, paymentClient *payment.Client) *PaymentHandler {
	return &PaymentHandler{orderService: orderService, paymentClient: paymentClient}
}

type paymentOrderRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

// CreatePaymentOrder registers the order total with the payment
// gateway and returns the gateway order for the checkout widget.
func (h *PaymentHandler) CreatePaymentOrder(c *gin.Context) {
	if h.paymentClient == nil {
		respondError(c, http.StatusServiceUnavailable, "payment gateway not configured")
		return
	}

	var req paymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "order_id is required")
		return
	}

	order, err := h.orderService.GetOrderByID(req.OrderID)
	if err != nil {
		respondError(c, http.StatusNotFound, "order not found")
		return
	}

	// Gateway wants the amount in paise.
	amount := int64(math.Round(order.TotalAmount * 100))
	receipt := fmt.Sprintf("order-%d", order.OrderNumber)

	gatewayOrder, err := h.paymentClient.CreateOrder(amount, "INR", receipt)
	if err != nil {
		respondError(c, http.StatusBadGateway, err.Error())
		return
	}
	respondOK(c, http.StatusCreated, gatewayOrder)
}
