package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"retail_pos/internal/middleware"
	"retail_pos/internal/models"
	"retail_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// Create derives an order from the caller's bill. A failure leaves the
// bill exactly as it was.
func (h *OrderHandler) Create(c *gin.Context) {
	var info services.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.CreateFromBill(middleware.CurrentUserID(c), info)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyBill),
			errors.Is(err, services.ErrNameRequired),
			errors.Is(err, services.ErrPhoneTooShort),
			errors.Is(err, services.ErrAddressRequired):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to create order")
		}
		return
	}
	respondOK(c, http.StatusCreated, order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrderByID(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "order not found")
		return
	}
	respondOK(c, http.StatusOK, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := c.Query("status")

	orders, total, err := h.orderService.GetOrdersPaginated(page, limit, status)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch orders")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"orders": orders, "total": total, "page": page, "limit": limit})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	order, err := h.orderService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidTransition):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to update status")
		}
		return
	}
	respondOK(c, http.StatusOK, order)
}

func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.GetStats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch order stats")
		return
	}
	respondOK(c, http.StatusOK, stats)
}
