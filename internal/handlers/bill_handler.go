package handlers

import (
	"errors"
	"net/http"

	"retail_pos/internal/middleware"
	"retail_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	billService services.BillService
}

func NewBillHandler(billService services.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

type addItemRequest struct {
	ProductID       uint    `json:"product_id" binding:"required"`
	Color           string  `json:"color"`
	Size            string  `json:"size"`
	Quantity        int     `json:"quantity" binding:"required,min=1"`
	DiscountPercent float64 `json:"discount_percent"`
}

type updateItemRequest struct {
	ProductID       uint     `json:"product_id" binding:"required"`
	Color           string   `json:"color"`
	Quantity        *int     `json:"quantity"`
	DiscountPercent *float64 `json:"discount_percent"`
}

type removeItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Color     string `json:"color"`
}

func billErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrQuantityTooLow),
		errors.Is(err, services.ErrDiscountRange),
		errors.Is(err, services.ErrProductNotFound):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billService.GetBill(middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch bill")
		return
	}
	respondOK(c, http.StatusOK, bill)
}

func (h *BillHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	item, err := h.billService.AddItem(middleware.CurrentUserID(c),
		req.ProductID, req.Color, req.Size, req.Quantity, req.DiscountPercent)
	if err != nil {
		respondError(c, billErrorStatus(err), err.Error())
		return
	}
	respondOK(c, http.StatusCreated, item)
}

func (h *BillHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Quantity == nil && req.DiscountPercent == nil {
		respondError(c, http.StatusBadRequest, "nothing to update")
		return
	}

	item, err := h.billService.UpdateItem(middleware.CurrentUserID(c), req.ProductID, req.Color,
		services.ItemUpdate{Quantity: req.Quantity, DiscountPercent: req.DiscountPercent})
	if err != nil {
		respondError(c, billErrorStatus(err), err.Error())
		return
	}
	respondOK(c, http.StatusOK, item)
}

func (h *BillHandler) RemoveItem(c *gin.Context) {
	var req removeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if err := h.billService.RemoveItem(middleware.CurrentUserID(c), req.ProductID, req.Color); err != nil {
		respondError(c, billErrorStatus(err), err.Error())
		return
	}
	respondMessage(c, http.StatusOK, "item removed")
}

func (h *BillHandler) Clear(c *gin.Context) {
	if err := h.billService.Clear(middleware.CurrentUserID(c)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clear bill")
		return
	}
	respondMessage(c, http.StatusOK, "bill cleared")
}
