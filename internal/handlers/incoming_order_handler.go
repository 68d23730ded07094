package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"retail_pos/internal/middleware"
	"retail_pos/internal/models"
	"retail_pos/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IncomingOrderHandler struct {
	incomingService services.IncomingOrderService
	userService     services.UserService
}

func NewIncomingOrderHandler(incomingService services.IncomingOrderService, userService services.UserService) *IncomingOrderHandler {
	return &IncomingOrderHandler{incomingService: incomingService, userService: userService}
}

type createIncomingRequest struct {
	VendorID       uint                       `json:"vendor_id" binding:"required"`
	Reference      string                     `json:"reference"`
	ProductDetails []models.IncomingOrderItem `json:"product_details" binding:"required"`
}

type patchIncomingRequest struct {
	ProductDetails []models.IncomingOrderItem `json:"product_details"`
	MatchOverride  *float64                   `json:"match_override"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func incomingErrorStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrLineIndexOutOfRange),
		errors.Is(err, services.ErrOverrideRange),
		errors.Is(err, services.ErrEmptyComment):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *IncomingOrderHandler) Create(c *gin.Context) {
	var req createIncomingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	order := &models.IncomingOrder{
		VendorID:       req.VendorID,
		Reference:      req.Reference,
		ProductDetails: req.ProductDetails,
	}
	if err := h.incomingService.Create(order); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create incoming order")
		return
	}
	respondOK(c, http.StatusCreated, order)
}

func (h *IncomingOrderHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid incoming order id")
		return
	}

	order, err := h.incomingService.GetByID(uint(id))
	if err != nil {
		respondError(c, incomingErrorStatus(err), "incoming order not found")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"order": order, "match_percentage": order.MatchPercentage()})
}

func (h *IncomingOrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	vendorID, _ := strconv.Atoi(c.DefaultQuery("vendor_id", "0"))

	orders, total, err := h.incomingService.GetPaginated(page, limit, uint(vendorID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch incoming orders")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"orders": orders, "total": total, "page": page, "limit": limit})
}

// Patch replaces the full line array and/or the manual override; the
// two travel independently.
func (h *IncomingOrderHandler) Patch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid incoming order id")
		return
	}

	var req patchIncomingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	var order *models.IncomingOrder
	if req.ProductDetails != nil {
		order, err = h.incomingService.ReplaceLines(uint(id), req.ProductDetails)
		if err != nil {
			respondError(c, incomingErrorStatus(err), err.Error())
			return
		}
	}
	if req.MatchOverride != nil {
		order, err = h.incomingService.SetMatchOverride(uint(id), req.MatchOverride)
		if err != nil {
			respondError(c, incomingErrorStatus(err), err.Error())
			return
		}
	}
	if order == nil {
		respondError(c, http.StatusBadRequest, "nothing to update")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"order": order, "match_percentage": order.MatchPercentage()})
}

func (h *IncomingOrderHandler) AddComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid incoming order id")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "text is required")
		return
	}

	author := ""
	if user, err := h.userService.GetUserByID(middleware.CurrentUserID(c)); err == nil {
		author = user.Name
	}

	comment, err := h.incomingService.AddComment(uint(id), author, req.Text)
	if err != nil {
		respondError(c, incomingErrorStatus(err), err.Error())
		return
	}
	respondOK(c, http.StatusCreated, comment)
}

func (h *IncomingOrderHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid incoming order id")
		return
	}
	if err := h.incomingService.Delete(uint(id)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete incoming order")
		return
	}
	respondMessage(c, http.StatusOK, "incoming order deleted")
}
