package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"retail_pos/internal/models"
	"retail_pos/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VendorHandler struct {
	vendorRepo repository.VendorRepository
}

func NewVendorHandler(vendorRepo repository.VendorRepository) *VendorHandler {
	return &VendorHandler{vendorRepo: vendorRepo}
}

type vendorRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	vendor := &models.Vendor{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		GSTNumber: req.GSTNumber,
		IsActive:  true,
	}
	if err := h.vendorRepo.Create(vendor); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create vendor")
		return
	}
	respondOK(c, http.StatusCreated, vendor)
}

func (h *VendorHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid vendor id")
		return
	}

	vendor, err := h.vendorRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "vendor not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to fetch vendor")
		return
	}
	respondOK(c, http.StatusOK, vendor)
}

func (h *VendorHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	vendors, total, err := h.vendorRepo.GetPaginated(page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch vendors")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"vendors": vendors, "total": total, "page": page, "limit": limit})
}

func (h *VendorHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid vendor id")
		return
	}

	vendor, err := h.vendorRepo.GetByID(uint(id))
	if err != nil {
		respondError(c, http.StatusNotFound, "vendor not found")
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	vendor.Name = req.Name
	vendor.Phone = req.Phone
	vendor.Email = req.Email
	vendor.Address = req.Address
	vendor.GSTNumber = req.GSTNumber
	if err := h.vendorRepo.Update(vendor); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update vendor")
		return
	}
	respondOK(c, http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid vendor id")
		return
	}
	if err := h.vendorRepo.Delete(uint(id)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete vendor")
		return
	}
	respondMessage(c, http.StatusOK, "vendor deleted")
}
