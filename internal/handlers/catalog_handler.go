package handlers

import (
	"net/http"
	"strconv"

	"retail_pos/internal/models"
	"retail_pos/internal/repository"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogHandler(catalogRepo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo}
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogRepo.GetCategories()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch categories")
		return
	}
	respondOK(c, http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	category := &models.Category{Name: req.Name}
	if err := h.catalogRepo.CreateCategory(category); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create category")
		return
	}
	respondOK(c, http.StatusCreated, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := h.catalogRepo.DeleteCategory(uint(id)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete category")
		return
	}
	respondMessage(c, http.StatusOK, "category deleted")
}

func (h *CatalogHandler) ListCompanies(c *gin.Context) {
	companies, err := h.catalogRepo.GetCompanies()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch companies")
		return
	}
	respondOK(c, http.StatusOK, companies)
}

func (h *CatalogHandler) CreateCompany(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	company := &models.Company{Name: req.Name}
	if err := h.catalogRepo.CreateCompany(company); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create company")
		return
	}
	respondOK(c, http.StatusCreated, company)
}

func (h *CatalogHandler) DeleteCompany(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid company id")
		return
	}
	if err := h.catalogRepo.DeleteCompany(uint(id)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete company")
		return
	}
	respondMessage(c, http.StatusOK, "company deleted")
}

func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalogRepo.GetTags()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch tags")
		return
	}
	respondOK(c, http.StatusOK, tags)
}

func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	tag := &models.Tag{Name: req.Name}
	if err := h.catalogRepo.CreateTag(tag); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create tag")
		return
	}
	respondOK(c, http.StatusCreated, tag)
}

func (h *CatalogHandler) DeleteTag(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid tag id")
		return
	}
	if err := h.catalogRepo.DeleteTag(uint(id)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete tag")
		return
	}
	respondMessage(c, http.StatusOK, "tag deleted")
}
