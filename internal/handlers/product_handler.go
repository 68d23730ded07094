package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"retail_pos/internal/models"
	"retail_pos/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type ProductHandler struct {
	productService services.ProductService
	uploadsDir     string
}

func NewProductHandler(productService services.ProductService, uploadsDir string) *ProductHandler {
	return &ProductHandler{productService: productService, uploadsDir: uploadsDir}
}

type productRequest struct {
	Name       string   `json:"name" binding:"required"`
	CategoryID uint     `json:"category_id"`
	CompanyID  uint     `json:"company_id"`
	TagIDs     []uint   `json:"tag_ids"`
	Colors     []string `json:"colors"`
	Sizes      []string `json:"sizes"`
	UnitPrice  float64  `json:"unit_price" binding:"required,gt=0"`
	Stock      int      `json:"stock"`
	Image      string   `json:"image"`
}

func (r productRequest) toModel() *models.Product {
	product := &models.Product{
		Name:       r.Name,
		CategoryID: r.CategoryID,
		CompanyID:  r.CompanyID,
		Colors:     r.Colors,
		Sizes:      r.Sizes,
		UnitPrice:  r.UnitPrice,
		Stock:      r.Stock,
		Image:      r.Image,
	}
	for _, id := range r.TagIDs {
		product.Tags = append(product.Tags, models.Tag{ID: id})
	}
	return product
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	product := req.toModel()
	if err := h.productService.CreateProduct(product); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create product")
		return
	}
	respondOK(c, http.StatusCreated, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	respondOK(c, http.StatusOK, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, total, err := h.productService.GetProductsPaginated(page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"products": products, "total": total, "page": page, "limit": limit})
}

func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.productService.SearchProducts(c.Query("q"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "search failed")
		return
	}
	respondOK(c, http.StatusOK, products)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	product := req.toModel()
	product.ID = uint(id)
	if err := h.productService.UpdateProduct(product); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update product")
		return
	}
	respondOK(c, http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.productService.DeleteProduct(uint(id)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete product")
		return
	}
	respondMessage(c, http.StatusOK, "product deleted")
}

// UploadImage stores a multipart image under a fresh uuid filename and
// returns the public path.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	dest := filepath.Join(h.uploadsDir, filename)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save image")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"path": "/uploads/" + filename})
}

// ExportExcel streams the full catalog as an .xlsx download.
func (h *ProductHandler) ExportExcel(c *gin.Context) {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create sheet")
		return
	}

	headers := []string{"ID", "Name", "Category", "Company", "UnitPrice", "Stock", "Colors", "Sizes", "CreatedAt"}
	headerRow := sheet.AddRow()
	for _, hd := range headers {
		headerRow.AddCell().SetValue(hd)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(int(p.ID))
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category.Name)
		row.AddCell().SetValue(p.Company.Name)
		row.AddCell().SetValue(p.UnitPrice)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(joinList(p.Colors))
		row.AddCell().SetValue(joinList(p.Sizes))
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to write workbook")
	}
}

func joinList(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}
