package repository

import (
	"retail_pos/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetAll() ([]models.Product, error)
	GetPaginated(page, limit int) ([]models.Product, int64, error)
	Search(query string) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Company").Preload("Tags").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").Preload("Company").Preload("Tags").Find(&products).Error
	return products, err
}

func (r *productRepository) GetPaginated(page, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Preload("Category").Preload("Company").Preload("Tags").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error
	return products, total, err
}

// Search matches a case-insensitive substring against product name,
// company name, category name and tag names.
func (r *productRepository) Search(query string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + query + "%"
	err := r.db.Preload("Category").Preload("Company").Preload("Tags").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN companies ON companies.id = products.company_id").
		Joins("LEFT JOIN product_tags ON product_tags.product_id = products.id").
		Joins("LEFT JOIN tags ON tags.id = product_tags.tag_id").
		Where("products.name ILIKE ? OR categories.name ILIKE ? OR companies.name ILIKE ? OR tags.name ILIKE ?",
			pattern, pattern, pattern, pattern).
		Distinct("products.*").
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}
