package repository

import (
	"retail_pos/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository covers the small lookup entities around products.
type CatalogRepository interface {
	CreateCategory(category *models.Category) error
	GetCategories() ([]models.Category, error)
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error

	CreateCompany(company *models.Company) error
	GetCompanies() ([]models.Company, error)
	UpdateCompany(company *models.Company) error
	DeleteCompany(id uint) error

	CreateTag(tag *models.Tag) error
	GetTags() ([]models.Tag, error)
	DeleteTag(id uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *catalogRepository) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *catalogRepository) UpdateCategory(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *catalogRepository) DeleteCategory(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

func (r *catalogRepository) CreateCompany(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *catalogRepository) GetCompanies() ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *catalogRepository) UpdateCompany(company *models.Company) error {
	return r.db.Save(company).Error
}

func (r *catalogRepository) DeleteCompany(id uint) error {
	return r.db.Delete(&models.Company{}, id).Error
}

func (r *catalogRepository) CreateTag(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *catalogRepository) GetTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *catalogRepository) DeleteTag(id uint) error {
	return r.db.Delete(&models.Tag{}, id).Error
}
