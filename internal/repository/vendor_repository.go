package repository

import (
	"retail_pos/internal/models"

	"gorm.io/gorm"
)

type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetAll() ([]models.Vendor, error)
	GetPaginated(page, limit int) ([]models.Vendor, int64, error)
	Update(vendor *models.Vendor) error
	Delete(id uint) error
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

func (r *vendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) GetAll() ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.Order("name ASC").Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepository) GetPaginated(page, limit int) ([]models.Vendor, int64, error) {
	var vendors []models.Vendor
	var total int64

	if err := r.db.Model(&models.Vendor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Order("name ASC").Offset(offset).Limit(limit).Find(&vendors).Error
	return vendors, total, err
}

func (r *vendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

func (r *vendorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Vendor{}, id).Error
}
