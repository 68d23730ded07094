package repository

import (
	"retail_pos/internal/models"

	"gorm.io/gorm"
)

type IncomingOrderRepository interface {
	Create(order *models.IncomingOrder) error
	GetByID(id uint) (*models.IncomingOrder, error)
	GetPaginated(page, limit int, vendorID uint) ([]models.IncomingOrder, int64, error)
	Update(order *models.IncomingOrder) error
	Delete(id uint) error
	AddComment(comment *models.IncomingOrderComment) error
}

type incomingOrderRepository struct {
	db *gorm.DB
}

func NewIncomingOrderRepository(db *gorm.DB) IncomingOrderRepository {
	return &incomingOrderRepository{db: db}
}

func (r *incomingOrderRepository) Create(order *models.IncomingOrder) error {
	return r.db.Create(order).Error
}

func (r *incomingOrderRepository) GetByID(id uint) (*models.IncomingOrder, error) {
	var order models.IncomingOrder
	err := r.db.Preload("Vendor").Preload("Comments").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *incomingOrderRepository) GetPaginated(page, limit int, vendorID uint) ([]models.IncomingOrder, int64, error) {
	var orders []models.IncomingOrder
	var total int64

	q := r.db.Model(&models.IncomingOrder{})
	if vendorID != 0 {
		q = q.Where("vendor_id = ?", vendorID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Vendor").Preload("Comments").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

func (r *incomingOrderRepository) Update(order *models.IncomingOrder) error {
	return r.db.Save(order).Error
}

func (r *incomingOrderRepository) Delete(id uint) error {
	return r.db.Delete(&models.IncomingOrder{}, id).Error
}

func (r *incomingOrderRepository) AddComment(comment *models.IncomingOrderComment) error {
	return r.db.Create(comment).Error
}
