package repository

import (
	"retail_pos/internal/models"

	"gorm.io/gorm"
)

type BillRepository interface {
	GetByUserID(userID uint) (*models.Bill, error)
	GetOrCreate(userID uint) (*models.Bill, error)
	GetItem(billID, productID uint, color string) (*models.BillItem, error)
	CreateItem(item *models.BillItem) error
	UpdateItem(item *models.BillItem) error
	RemoveItem(billID, productID uint, color string) (int64, error)
	ClearItems(billID uint) error
}

type billRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) GetByUserID(userID uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.Preload("Items").Where("user_id = ?", userID).First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) GetOrCreate(userID uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.Preload("Items").Where("user_id = ?", userID).First(&bill).Error
	if err == nil {
		return &bill, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	bill = models.Bill{UserID: userID}
	if err := r.db.Create(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) GetItem(billID, productID uint, color string) (*models.BillItem, error) {
	var item models.BillItem
	err := r.db.Where("bill_id = ? AND product_id = ? AND color = ?", billID, productID, color).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *billRepository) CreateItem(item *models.BillItem) error {
	return r.db.Create(item).Error
}

func (r *billRepository) UpdateItem(item *models.BillItem) error {
	return r.db.Save(item).Error
}

func (r *billRepository) RemoveItem(billID, productID uint, color string) (int64, error) {
	result := r.db.Where("bill_id = ? AND product_id = ? AND color = ?", billID, productID, color).
		Delete(&models.BillItem{})
	return result.RowsAffected, result.Error
}

func (r *billRepository) ClearItems(billID uint) error {
	return r.db.Where("bill_id = ?", billID).Delete(&models.BillItem{}).Error
}
