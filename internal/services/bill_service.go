package services

import (
	"errors"
	"time"

	"retail_pos/internal/models"
	"retail_pos/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrQuantityTooLow  = errors.New("quantity must be at least 1")
	ErrDiscountRange   = errors.New("discount percent must be between 0 and 100")
	ErrItemNotFound    = errors.New("bill item not found")
	ErrProductNotFound = errors.New("product not found")
)

// ItemUpdate carries a partial edit; nil fields are left unchanged.
type ItemUpdate struct {
	Quantity        *int
	DiscountPercent *float64
}

type BillView struct {
	Items       []models.BillItem `json:"items"`
	TotalAmount float64           `json:"total_amount"`
}

type BillService interface {
	GetBill(userID uint) (*BillView, error)
	AddItem(userID, productID uint, color, size string, quantity int, discountPercent float64) (*models.BillItem, error)
	UpdateItem(userID, productID uint, color string, update ItemUpdate) (*models.BillItem, error)
	RemoveItem(userID, productID uint, color string) error
	Clear(userID uint) error
}

type billService struct {
	billRepo    repository.BillRepository
	productRepo repository.ProductRepository
}

func NewBillService(billRepo repository.BillRepository, productRepo repository.ProductRepository) BillService {
	return &billService{billRepo: billRepo, productRepo: productRepo}
}

func (s *billService) GetBill(userID uint) (*BillView, error) {
	bill, err := s.billRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return &BillView{Items: bill.Items, TotalAmount: bill.Total()}, nil
}

// AddItem upserts on (product, color): an existing line gets the new
// quantity instead of a duplicate row.
func (s *billService) AddItem(userID, productID uint, color, size string, quantity int, discountPercent float64) (*models.BillItem, error) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, ErrDiscountRange
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	bill, err := s.billRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.billRepo.GetItem(bill.ID, productID, color)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		item = &models.BillItem{
			BillID:          bill.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			Color:           color,
			Size:            size,
			UnitPrice:       product.UnitPrice,
			Quantity:        quantity,
			DiscountPercent: discountPercent,
			AddedAt:         time.Now(),
		}
		if err := s.billRepo.CreateItem(item); err != nil {
			return nil, err
		}
		return item, nil
	}

	item.Quantity = quantity
	item.Size = size
	item.DiscountPercent = discountPercent
	item.AddedAt = time.Now()
	if err := s.billRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *billService) UpdateItem(userID, productID uint, color string, update ItemUpdate) (*models.BillItem, error) {
	if update.Quantity != nil && *update.Quantity < 1 {
		return nil, ErrQuantityTooLow
	}
	if update.DiscountPercent != nil && (*update.DiscountPercent < 0 || *update.DiscountPercent > 100) {
		return nil, ErrDiscountRange
	}

	bill, err := s.billRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	item, err := s.billRepo.GetItem(bill.ID, productID, color)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.DiscountPercent != nil {
		item.DiscountPercent = *update.DiscountPercent
	}
	if err := s.billRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *billService) RemoveItem(userID, productID uint, color string) error {
	bill, err := s.billRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	affected, err := s.billRepo.RemoveItem(bill.ID, productID, color)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *billService) Clear(userID uint) error {
	bill, err := s.billRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to clear
		}
		return err
	}
	return s.billRepo.ClearItems(bill.ID)
}
