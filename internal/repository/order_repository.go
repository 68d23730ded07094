package repository

import (
	"errors"

	"retail_pos/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderStats struct {
	TotalOrders  int64                        `json:"total_orders"`
	TotalRevenue float64                      `json:"total_revenue"`
	ByStatus     map[models.OrderStatus]int64 `json:"by_status"`
}

type OrderRepository interface {
	// CreateFromBill assigns the next order number, persists the order and
	// clears the source bill in one transaction. A failure rolls everything
	// back and the bill is left untouched.
	CreateFromBill(order *models.Order, billID uint) error
	GetByID(id uint) (*models.Order, error)
	GetPaginated(page, limit int, status string) ([]models.Order, int64, error)
	UpdateStatus(id uint, from, to models.OrderStatus) (int64, error)
	GetStats() (*OrderStats, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// orderNumberAttempts bounds the retry when the order-number race is
// lost. An empty table leaves no row to lock, so two first orders can
// both compute number 1; the unique index catches the loser.
const orderNumberAttempts = 3

func retryOnDuplicate(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

func (r *orderRepository) CreateFromBill(order *models.Order, billID uint) error {
	return retryOnDuplicate(orderNumberAttempts, func() error {
		order.ID = 0
		return r.db.Transaction(func(tx *gorm.DB) error {
			var last models.Order
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Unscoped().Order("order_number DESC").First(&last).Error
			if err != nil && err != gorm.ErrRecordNotFound {
				return err
			}
			order.OrderNumber = last.OrderNumber + 1

			if err := tx.Create(order).Error; err != nil {
				return err
			}

			return tx.Where("bill_id = ?", billID).Delete(&models.BillItem{}).Error
		})
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetPaginated(page, limit int, status string) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	q := r.db.Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Items").Order("order_number DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

// UpdateStatus is guarded on the expected current status so concurrent
// transitions cannot double-apply.
func (r *orderRepository) UpdateStatus(id uint, from, to models.OrderStatus) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *orderRepository) GetStats() (*OrderStats, error) {
	stats := &OrderStats{ByStatus: make(map[models.OrderStatus]int64)}

	if err := r.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status models.OrderStatus
		Count  int64
	}
	var counts []statusCount
	err := r.db.Model(&models.Order{}).
		Select("status, count(*) as count").Group("status").Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.ByStatus[c.Status] = c.Count
	}

	err = r.db.Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{models.OrderStatusCancelled, models.OrderStatusReturn}).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalRevenue).Error
	return stats, err
}
