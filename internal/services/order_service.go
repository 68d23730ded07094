package services

import (
	"errors"
	"log"
	"time"

	"retail_pos/internal/models"
	"retail_pos/internal/redis"
	"retail_pos/internal/repository"
)

var (
	ErrEmptyBill         = errors.New("bill has no items")
	ErrNameRequired      = errors.New("customer name is required")
	ErrPhoneTooShort     = errors.New("customer phone must be at least 10 digits")
	ErrAddressRequired   = errors.New("customer address is required for delivery orders")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderNotFound     = errors.New("order not found")
)

// CustomerInfo is the contact block supplied at order creation.
type CustomerInfo struct {
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	Address     string             `json:"address"`
	OrderMode   models.OrderMode   `json:"order_mode"`
	PaymentMode models.PaymentMode `json:"payment_mode"`
}

// OrderNotifier receives order events; the websocket hub implements it.
type OrderNotifier interface {
	OrderCreated(order models.Order)
	OrderStatusChanged(order models.Order)
}

type OrderService interface {
	CreateFromBill(userID uint, info CustomerInfo) (*models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	GetOrdersPaginated(page, limit int, status string) ([]models.Order, int64, error)
	UpdateStatus(id uint, to models.OrderStatus) (*models.Order, error)
	GetStats() (*repository.OrderStats, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	billRepo  repository.BillRepository
	cache     *redis.Client
	notifier  OrderNotifier
	statsTTL  time.Duration
}

func NewOrderService(orderRepo repository.OrderRepository, billRepo repository.BillRepository,
	cache *redis.Client, notifier OrderNotifier, statsTTL time.Duration) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		billRepo:  billRepo,
		cache:     cache,
		notifier:  notifier,
		statsTTL:  statsTTL,
	}
}

func validateCustomerInfo(info CustomerInfo) error {
	if info.Name == "" {
		return ErrNameRequired
	}
	if len(info.Phone) < 10 {
		return ErrPhoneTooShort
	}
	// Address only matters when the order actually ships.
	if info.OrderMode == models.OrderModeDelivery && info.Address == "" {
		return ErrAddressRequired
	}
	return nil
}

// CreateFromBill snapshots the caller's bill into an immutable order.
// Line pricing is copied from the bill, never re-read from products, so
// later price changes cannot drift the order. The bill is cleared only
// when the order commits; any failure leaves it untouched.
func (s *orderService) CreateFromBill(userID uint, info CustomerInfo) (*models.Order, error) {
	if err := validateCustomerInfo(info); err != nil {
		return nil, err
	}

	bill, err := s.billRepo.GetByUserID(userID)
	if err != nil {
		return nil, ErrEmptyBill
	}
	if len(bill.Items) == 0 {
		return nil, ErrEmptyBill
	}

	if info.OrderMode == "" {
		info.OrderMode = models.OrderModePickup
	}
	if info.PaymentMode == "" {
		info.PaymentMode = models.PaymentModeCash
	}

	order := &models.Order{
		UserID:          userID,
		CustomerName:    info.Name,
		CustomerPhone:   info.Phone,
		CustomerAddress: info.Address,
		OrderMode:       info.OrderMode,
		PaymentMode:     info.PaymentMode,
		Status:          models.OrderStatusPending,
	}
	for _, item := range bill.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Color:           item.Color,
			Size:            item.Size,
			Amount:          item.UnitPrice,
			Quantity:        item.Quantity,
			DiscountPercent: item.DiscountPercent,
		})
		order.TotalAmount += item.FinalPrice()
	}

	if err := s.orderRepo.CreateFromBill(order, bill.ID); err != nil {
		return nil, err
	}

	s.invalidateStats()
	if s.notifier != nil {
		s.notifier.OrderCreated(*order)
	}
	return order, nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrdersPaginated(page, limit int, status string) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.orderRepo.GetPaginated(page, limit, status)
}

func (s *orderService) UpdateStatus(id uint, to models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !models.CanTransition(order.Status, to) {
		return nil, ErrInvalidTransition
	}

	affected, err := s.orderRepo.UpdateStatus(id, order.Status, to)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost a race with another transition.
		return nil, ErrInvalidTransition
	}

	order.Status = to
	s.invalidateStats()
	if s.notifier != nil {
		s.notifier.OrderStatusChanged(*order)
	}
	return order, nil
}

func (s *orderService) GetStats() (*repository.OrderStats, error) {
	if s.cache != nil {
		var cached repository.OrderStats
		if err := s.cache.GetOrderStats(&cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.orderRepo.GetStats()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetOrderStats(stats, s.statsTTL); err != nil {
			log.Printf("Warning: failed to cache order stats: %v", err)
		}
	}
	return stats, nil
}

func (s *orderService) invalidateStats() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOrderStats(); err != nil {
		log.Printf("Warning: failed to invalidate order stats cache: %v", err)
	}
}
