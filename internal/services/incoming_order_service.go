package services

import (
	"errors"

	"retail_pos/internal/models"
	"retail_pos/internal/repository"
)

var (
	ErrLineIndexOutOfRange = errors.New("line index out of range")
	ErrOverrideRange       = errors.New("match override must be between 0 and 100")
	ErrEmptyComment        = errors.New("comment text is required")
)

type IncomingOrderService interface {
	Create(order *models.IncomingOrder) error
	GetByID(id uint) (*models.IncomingOrder, error)
	GetPaginated(page, limit int, vendorID uint) ([]models.IncomingOrder, int64, error)
	// ReplaceLines swaps the full line array; every line is clamped.
	ReplaceLines(id uint, lines []models.IncomingOrderItem) (*models.IncomingOrder, error)
	UpdateMatchedQuantity(id uint, lineIndex, matchedQuantity int) (*models.IncomingOrder, error)
	FillAllMatched(id uint, lineIndex int) (*models.IncomingOrder, error)
	SetMatchOverride(id uint, override *float64) (*models.IncomingOrder, error)
	AddComment(id uint, author, text string) (*models.IncomingOrderComment, error)
	Delete(id uint) error
}

type incomingOrderService struct {
	repo repository.IncomingOrderRepository
}

func NewIncomingOrderService(repo repository.IncomingOrderRepository) IncomingOrderService {
	return &incomingOrderService{repo: repo}
}

// clampLine enforces 0 <= matched <= quantity.
func clampLine(line models.IncomingOrderItem) models.IncomingOrderItem {
	if line.Quantity < 0 {
		line.Quantity = 0
	}
	if line.MatchedQuantity < 0 {
		line.MatchedQuantity = 0
	}
	if line.MatchedQuantity > line.Quantity {
		line.MatchedQuantity = line.Quantity
	}
	return line
}

func statusFor(order *models.IncomingOrder) models.IncomingOrderStatus {
	pct := order.MatchPercentage()
	switch {
	case pct >= 100:
		return models.IncomingCompleted
	case pct > 0:
		return models.IncomingPartial
	default:
		return models.IncomingPending
	}
}

func (s *incomingOrderService) Create(order *models.IncomingOrder) error {
	for i, line := range order.ProductDetails {
		order.ProductDetails[i] = clampLine(line)
	}
	order.Status = statusFor(order)
	return s.repo.Create(order)
}

func (s *incomingOrderService) GetByID(id uint) (*models.IncomingOrder, error) {
	return s.repo.GetByID(id)
}

func (s *incomingOrderService) GetPaginated(page, limit int, vendorID uint) ([]models.IncomingOrder, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.GetPaginated(page, limit, vendorID)
}

func (s *incomingOrderService) ReplaceLines(id uint, lines []models.IncomingOrderItem) (*models.IncomingOrder, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	for i, line := range lines {
		lines[i] = clampLine(line)
	}
	order.ProductDetails = lines
	order.Status = statusFor(order)

	if err := s.repo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *incomingOrderService) UpdateMatchedQuantity(id uint, lineIndex, matchedQuantity int) (*models.IncomingOrder, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lineIndex < 0 || lineIndex >= len(order.ProductDetails) {
		return nil, ErrLineIndexOutOfRange
	}

	line := order.ProductDetails[lineIndex]
	line.MatchedQuantity = matchedQuantity
	order.ProductDetails[lineIndex] = clampLine(line)
	order.Status = statusFor(order)

	if err := s.repo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *incomingOrderService) FillAllMatched(id uint, lineIndex int) (*models.IncomingOrder, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lineIndex < 0 || lineIndex >= len(order.ProductDetails) {
		return nil, ErrLineIndexOutOfRange
	}

	return s.UpdateMatchedQuantity(id, lineIndex, order.ProductDetails[lineIndex].Quantity)
}

// SetMatchOverride stores a manual percentage next to the computed one;
// the two are never merged.
func (s *incomingOrderService) SetMatchOverride(id uint, override *float64) (*models.IncomingOrder, error) {
	if override != nil && (*override < 0 || *override > 100) {
		return nil, ErrOverrideRange
	}

	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	order.MatchOverride = override

	if err := s.repo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *incomingOrderService) AddComment(id uint, author, text string) (*models.IncomingOrderComment, error) {
	if text == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}

	comment := &models.IncomingOrderComment{
		IncomingOrderID: id,
		Author:          author,
		Text:            text,
	}
	if err := s.repo.AddComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *incomingOrderService) Delete(id uint) error {
	return s.repo.Delete(id)
}
