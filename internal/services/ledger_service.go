package services

import (
	"errors"

	"retail_pos/internal/models"
	"retail_pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTxnType    = errors.New("invalid transaction type")
	ErrAmountNotPositive = errors.New("transaction amount must be positive")
)

type LedgerService interface {
	CreateCustomer(customer *models.Customer) error
	GetCustomer(id uint) (*models.Customer, error)
	GetCustomersPaginated(page, limit int) ([]models.Customer, int64, error)
	UpdateCustomer(customer *models.Customer) error

	CreateTransaction(customerID uint, txnType models.TransactionType, amount decimal.Decimal, note string, orderID *uint, createdBy uint) (*models.Transaction, error)
	ReverseTransaction(txnID, createdBy uint) (*models.Transaction, error)
	GetLedger(customerID uint) ([]models.Transaction, error)
	ReconcileBalance(customerID uint) (*models.Customer, error)
}

type ledgerService struct {
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
}

func NewLedgerService(customerRepo repository.CustomerRepository, txnRepo repository.TransactionRepository) LedgerService {
	return &ledgerService{customerRepo: customerRepo, txnRepo: txnRepo}
}

func (s *ledgerService) CreateCustomer(customer *models.Customer) error {
	return s.customerRepo.Create(customer)
}

func (s *ledgerService) GetCustomer(id uint) (*models.Customer, error) {
	return s.customerRepo.GetByID(id)
}

func (s *ledgerService) GetCustomersPaginated(page, limit int) ([]models.Customer, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.customerRepo.GetPaginated(page, limit)
}

func (s *ledgerService) UpdateCustomer(customer *models.Customer) error {
	return s.customerRepo.Update(customer)
}

func (s *ledgerService) CreateTransaction(customerID uint, txnType models.TransactionType, amount decimal.Decimal, note string, orderID *uint, createdBy uint) (*models.Transaction, error) {
	switch txnType {
	case models.TxnCharge, models.TxnPayment, models.TxnRefund:
		if !amount.IsPositive() {
			return nil, ErrAmountNotPositive
		}
	case models.TxnAdjustment:
		// Adjustments may carry either sign.
	default:
		// Reversals are only ever created through ReverseTransaction.
		return nil, ErrInvalidTxnType
	}

	if _, err := s.customerRepo.GetByID(customerID); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		CustomerID: customerID,
		Type:       txnType,
		Amount:     amount,
		Note:       note,
		Reference:  uuid.NewString(),
		OrderID:    orderID,
		CreatedBy:  createdBy,
	}
	if err := s.txnRepo.CreateWithBalance(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *ledgerService) ReverseTransaction(txnID, createdBy uint) (*models.Transaction, error) {
	return s.txnRepo.Reverse(txnID, uuid.NewString(), createdBy)
}

func (s *ledgerService) GetLedger(customerID uint) ([]models.Transaction, error) {
	return s.txnRepo.GetByCustomer(customerID)
}

func (s *ledgerService) ReconcileBalance(customerID uint) (*models.Customer, error) {
	return s.txnRepo.ReconcileBalance(customerID)
}
