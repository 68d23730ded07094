package repository

import (
	"errors"

	"retail_pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyReversed     = errors.New("transaction already reversed")
	ErrReversalNotAllowed  = errors.New("a reversal cannot be reversed")
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
)

type TransactionRepository interface {
	// CreateWithBalance persists the entry and applies its balance delta
	// to the row-locked customer in one transaction.
	CreateWithBalance(txn *models.Transaction) error
	// Reverse creates a linked REVERSAL entry and flags the original,
	// exactly once.
	Reverse(txnID uint, reference string, createdBy uint) (*models.Transaction, error)
	GetByID(id uint) (*models.Transaction, error)
	GetByCustomer(customerID uint) ([]models.Transaction, error)
	// ReconcileBalance recomputes the customer balance from the ledger.
	ReconcileBalance(customerID uint) (*models.Customer, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CreateWithBalance(txn *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, txn.CustomerID).Error; err != nil {
			return err
		}

		newBalance := customer.CurrentBalance.Add(txn.BalanceDelta())
		if txn.Type == models.TxnCharge && newBalance.GreaterThan(customer.CreditLimit) {
			return ErrCreditLimitExceeded
		}

		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Update("current_balance", newBalance).Error
	})
}

func (r *transactionRepository) Reverse(txnID uint, reference string, createdBy uint) (*models.Transaction, error) {
	var reversal *models.Transaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var original models.Transaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&original, txnID).Error; err != nil {
			return err
		}
		if original.Type == models.TxnReversal {
			return ErrReversalNotAllowed
		}
		if original.IsReversed {
			return ErrAlreadyReversed
		}

		// Guarded update; RowsAffected 0 means someone reversed it first.
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND is_reversed = ?", original.ID, false).
			Update("is_reversed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReversed
		}

		reversal = &models.Transaction{
			CustomerID:   original.CustomerID,
			Type:         models.TxnReversal,
			Amount:       original.BalanceDelta().Neg(),
			Note:         "reversal of " + original.Reference,
			Reference:    reference,
			ReversalOfID: &original.ID,
			CreatedBy:    createdBy,
		}
		if err := tx.Create(reversal).Error; err != nil {
			return err
		}

		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, original.CustomerID).Error; err != nil {
			return err
		}
		newBalance := customer.CurrentBalance.Add(reversal.BalanceDelta())
		return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Update("current_balance", newBalance).Error
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.First(&txn, id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) GetByCustomer(customerID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) ReconcileBalance(customerID uint) (*models.Customer, error) {
	var customer models.Customer

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, customerID).Error; err != nil {
			return err
		}

		var txns []models.Transaction
		if err := tx.Where("customer_id = ?", customerID).Find(&txns).Error; err != nil {
			return err
		}

		balance := decimal.Zero
		for _, t := range txns {
			balance = balance.Add(t.BalanceDelta())
		}

		customer.CurrentBalance = balance
		return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Update("current_balance", balance).Error
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
