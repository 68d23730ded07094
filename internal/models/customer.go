package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxnCharge     TransactionType = "CHARGE"
	TxnPayment    TransactionType = "PAYMENT"
	TxnRefund     TransactionType = "REFUND"
	TxnAdjustment TransactionType = "ADJUSTMENT"
	TxnReversal   TransactionType = "REVERSAL"
)

type Customer struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"not null"`
	Phone          string          `json:"phone" gorm:"uniqueIndex;not null"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	CreditLimit    decimal.Decimal `json:"credit_limit" gorm:"type:numeric(14,2);default:0"`
	CreditBalance  decimal.Decimal `json:"credit_balance" gorm:"type:numeric(14,2);default:0"`
	CurrentBalance decimal.Decimal `json:"current_balance" gorm:"type:numeric(14,2);default:0"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

// Transaction is an append-only ledger entry. A transaction may be
// reversed exactly once: the reversal is a new linked REVERSAL entry
// and the original is flagged, never deleted.
type Transaction struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	CustomerID   uint            `json:"customer_id" gorm:"not null;index"`
	Type         TransactionType `json:"type" gorm:"type:VARCHAR(20);not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Note         string          `json:"note"`
	Reference    string          `json:"reference" gorm:"uniqueIndex;not null"`
	OrderID      *uint           `json:"order_id"`
	IsReversed   bool            `json:"is_reversed" gorm:"default:false"`
	ReversalOfID *uint           `json:"reversal_of_id"`
	CreatedBy    uint            `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BalanceDelta is the signed effect of this transaction on the
// customer's current balance (positive means the customer owes more).
func (t Transaction) BalanceDelta() decimal.Decimal {
	switch t.Type {
	case TxnCharge:
		return t.Amount
	case TxnPayment, TxnRefund:
		return t.Amount.Neg()
	default: // ADJUSTMENT and REVERSAL carry their own sign
		return t.Amount
	}
}
