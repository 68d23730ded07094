package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceDelta(t *testing.T) {
	amount := decimal.NewFromInt(500)

	tests := []struct {
		txnType TransactionType
		amount  decimal.Decimal
		want    decimal.Decimal
	}{
		{TxnCharge, amount, decimal.NewFromInt(500)},
		{TxnPayment, amount, decimal.NewFromInt(-500)},
		{TxnRefund, amount, decimal.NewFromInt(-500)},
		{TxnAdjustment, decimal.NewFromInt(-120), decimal.NewFromInt(-120)},
		{TxnAdjustment, decimal.NewFromInt(120), decimal.NewFromInt(120)},
		{TxnReversal, decimal.NewFromInt(-500), decimal.NewFromInt(-500)},
	}
	for _, tt := range tests {
		txn := Transaction{Type: tt.txnType, Amount: tt.amount}
		assert.True(t, txn.BalanceDelta().Equal(tt.want),
			"%s of %s should move the balance by %s, got %s", tt.txnType, tt.amount, tt.want, txn.BalanceDelta())
	}
}
