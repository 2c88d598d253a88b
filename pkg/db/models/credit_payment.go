package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditPayment tracks the collectible created by a credit sale. A row is
// written alongside the transaction at commit time and flipped to paid when
// the balance is settled.
type CreditPayment struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID    int64           `gorm:"column:customer_id;not null;index"`
	TransactionID int64           `gorm:"column:transaction_id;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	IsPaid        bool            `gorm:"column:is_paid;not null;default:false"`
	CollectedBy   *int64          `gorm:"column:collected_by"`
	PaymentDate   *time.Time      `gorm:"column:payment_date"`
	Notes         *string         `gorm:"column:notes"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
