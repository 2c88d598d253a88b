package models

import (
	"time"

	"github.com/jrbautista/tindahan-pos/pkg/enums"
	"github.com/shopspring/decimal"
)

// Transaction is the durable header of a committed sale. TotalAmount is always
// recomputed server-side from the line snapshots before insert.
type Transaction struct {
	ID             int64                   `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID     *int64                  `gorm:"column:customer_id"`
	CashierID      int64                   `gorm:"column:cashier_id;not null"`
	TotalAmount    decimal.Decimal         `gorm:"column:total_amount;type:numeric(10,2);not null"`
	AmountTendered decimal.Decimal         `gorm:"column:amount_tendered;type:numeric(10,2);not null;default:0"`
	ChangeDue      decimal.Decimal         `gorm:"column:change_due;type:numeric(10,2);not null;default:0"`
	PaymentMethod  enums.PaymentMethod     `gorm:"column:payment_method;not null;default:'cash'"`
	Status         enums.TransactionStatus `gorm:"column:status;not null;default:'completed'"`
	Items          []TransactionItem       `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
}
