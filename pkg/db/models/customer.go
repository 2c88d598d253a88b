package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a known member eligible for credit sales. Outstanding credit is
// not stored here; it is derived from unpaid credit transactions.
type Customer struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;not null"`
	Email       *string         `gorm:"column:email"`
	Phone       *string         `gorm:"column:phone"`
	Address     *string         `gorm:"column:address"`
	CreditLimit decimal.Decimal `gorm:"column:credit_limit;type:numeric(10,2);not null;default:0"`
	Notes       *string         `gorm:"column:notes"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
