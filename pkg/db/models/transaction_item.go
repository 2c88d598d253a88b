package models

import "github.com/shopspring/decimal"

// TransactionItem snapshots one cart line at commit time. UnitPrice is the
// price captured when the line entered the cart; UnitCost is read from the
// catalog during commit and defaults to zero when unavailable.
type TransactionItem struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID int64           `gorm:"column:transaction_id;not null;index"`
	ProductID     int64           `gorm:"column:product_id;not null"`
	Quantity      int             `gorm:"column:quantity;not null"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	UnitCost      decimal.Decimal `gorm:"column:unit_cost;type:numeric(10,2);not null;default:0"`
}
