package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog entry the register sells from. StockQuantity is the
// single contended counter in the system; it is only ever decremented through
// the guarded update in the checkout repository.
type Product struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string          `gorm:"column:name;not null"`
	Description   *string         `gorm:"column:description"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Cost          decimal.Decimal `gorm:"column:cost;type:numeric(10,2);not null;default:0"`
	Category      string          `gorm:"column:category;not null"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0"`
	Barcode       *string         `gorm:"column:barcode;uniqueIndex"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
