package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
)

// ProductDTO represents the catalog payload returned to the register UI.
type ProductDTO struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	Barcode       *string         `json:"barcode,omitempty"`
}

// CategoryGroup buckets catalog entries for the register grid.
type CategoryGroup struct {
	Category string       `json:"category"`
	Products []ProductDTO `json:"products"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) ProductDTO {
	return ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Barcode:       product.Barcode,
	}
}
