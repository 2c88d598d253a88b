package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
)

// Repository exposes read access to the product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a product by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByBarcode loads an active product by its barcode.
func (r *Repository) FindByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("barcode = ? AND is_active = ?", barcode, true).
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActive returns sellable products ordered for the register grid.
func (r *Repository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category ASC, name ASC").
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
