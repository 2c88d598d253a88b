package checkout

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
)

// Repository owns the persistence side of a sale commit. All of its methods
// are expected to run inside the checkout transaction.
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

// DecrementStock atomically takes qty units from the product. The guard in
// the WHERE clause is the oversell protection: a concurrent sale that drained
// the shelf first leaves this update matching zero rows.
func (r *Repository) DecrementStock(ctx context.Context, productID int64, qty int) error {
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, result.Error, "decrementing stock")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Zero rows means the product is gone or the shelf is short. Tell them apart.
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d not found", productID)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading product")
	}
	return pkgerrors.Newf(pkgerrors.CodeInsufficientStock, "Only %d left of %s", product.StockQuantity, product.Name).
		WithDetails(map[string]any{
			"product_id": product.ID,
			"available":  product.StockQuantity,
		})
}

// LookupCost returns the catalog cost for the product, zero when the product
// cannot be found.
func (r *Repository) LookupCost(ctx context.Context, productID int64) (models.Product, bool, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, false, nil
	}
	if err != nil {
		return models.Product{}, false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading product cost")
	}
	return product, true, nil
}

// CreateTransaction inserts the sale header and its line snapshots.
func (r *Repository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "inserting transaction")
	}
	return nil
}

// CreateCreditPayment records the collectible for a credit sale.
func (r *Repository) CreateCreditPayment(ctx context.Context, payment *models.CreditPayment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "inserting credit payment")
	}
	return nil
}
