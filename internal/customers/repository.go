package customers

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
)

// CustomerWithCredit is a customer row joined with the sum of their unpaid
// credit sales.
type CustomerWithCredit struct {
	models.Customer
	OutstandingCredit decimal.Decimal `gorm:"column:outstanding_credit"`
}

const listWithCreditQuery = `
SELECT c.*,
       COALESCE(SUM(CASE WHEN cp.is_paid THEN 0 ELSE cp.amount END), 0) AS outstanding_credit
FROM customers c
LEFT JOIN credit_payments cp ON cp.customer_id = c.id
GROUP BY c.id
ORDER BY c.name ASC
`

const outstandingQuery = `
SELECT COALESCE(SUM(amount), 0)
FROM credit_payments
WHERE customer_id = ? AND NOT is_paid
`

// Repository exposes customer reads for the register.
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

// FindByID loads a customer by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListWithCredit returns every customer with their unpaid balance attached.
func (r *Repository) ListWithCredit(ctx context.Context) ([]CustomerWithCredit, error) {
	var rows []CustomerWithCredit
	if err := r.db.WithContext(ctx).Raw(listWithCreditQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// OutstandingCredit sums the unpaid collectibles for one customer.
func (r *Repository) OutstandingCredit(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).Raw(outstandingQuery, customerID).Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
