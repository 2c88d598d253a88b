package transactions

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	"github.com/jrbautista/tindahan-pos/pkg/enums"
	"github.com/jrbautista/tindahan-pos/pkg/pagination"
)

// Repository exposes sale history reads and credit settlement writes.
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

// ListFilters narrows the sale history listing.
type ListFilters struct {
	PaymentMethod enums.PaymentMethod
}

// List returns sale headers newest first, keyed on (created_at, id).
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int, filters ListFilters) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(limit)
	if filters.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filters.PaymentMethod)
	}
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Transaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a sale with its line snapshots.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&transaction, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// FindCreditPayment loads a collectible by primary key.
func (r *Repository) FindCreditPayment(ctx context.Context, id int64) (*models.CreditPayment, error) {
	var payment models.CreditPayment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// SettleCreditPayment flips an unpaid collectible to paid. The is_paid guard
// makes the settlement idempotent under concurrent admins; zero rows affected
// means someone else collected first.
func (r *Repository) SettleCreditPayment(ctx context.Context, id, collectedBy int64, when time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CreditPayment{}).
		Where("id = ? AND NOT is_paid", id).
		Updates(map[string]any{
			"is_paid":      true,
			"collected_by": collectedBy,
			"payment_date": when,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
