package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:customers_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.CreditPayment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name, CreditLimit: decimal.NewFromInt(500)}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedCredit(t *testing.T, db *gorm.DB, customerID int64, amount float64, paid bool) {
	t.Helper()
	payment := &models.CreditPayment{
		CustomerID:    customerID,
		TransactionID: 1,
		Amount:        decimal.NewFromFloat(amount),
		IsPaid:        paid,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("seed credit payment: %v", err)
	}
}

func TestListWithCreditSumsUnpaidOnly(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	nena := seedCustomer(t, db, "Aling Nena")
	berto := seedCustomer(t, db, "Mang Berto")
	seedCredit(t, db, nena.ID, 120.50, false)
	seedCredit(t, db, nena.ID, 80.00, false)
	seedCredit(t, db, nena.ID, 45.00, true)

	rows, err := repo.ListWithCredit(ctx)
	if err != nil {
		t.Fatalf("list with credit: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(rows))
	}

	// Ordered by name.
	if rows[0].Name != "Aling Nena" || rows[1].Name != "Mang Berto" {
		t.Fatalf("unexpected order: %s, %s", rows[0].Name, rows[1].Name)
	}
	if got, want := rows[0].OutstandingCredit.StringFixed(2), "200.50"; got != want {
		t.Fatalf("expected outstanding %s, got %s", want, got)
	}
	if !rows[1].OutstandingCredit.IsZero() {
		t.Fatalf("expected zero outstanding for %s, got %s", berto.Name, rows[1].OutstandingCredit)
	}
}

func TestOutstandingCredit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "Aling Nena")
	seedCredit(t, db, customer.ID, 60.00, false)
	seedCredit(t, db, customer.ID, 40.00, true)

	total, err := repo.OutstandingCredit(ctx, customer.ID)
	if err != nil {
		t.Fatalf("outstanding credit: %v", err)
	}
	if got, want := total.StringFixed(2), "60.00"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	none, err := repo.OutstandingCredit(ctx, 999)
	if err != nil {
		t.Fatalf("outstanding credit for unknown: %v", err)
	}
	if !none.IsZero() {
		t.Fatalf("expected zero, got %s", none)
	}
}
