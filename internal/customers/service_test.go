package customers

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
)

type stubCustomerReader struct {
	rows        []CustomerWithCredit
	byID        map[int64]*models.Customer
	outstanding map[int64]decimal.Decimal
}

func (s *stubCustomerReader) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (s *stubCustomerReader) ListWithCredit(ctx context.Context) ([]CustomerWithCredit, error) {
	return s.rows, nil
}

func (s *stubCustomerReader) OutstandingCredit(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	return s.outstanding[customerID], nil
}

func TestListMapsRows(t *testing.T) {
	t.Parallel()

	repo := &stubCustomerReader{rows: []CustomerWithCredit{
		{
			Customer:          models.Customer{ID: 1, Name: "Aling Nena"},
			OutstandingCredit: decimal.NewFromFloat(150.00),
		},
	}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("constructing service: %v", err)
	}

	dtos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dtos) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(dtos))
	}
	if dtos[0].Name != "Aling Nena" || !dtos[0].OutstandingCredit.Equal(decimal.NewFromFloat(150.00)) {
		t.Fatalf("unexpected dto: %+v", dtos[0])
	}
}

func TestGetAttachesOutstanding(t *testing.T) {
	t.Parallel()

	repo := &stubCustomerReader{
		byID:        map[int64]*models.Customer{5: {ID: 5, Name: "Mang Berto"}},
		outstanding: map[int64]decimal.Decimal{5: decimal.NewFromFloat(75.25)},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("constructing service: %v", err)
	}

	dto, err := svc.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got, want := dto.OutstandingCredit.StringFixed(2), "75.25"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestGetValidation(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubCustomerReader{byID: map[int64]*models.Customer{}})
	if err != nil {
		t.Fatalf("constructing service: %v", err)
	}

	if _, err := svc.Get(context.Background(), 0); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 42); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
