package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/redis"
)

type stubKV struct {
	data map[string]string
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string]string)}
}

func (s *stubKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.data[key] = value.(string)
	return nil
}

func (s *stubKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (s *stubKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *stubKV) CartKey(sessionID string) string {
	return "pos:cart:" + sessionID
}

type stubCatalog struct {
	products map[int64]*models.Product
}

func (s *stubCatalog) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func newTestService(t *testing.T, products ...*models.Product) (Service, *stubCatalog) {
	t.Helper()

	store, err := NewStore(newStubKV(), time.Hour)
	if err != nil {
		t.Fatalf("constructing store: %v", err)
	}
	catalog := &stubCatalog{products: make(map[int64]*models.Product)}
	for _, product := range products {
		catalog.products[product.ID] = product
	}
	svc, err := NewService(store, catalog)
	if err != nil {
		t.Fatalf("constructing service: %v", err)
	}
	return svc, catalog
}

func testProduct(id int64, name string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:            id,
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		Category:      "pantry",
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestAddCreatesAndMergesLines(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, testProduct(1, "Rice 1kg", 52.00, 10))
	ctx := context.Background()

	view, err := svc.Add(ctx, "sess-1", 1, 2)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected view after first add: %+v", view)
	}

	view, err = svc.Add(ctx, "sess-1", 1, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(view.Lines))
	}
	if view.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", view.Lines[0].Quantity)
	}
	if got, want := view.Total.StringFixed(2), "260.00"; got != want {
		t.Fatalf("expected total %s, got %s", want, got)
	}
}

func TestAddStockCeilingCountsCartContents(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, testProduct(1, "Eggs", 9.00, 6))
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", 1, 4); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := svc.Add(ctx, "sess-1", 1, 3)
	if !pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}
	typed := pkgerrors.As(err)
	if typed.Message() != "Only 6 left of Eggs" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestAddValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, testProduct(1, "Rice 1kg", 52.00, 10))
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", 1, 0); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for zero quantity, got %v", err)
	}
	if _, err := svc.Add(ctx, "sess-1", 99, 1); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND for unknown product, got %v", err)
	}
}

func TestAddRejectsInactiveProduct(t *testing.T) {
	t.Parallel()

	inactive := testProduct(1, "Delisted", 10.00, 5)
	inactive.IsActive = false
	svc, _ := newTestService(t, inactive)

	_, err := svc.Add(context.Background(), "sess-1", 1, 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND for inactive product, got %v", err)
	}
}

func TestAdjustStepsQuantity(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, testProduct(1, "Rice 1kg", 52.00, 10))
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.Adjust(ctx, "sess-1", 0, 5)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if view.Lines[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", view.Lines[0].Quantity)
	}

	// 7 in the line plus 4 more would exceed the stock of 10. The line
	// must keep its quantity.
	_, err = svc.Adjust(ctx, "sess-1", 0, 4)
	if !pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected INSUFFICIENT_STOCK above available, got %v", err)
	}
	view, err = svc.View(ctx, "sess-1")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Lines[0].Quantity != 7 {
		t.Fatalf("expected quantity unchanged at 7, got %d", view.Lines[0].Quantity)
	}
}

func TestAdjustToZeroRemovesLine(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t,
		testProduct(1, "Rice 1kg", 52.00, 10),
		testProduct(2, "Eggs", 9.00, 30),
	)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", 1, 2); err != nil {
		t.Fatalf("add rice: %v", err)
	}
	if _, err := svc.Add(ctx, "sess-1", 2, 6); err != nil {
		t.Fatalf("add eggs: %v", err)
	}

	view, err := svc.Adjust(ctx, "sess-1", 0, -2)
	if err != nil {
		t.Fatalf("adjust to zero: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].ProductID != 2 {
		t.Fatalf("expected only eggs to remain, got %+v", view.Lines)
	}
}

func TestAdjustSelfHealsVanishedProduct(t *testing.T) {
	t.Parallel()

	svc, catalog := newTestService(t, testProduct(1, "Rice 1kg", 52.00, 10))
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	delete(catalog.products, 1)

	_, err := svc.Adjust(ctx, "sess-1", 0, 5)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	view, err := svc.View(ctx, "sess-1")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected stale line to be dropped, got %+v", view.Lines)
	}
}

func TestRemoveByIndex(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t,
		testProduct(1, "Rice 1kg", 52.00, 10),
		testProduct(2, "Eggs", 9.00, 30),
	)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", 1, 1); err != nil {
		t.Fatalf("add rice: %v", err)
	}
	if _, err := svc.Add(ctx, "sess-1", 2, 1); err != nil {
		t.Fatalf("add eggs: %v", err)
	}

	view, err := svc.Remove(ctx, "sess-1", 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].ProductID != 2 {
		t.Fatalf("expected eggs to remain, got %+v", view.Lines)
	}

	if _, err := svc.Remove(ctx, "sess-1", 5); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND for bad index, got %v", err)
	}
}

func TestViewEmptySession(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	view, err := svc.View(context.Background(), "fresh-session")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Lines) != 0 || view.ItemCount != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
	if !view.Total.IsZero() {
		t.Fatalf("expected zero total, got %s", view.Total)
	}
}

func TestCartsAreIsolatedBySession(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, testProduct(1, "Rice 1kg", 52.00, 10))
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-a", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	view, err := svc.View(ctx, "sess-b")
	if err != nil {
		t.Fatalf("view other session: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("session b should not see session a's cart")
	}
}
