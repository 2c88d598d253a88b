package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
)

// Service exposes the session cart mutations driven by the register UI.
// Every mutation returns the refreshed view so the caller never has to
// issue a follow-up read.
type Service interface {
	View(ctx context.Context, sessionID string) (*View, error)
	Add(ctx context.Context, sessionID string, productID int64, quantity int) (*View, error)
	Adjust(ctx context.Context, sessionID string, index, delta int) (*View, error)
	Remove(ctx context.Context, sessionID string, index int) (*View, error)
	Clear(ctx context.Context, sessionID string) error
}

type productFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

type service struct {
	store   *Store
	catalog productFinder
}

// NewService constructs a cart service instance.
func NewService(store *Store, catalog productFinder) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{store: store, catalog: catalog}, nil
}

func (s *service) View(ctx context.Context, sessionID string) (*View, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view := NewView(lines)
	return &view, nil
}

func (s *service) Add(ctx context.Context, sessionID string, productID int64, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d not found", productID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading product")
	}
	if !product.IsActive {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d not found", productID)
	}

	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// An existing line for the same product grows instead of duplicating.
	existing := -1
	inCart := 0
	for i, line := range lines {
		if line.ProductID == productID {
			existing = i
			inCart = line.Quantity
			break
		}
	}

	if inCart+quantity > product.StockQuantity {
		return nil, stockError(product)
	}

	if existing >= 0 {
		lines[existing].Quantity += quantity
	} else {
		lines = append(lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
		})
	}

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	view := NewView(lines)
	return &view, nil
}

func (s *service) Adjust(ctx context.Context, sessionID string, index, delta int) (*View, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(lines) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no such cart line")
	}

	line := lines[index]
	quantity := line.Quantity + delta

	// Stepping down to zero or below is a removal.
	if quantity <= 0 {
		return s.removeAt(ctx, sessionID, lines, index)
	}
	product, err := s.catalog.FindByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The product vanished from the catalog mid-session. Drop the
			// stale line so the cart heals itself, then report the miss.
			if _, dropErr := s.removeAt(ctx, sessionID, lines, index); dropErr != nil {
				return nil, dropErr
			}
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d no longer available", line.ProductID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading product")
	}

	if quantity > product.StockQuantity {
		return nil, stockError(product)
	}

	lines[index].Quantity = quantity
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	view := NewView(lines)
	return &view, nil
}

func (s *service) Remove(ctx context.Context, sessionID string, index int) (*View, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(lines) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no such cart line")
	}
	return s.removeAt(ctx, sessionID, lines, index)
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

func (s *service) removeAt(ctx context.Context, sessionID string, lines []Line, index int) (*View, error) {
	lines = append(lines[:index], lines[index+1:]...)
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	view := NewView(lines)
	return &view, nil
}

// stockError names the product's full stock count, not the headroom left
// after the cart's holdings. The register shows the cashier what the shelf
// says.
func stockError(product *models.Product) error {
	return pkgerrors.Newf(pkgerrors.CodeInsufficientStock, "Only %d left of %s", product.StockQuantity, product.Name).
		WithDetails(map[string]any{
			"product_id": product.ID,
			"available":  product.StockQuantity,
		})
}
