package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
)

// barcodeRe is the allowlist for scanner input. Anything else is rejected
// before it reaches the database.
var barcodeRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Service exposes catalog read operations for the register.
type Service interface {
	// ListProducts returns active products grouped by category for the grid.
	ListProducts(ctx context.Context) ([]CategoryGroup, error)
	// FindByBarcode resolves scanner input to a sellable product.
	FindByBarcode(ctx context.Context, barcode string) (*ProductDTO, error)
}

type productReader interface {
	FindByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
}

type service struct {
	repo productReader
}

// NewService constructs a catalog service instance.
func NewService(repo productReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]CategoryGroup, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "listing products")
	}

	// Repo rows arrive ordered by category then name, so a single pass
	// preserves both orderings.
	groups := []CategoryGroup{}
	for _, product := range products {
		if len(groups) == 0 || groups[len(groups)-1].Category != product.Category {
			groups = append(groups, CategoryGroup{Category: product.Category})
		}
		last := &groups[len(groups)-1]
		last.Products = append(last.Products, NewProductDTO(&product))
	}
	return groups, nil
}

func (s *service) FindByBarcode(ctx context.Context, barcode string) (*ProductDTO, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" || !barcodeRe.MatchString(barcode) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidFormat, "invalid barcode")
	}

	product, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "no product with barcode %s", barcode)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "looking up barcode")
	}

	dto := NewProductDTO(product)
	return &dto, nil
}
