package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
)

// CustomerDTO is the customer payload shown in the register's member picker.
type CustomerDTO struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Email             *string         `json:"email,omitempty"`
	Phone             *string         `json:"phone,omitempty"`
	Address           *string         `json:"address,omitempty"`
	CreditLimit       decimal.Decimal `json:"credit_limit"`
	OutstandingCredit decimal.Decimal `json:"outstanding_credit"`
}

// Service exposes customer reads for member sales.
type Service interface {
	List(ctx context.Context) ([]CustomerDTO, error)
	Get(ctx context.Context, id int64) (*CustomerDTO, error)
}

type customerReader interface {
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	ListWithCredit(ctx context.Context) ([]CustomerWithCredit, error)
	OutstandingCredit(ctx context.Context, customerID int64) (decimal.Decimal, error)
}

type service struct {
	repo customerReader
}

// NewService constructs a customer service instance.
func NewService(repo customerReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]CustomerDTO, error) {
	rows, err := s.repo.ListWithCredit(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "listing customers")
	}

	dtos := make([]CustomerDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, CustomerDTO{
			ID:                row.ID,
			Name:              row.Name,
			Email:             row.Email,
			Phone:             row.Phone,
			Address:           row.Address,
			CreditLimit:       row.CreditLimit,
			OutstandingCredit: row.OutstandingCredit,
		})
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id int64) (*CustomerDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive")
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "customer %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading customer")
	}

	outstanding, err := s.repo.OutstandingCredit(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "summing credit")
	}

	return &CustomerDTO{
		ID:                customer.ID,
		Name:              customer.Name,
		Email:             customer.Email,
		Phone:             customer.Phone,
		Address:           customer.Address,
		CreditLimit:       customer.CreditLimit,
		OutstandingCredit: outstanding,
	}, nil
}
