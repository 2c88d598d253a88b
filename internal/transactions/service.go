package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	"github.com/jrbautista/tindahan-pos/pkg/enums"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/pagination"
)

// ItemDTO is one sold line in a historical sale.
type ItemDTO struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// TransactionDTO is the sale history payload.
type TransactionDTO struct {
	ID             int64                   `json:"id"`
	CustomerID     *int64                  `json:"customer_id,omitempty"`
	CashierID      int64                   `json:"cashier_id"`
	TotalAmount    decimal.Decimal         `json:"total_amount"`
	AmountTendered decimal.Decimal         `json:"amount_tendered"`
	ChangeDue      decimal.Decimal         `json:"change_due"`
	PaymentMethod  enums.PaymentMethod     `json:"payment_method"`
	Status         enums.TransactionStatus `json:"status"`
	Items          []ItemDTO               `json:"items"`
	CreatedAt      time.Time               `json:"created_at"`
}

// ListResult is one page of sale history plus the cursor for the next page.
type ListResult struct {
	Transactions []TransactionDTO `json:"transactions"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

// Service exposes sale history and credit settlement.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*ListResult, error)
	Get(ctx context.Context, id int64) (*TransactionDTO, error)
	MarkCreditPaid(ctx context.Context, paymentID, collectedBy int64) error
}

type saleReader interface {
	List(ctx context.Context, cursor *pagination.Cursor, limit int, filters ListFilters) ([]models.Transaction, error)
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	FindCreditPayment(ctx context.Context, id int64) (*models.CreditPayment, error)
	SettleCreditPayment(ctx context.Context, id, collectedBy int64, when time.Time) (bool, error)
}

type service struct {
	repo saleReader
	now  func() time.Time
}

// NewService constructs a transactions service instance.
func NewService(repo saleReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	if filters.PaymentMethod != "" && !filters.PaymentMethod.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown payment method %q", filters.PaymentMethod)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, cursor, pagination.LimitWithBuffer(params.Limit), filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "listing transactions")
	}

	result := &ListResult{Transactions: make([]TransactionDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for _, row := range rows {
		result.Transactions = append(result.Transactions, newTransactionDTO(&row))
	}
	if hasMore {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id int64) (*TransactionDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id must be positive")
	}

	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "transaction %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading transaction")
	}

	dto := newTransactionDTO(transaction)
	return &dto, nil
}

func (s *service) MarkCreditPaid(ctx context.Context, paymentID, collectedBy int64) error {
	if paymentID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "credit payment id must be positive")
	}
	if collectedBy <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "collector identity required")
	}

	if _, err := s.repo.FindCreditPayment(ctx, paymentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "credit payment %d not found", paymentID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading credit payment")
	}

	settled, err := s.repo.SettleCreditPayment(ctx, paymentID, collectedBy, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "settling credit payment")
	}
	if !settled {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "credit payment %d is already settled", paymentID)
	}
	return nil
}

func newTransactionDTO(transaction *models.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:             transaction.ID,
		CustomerID:     transaction.CustomerID,
		CashierID:      transaction.CashierID,
		TotalAmount:    transaction.TotalAmount,
		AmountTendered: transaction.AmountTendered,
		ChangeDue:      transaction.ChangeDue,
		PaymentMethod:  transaction.PaymentMethod,
		Status:         transaction.Status,
		Items:          make([]ItemDTO, 0, len(transaction.Items)),
		CreatedAt:      transaction.CreatedAt,
	}
	for _, item := range transaction.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return dto
}
