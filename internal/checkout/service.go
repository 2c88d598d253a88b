package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jrbautista/tindahan-pos/internal/cart"
	"github.com/jrbautista/tindahan-pos/pkg/db/models"
	"github.com/jrbautista/tindahan-pos/pkg/enums"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
	"github.com/jrbautista/tindahan-pos/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartStore interface {
	Load(ctx context.Context, sessionID string) ([]cart.Line, error)
	Clear(ctx context.Context, sessionID string) error
}

type tokenManager interface {
	Verify(ctx context.Context, sessionID, presented string) error
	Rotate(ctx context.Context, sessionID string) (string, error)
}

type customerFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
}

// Service executes the sale commit. One call takes the session cart through
// validation, pricing, and the atomic stock decrement plus transaction insert.
type Service interface {
	Execute(ctx context.Context, sessionID string, cashierID int64, input Input) (*Receipt, error)
}

type service struct {
	tx        txRunner
	repo      *Repository
	carts     cartStore
	tokens    tokenManager
	customers customerFinder
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	repo *Repository,
	carts cartStore,
	tokens tokenManager,
	customers customerFinder,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token manager required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		carts:     carts,
		tokens:    tokens,
		customers: customers,
		metrics:   checkoutMetrics,
		logg:      logg,
	}, nil
}

func (s *service) Execute(ctx context.Context, sessionID string, cashierID int64, input Input) (*Receipt, error) {
	if cashierID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "cashier identity required")
	}

	// A request with a stale or missing token is a duplicate submission, not
	// an attempt. It is rejected without burning the live token.
	if err := s.tokens.Verify(ctx, sessionID, input.Token); err != nil {
		return nil, err
	}

	started := time.Now()
	receipt, err := s.execute(ctx, sessionID, cashierID, input)

	// Once the guard passed, the attempt consumes the token whether or not
	// the sale committed.
	nextToken, rotateErr := s.tokens.Rotate(ctx, sessionID)
	if rotateErr != nil {
		if err == nil {
			// The sale is durable; losing the rotation only means the UI must
			// refetch its token.
			s.logg.Error(ctx, "token rotation failed after commit", rotateErr)
			nextToken = ""
		}
	}

	if err != nil {
		s.metrics.IncAborted(abortReason(err))
		return nil, err
	}

	receipt.NextToken = nextToken
	s.metrics.IncCommitted(receipt.PaymentMethod.String())
	s.metrics.ObserveDuration(receipt.PaymentMethod.String(), time.Since(started))
	return receipt, nil
}

func (s *service) execute(ctx context.Context, sessionID string, cashierID int64, input Input) (*Receipt, error) {
	lines, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	customerID, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	method := input.PaymentMethod
	if !method.IsValid() {
		method = enums.PaymentMethodCash
	}
	// A walk-in has nobody to collect from, so a credit sale is quietly
	// downgraded to cash.
	if method == enums.PaymentMethodCredit && customerID == nil {
		method = enums.PaymentMethodCash
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	tendered := decimal.Zero
	change := decimal.Zero
	if method == enums.PaymentMethodCash {
		tendered = input.AmountReceived
		if tendered.LessThan(total) {
			return nil, pkgerrors.Newf(pkgerrors.CodeInsufficientPayment, "amount received %s is less than total %s",
				tendered.StringFixed(2), total.StringFixed(2)).
				WithDetails(map[string]any{"total": total.StringFixed(2)})
		}
		change = tendered.Sub(total)
	}

	var committed *models.Transaction
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		transaction := &models.Transaction{
			CustomerID:     customerID,
			CashierID:      cashierID,
			TotalAmount:    total,
			AmountTendered: tendered,
			ChangeDue:      change,
			PaymentMethod:  method,
			Status:         enums.TransactionStatusCompleted,
		}

		for _, line := range lines {
			if err := repo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}

			unitCost := decimal.Zero
			if product, found, err := repo.LookupCost(ctx, line.ProductID); err != nil {
				return err
			} else if found {
				unitCost = product.Cost
			}

			transaction.Items = append(transaction.Items, models.TransactionItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				UnitCost:  unitCost,
			})
		}

		if err := repo.CreateTransaction(ctx, transaction); err != nil {
			return err
		}

		if method == enums.PaymentMethodCredit {
			payment := &models.CreditPayment{
				CustomerID:    *customerID,
				TransactionID: transaction.ID,
				Amount:        total,
			}
			if err := repo.CreateCreditPayment(ctx, payment); err != nil {
				return err
			}
		}

		committed = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The sale is durable; a failed cart clear only leaves a stale cart that
	// the session TTL will collect.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "clearing cart after commit", err)
	}

	receipt := &Receipt{
		TransactionID:  committed.ID,
		Total:          total,
		AmountTendered: tendered,
		ChangeDue:      change,
		PaymentMethod:  method,
		CustomerID:     customerID,
		CreatedAt:      committed.CreatedAt,
	}
	for _, line := range lines {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}
	return receipt, nil
}

func (s *service) resolveCustomer(ctx context.Context, input Input) (*int64, error) {
	if input.CustomerType != enums.CustomerTypeMember {
		return nil, nil
	}
	if input.CustomerID == nil || *input.CustomerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeCustomerRequired, "a member sale needs a customer")
	}

	customer, err := s.customers.FindByID(ctx, *input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "customer %d not found", *input.CustomerID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading customer")
	}
	return &customer.ID, nil
}

func abortReason(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return string(pkgerrors.CodeInternal)
}
