package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jrbautista/tindahan-pos/pkg/enums"
)

// Input captures the checkout form as submitted by the register.
type Input struct {
	CustomerType   enums.CustomerType
	CustomerID     *int64
	PaymentMethod  enums.PaymentMethod
	AmountReceived decimal.Decimal
	Token          string
}

// ReceiptLine is one sold line as it appears on the printed receipt.
type ReceiptLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Receipt is returned after a committed sale. NextToken re-arms the register
// form for the following customer.
type Receipt struct {
	TransactionID  int64               `json:"transaction_id"`
	Lines          []ReceiptLine       `json:"lines"`
	Total          decimal.Decimal     `json:"total"`
	AmountTendered decimal.Decimal     `json:"amount_tendered"`
	ChangeDue      decimal.Decimal     `json:"change_due"`
	PaymentMethod  enums.PaymentMethod `json:"payment_method"`
	CustomerID     *int64              `json:"customer_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	NextToken      string              `json:"next_token"`
}
