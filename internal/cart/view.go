package cart

import "github.com/shopspring/decimal"

// LineView is a cart line decorated with its computed subtotal.
type LineView struct {
	Index     int             `json:"index"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// View is the full cart payload returned after every mutation, so the
// register UI can re-render without a second request.
type View struct {
	Lines     []LineView      `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// NewView computes totals over the raw cart lines.
func NewView(lines []Line) View {
	view := View{
		Lines: make([]LineView, 0, len(lines)),
		Total: decimal.Zero,
	}
	for i, line := range lines {
		subtotal := line.Subtotal()
		view.Lines = append(view.Lines, LineView{
			Index:     i,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		view.ItemCount += line.Quantity
		view.Total = view.Total.Add(subtotal)
	}
	return view
}
