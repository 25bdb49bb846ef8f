package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/inventory-web/internal/models"
)

// Stats aggregates the full product list.
type Stats struct {
	Count      int
	TotalValue decimal.Decimal
}

// Summarize counts products and sums price times quantity.
func Summarize(products []models.Product) Stats {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return Stats{Count: len(products), TotalValue: total}
}

// TotalValueText is TotalValue with exactly two decimals.
func (s Stats) TotalValueText() string {
	return s.TotalValue.StringFixed(2)
}
