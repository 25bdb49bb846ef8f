package inventory

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/inventory-web/internal/models"
)

func TestSummarize(t *testing.T) {
	products := []models.Product{
		{Price: decimal.RequireFromString("1299.99"), Quantity: 3},
		{Price: decimal.RequireFromString("24.99"), Quantity: 15},
	}

	stats := Summarize(products)
	if stats.Count != 2 {
		t.Errorf("Count = %d, want 2", stats.Count)
	}
	if !stats.TotalValue.Equal(decimal.RequireFromString("4274.82")) {
		t.Errorf("TotalValue = %s, want 4274.82", stats.TotalValue)
	}
	if stats.TotalValueText() != "4274.82" {
		t.Errorf("TotalValueText() = %s, want 4274.82", stats.TotalValueText())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	if stats.Count != 0 {
		t.Errorf("Count = %d, want 0", stats.Count)
	}
	if stats.TotalValueText() != "0.00" {
		t.Errorf("TotalValueText() = %s, want 0.00", stats.TotalValueText())
	}
}
