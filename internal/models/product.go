package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents one inventory record as returned by the inventory API.
// Identifiers are issued by the API; the UI never generates them.
type Product struct {
	ID       string          `json:"RowKey"`
	Name     string          `json:"Nombre"`
	Type     string          `json:"Tipo"`
	Quantity int             `json:"Cantidad"`
	Price    decimal.Decimal `json:"Precio"`
	Location string          `json:"Ubicacion"`
}

// UnmarshalJSON accepts Cantidad as a JSON number or a numeric string, as long
// as the value is integral ("4", 4, 3.0). A missing or null Cantidad is zero.
func (p *Product) UnmarshalJSON(data []byte) error {
	type Alias Product
	aux := struct {
		*Alias
		Quantity json.RawMessage `json:"Cantidad"`
	}{Alias: (*Alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	qty, err := parseQuantity(aux.Quantity)
	if err != nil {
		return fmt.Errorf("product %q: %w", p.ID, err)
	}
	p.Quantity = qty
	return nil
}

func parseQuantity(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return 0, fmt.Errorf("invalid quantity %s: %w", raw, err)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("quantity %s is not a whole number", raw)
	}
	return int(d.IntPart()), nil
}

// ProductInput is the payload for create and update operations.
type ProductInput struct {
	Name     string
	Type     string
	Quantity int
	Price    decimal.Decimal
	Location string
}

// Input returns the editable fields of p.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:     p.Name,
		Type:     p.Type,
		Quantity: p.Quantity,
		Price:    p.Price,
		Location: p.Location,
	}
}
