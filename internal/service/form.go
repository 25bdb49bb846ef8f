package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/inventory-web/internal/models"
)

var (
	ErrMissingName     = errors.New("name is required")
	ErrInvalidQuantity = errors.New("quantity must be a non-negative integer")
	ErrInvalidPrice    = errors.New("price must be a non-negative number")
)

// formMessage is the user-facing text for an Input error.
func formMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingName):
		return "El nombre es obligatorio"
	case errors.Is(err, ErrInvalidQuantity):
		return "La cantidad debe ser un entero no negativo"
	case errors.Is(err, ErrInvalidPrice):
		return "El precio debe ser un número no negativo"
	default:
		return "Datos del formulario inválidos"
	}
}

// Mode is the state of the product form.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Form holds the raw values of the product form. An empty ID means the form
// creates a new product; a populated ID means it edits that product.
type Form struct {
	ID       string
	Name     string
	Type     string
	Quantity string
	Price    string
	Location string
}

// FormFromProduct fills the form from a stored product, switching it to edit mode.
func FormFromProduct(p models.Product) Form {
	return Form{
		ID:       p.ID,
		Name:     p.Name,
		Type:     p.Type,
		Quantity: strconv.Itoa(p.Quantity),
		Price:    p.Price.String(),
		Location: p.Location,
	}
}

func (f Form) Mode() Mode {
	if strings.TrimSpace(f.ID) == "" {
		return ModeCreate
	}
	return ModeEdit
}

func (f Form) Editing() bool { return f.Mode() == ModeEdit }

func (f Form) SubmitLabel() string {
	if f.Editing() {
		return "Guardar Cambios"
	}
	return "Agregar Producto"
}

func (f Form) SubmitClass() string {
	if f.Editing() {
		return "btn btn-warning"
	}
	return "btn btn-primary"
}

// Input coerces the raw values: quantity to an integer, price to a decimal.
func (f Form) Input() (models.ProductInput, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return models.ProductInput{}, ErrMissingName
	}

	qty, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil || qty < 0 {
		return models.ProductInput{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, f.Quantity)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || price.IsNegative() {
		return models.ProductInput{}, fmt.Errorf("%w: %q", ErrInvalidPrice, f.Price)
	}

	return models.ProductInput{
		Name:     name,
		Type:     strings.TrimSpace(f.Type),
		Quantity: qty,
		Price:    price,
		Location: strings.TrimSpace(f.Location),
	}, nil
}
