// Package render turns inventory data into HTML.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/Lixing-Zhang/inventory-web/internal/inventory"
	"github.com/Lixing-Zhang/inventory-web/internal/models"
	"github.com/Lixing-Zhang/inventory-web/internal/notify"
	"github.com/Lixing-Zhang/inventory-web/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Chrome is the data every full page shares.
type Chrome struct {
	Title   string
	APIURL  string
	Notices []notify.Notice
	Loading bool
}

// PageData is the inventory page: stats over the full store, the product form
// and the (possibly filtered) product table.
type PageData struct {
	Chrome
	Demo     bool
	Form     service.Form
	Criteria inventory.Criteria
	Types    []string
	Products []models.Product
	Stats    inventory.Stats
}

// ConfirmData is the delete confirmation page.
type ConfirmData struct {
	Chrome
	Product models.Product
}

// DeleteURL is where the confirmation form posts.
func (d ConfirmData) DeleteURL() string {
	return DeleteURL(d.Product.ID)
}

// Row is one product as displayed in the table.
type Row struct {
	ID         string
	Name       string
	ShortID    string
	Type       string
	TypeClass  string
	Quantity   int
	RowClass   string
	BadgeClass string
	Price      string
	Location   string
	EditURL    string
	DeleteURL  string
}

type pageView struct {
	PageData
	Rows []Row
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Table writes the table body rows for products, or the empty-state row when
// there are none.
func (r *Renderer) Table(w io.Writer, products []models.Product) error {
	return r.tmpl.ExecuteTemplate(w, "table", Rows(products))
}

// Page writes the full inventory page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Inventario"
	}
	return r.tmpl.ExecuteTemplate(w, "index", pageView{PageData: data, Rows: Rows(data.Products)})
}

// ConfirmDelete writes the delete confirmation page.
func (r *Renderer) ConfirmDelete(w io.Writer, data ConfirmData) error {
	if data.Title == "" {
		data.Title = "Eliminar producto"
	}
	return r.tmpl.ExecuteTemplate(w, "confirm_delete", data)
}

// Rows maps products to table rows in the same order.
func Rows(products []models.Product) []Row {
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, Row{
			ID:         p.ID,
			Name:       p.Name,
			ShortID:    ShortID(p.ID),
			Type:       p.Type,
			TypeClass:  TypeClass(p.Type),
			Quantity:   p.Quantity,
			RowClass:   inventory.RowClass(p.Quantity),
			BadgeClass: inventory.BadgeClass(p.Quantity),
			Price:      "$" + p.Price.StringFixed(2),
			Location:   p.Location,
			EditURL:    EditURL(p.ID),
			DeleteURL:  DeleteURL(p.ID),
		})
	}
	return rows
}

// ShortID is the first eight characters of id followed by an ellipsis.
func ShortID(id string) string {
	runes := []rune(id)
	if len(runes) > 8 {
		runes = runes[:8]
	}
	return string(runes) + "..."
}

// TypeClass is "badge-" plus the type lowercased with everything outside a-z removed.
func TypeClass(productType string) string {
	var b strings.Builder
	b.WriteString("badge-")
	for _, r := range strings.ToLower(productType) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func EditURL(id string) string {
	return "/products/" + url.PathEscape(id) + "/edit"
}

func DeleteURL(id string) string {
	return "/products/" + url.PathEscape(id) + "/delete"
}
