package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/inventory-web/internal/inventory"
	"github.com/Lixing-Zhang/inventory-web/internal/service"
)

// criteriaFromQuery reads the search term ("q") and type filter ("type"). The
// term is matched as typed, surrounding spaces included.
func criteriaFromQuery(r *http.Request) inventory.Criteria {
	q := r.URL.Query()
	return inventory.Criteria{
		Search: q.Get("q"),
		Type:   strings.TrimSpace(q.Get("type")),
	}
}

var errEmptyProductID = errors.New("empty product id")

// productID returns the {productId} path segment as the original identifier.
// chi routes on RawPath when the request carries one (an escaped "/" in the
// ID), in which case the segment is still escaped and must be decoded once.
func productID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "productId")
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(id)
		if err != nil {
			return "", err
		}
		id = decoded
	}
	if id == "" {
		return "", errEmptyProductID
	}
	return id, nil
}

// formFromRequest reads the posted product form fields.
func formFromRequest(r *http.Request) service.Form {
	return service.Form{
		ID:       strings.TrimSpace(r.PostFormValue("id")),
		Name:     r.PostFormValue("name"),
		Type:     r.PostFormValue("type"),
		Quantity: r.PostFormValue("quantity"),
		Price:    r.PostFormValue("price"),
		Location: r.PostFormValue("location"),
	}
}

// typeOptions lists the known product types, keeping the selected one even
// when no loaded product has it any more.
func typeOptions(types []string, selected string) []string {
	if selected == "" {
		return types
	}
	for _, t := range types {
		if t == selected {
			return types
		}
	}
	return append(types, selected)
}

// redirect answers a form post with a 303 so a refresh does not resubmit.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
