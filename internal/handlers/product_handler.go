package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/inventory-web/internal/inventory"
	"github.com/Lixing-Zhang/inventory-web/internal/models"
	"github.com/Lixing-Zhang/inventory-web/internal/notify"
	"github.com/Lixing-Zhang/inventory-web/internal/render"
	"github.com/Lixing-Zhang/inventory-web/internal/repository"
	"github.com/Lixing-Zhang/inventory-web/internal/service"
)

// ProductHandler serves the inventory pages
type ProductHandler struct {
	service  *service.ProductService
	renderer *render.Renderer
	flash    notify.Flash
	apiURL   string
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, renderer *render.Renderer, flash notify.Flash, apiURL string, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		renderer: renderer,
		flash:    flash,
		apiURL:   apiURL,
		logger:   logger,
	}
}

type pageState struct {
	status   int
	form     service.Form
	criteria inventory.Criteria
	notices  []notify.Notice
	demo     bool
}

// Index handles GET /
// Reloads the product list from the API and shows the form in create mode.
func (h *ProductHandler) Index(w http.ResponseWriter, r *http.Request) {
	notices := h.pendingNotices(w, r)
	out := h.service.Load(r.Context())

	h.renderPage(w, r, pageState{
		status:  http.StatusOK,
		notices: append(notices, out.Notice),
		demo:    out.Demo,
	})
}

// Search handles GET /search
// Filters the cached list; the API is not contacted.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, pageState{
		status:   http.StatusOK,
		criteria: criteriaFromQuery(r),
		notices:  h.pendingNotices(w, r),
	})
}

// Table handles GET /products/table
// Returns only the table rows for the filtered cache.
func (h *ProductHandler) Table(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), criteriaFromQuery(r))
	if err != nil {
		h.logger.Error("failed to read cached products", "error", err)
		http.Error(w, "Error al leer el inventario", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Table(&buf, products); err != nil {
		h.logger.Error("failed to render product table", "error", err)
		http.Error(w, "Error al renderizar la tabla", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Edit handles GET /products/{productId}/edit
// Fills the form from the cached product and switches it to edit mode.
func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}

	notices := append(h.pendingNotices(w, r), notify.Info("📝 Modo edición", "Editando: "+product.Name))
	h.renderPage(w, r, pageState{
		status:  http.StatusOK,
		form:    service.FormFromProduct(*product),
		notices: notices,
	})
}

// Save handles POST /products
// Creates or updates depending on the form's id field. On success the browser
// is sent back to / which reloads the list; on failure the form is shown
// again with the entered values and mode.
func (h *ProductHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("invalid product form", "error", err)
		http.Error(w, "Formulario inválido", http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)

	out := h.service.Submit(r.Context(), form)
	if out.OK {
		h.flash.Write(w, out.Notice)
		redirect(w, r, "/")
		return
	}

	h.renderPage(w, r, pageState{
		status:  http.StatusUnprocessableEntity,
		form:    form,
		notices: []notify.Notice{out.Notice},
	})
}

// ConfirmDelete handles GET /products/{productId}/delete
func (h *ProductHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := h.renderer.ConfirmDelete(&buf, render.ConfirmData{
		Chrome: render.Chrome{
			APIURL:  h.apiURL,
			Notices: h.pendingNotices(w, r),
			Loading: h.service.Loading(),
		},
		Product: *product,
	})
	if err != nil {
		h.logger.Error("failed to render delete confirmation", "error", err)
		http.Error(w, "Error al renderizar la confirmación", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Delete handles POST /products/{productId}/delete
// The cache is left alone; only a successful delete triggers a reload.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		h.logger.Info("invalid product id", "path", r.URL.EscapedPath(), "error", err)
		http.Error(w, "Producto inválido", http.StatusBadRequest)
		return
	}

	out := h.service.Delete(r.Context(), id)
	h.flash.Write(w, out.Notice)
	if out.OK {
		redirect(w, r, "/")
		return
	}
	redirect(w, r, "/search")
}

// lookup resolves {productId} against the cache, redirecting with a warning
// when it is unknown.
func (h *ProductHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id, err := productID(r)
	if err != nil {
		h.logger.Info("invalid product id", "path", r.URL.EscapedPath(), "error", err)
		http.Error(w, "Producto inválido", http.StatusBadRequest)
		return nil, false
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Info("product not found", "productId", id)
			h.flash.Write(w, notify.Warning("⚠️ Advertencia", "El producto ya no está en el inventario"))
			redirect(w, r, "/search")
			return nil, false
		}
		h.logger.Error("failed to get product", "productId", id, "error", err)
		http.Error(w, "Error al leer el inventario", http.StatusInternalServerError)
		return nil, false
	}
	return product, true
}

func (h *ProductHandler) pendingNotices(w http.ResponseWriter, r *http.Request) []notify.Notice {
	if notice, ok := h.flash.ReadAndClear(w, r); ok {
		return []notify.Notice{notice}
	}
	return nil
}

func (h *ProductHandler) renderPage(w http.ResponseWriter, r *http.Request, st pageState) {
	all, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to read cached products", "error", err)
		http.Error(w, "Error al leer el inventario", http.StatusInternalServerError)
		return
	}

	data := render.PageData{
		Chrome: render.Chrome{
			APIURL:  h.apiURL,
			Notices: st.notices,
			Loading: h.service.Loading(),
		},
		Demo:     st.demo,
		Form:     st.form,
		Criteria: st.criteria,
		Types:    typeOptions(inventory.Types(all), st.criteria.Type),
		Products: inventory.Filter(all, st.criteria),
		Stats:    inventory.Summarize(all),
	}

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, data); err != nil {
		h.logger.Error("failed to render inventory page", "error", err)
		http.Error(w, "Error al renderizar el inventario", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(st.status)
	_, _ = buf.WriteTo(w)
}
