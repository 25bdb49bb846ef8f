package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/Lixing-Zhang/inventory-web/internal/inventoryapi"
	"github.com/Lixing-Zhang/inventory-web/internal/notify"
	"github.com/Lixing-Zhang/inventory-web/internal/render"
	"github.com/Lixing-Zhang/inventory-web/internal/repository"
	"github.com/Lixing-Zhang/inventory-web/internal/service"
)

const defaultListBody = `{"estado":"frontend_ready","datos":[
	{"RowKey":"1f0c3a9e-laptop","Nombre":"Laptop HP EliteBook","Tipo":"Electrónica","Cantidad":3,"Precio":1299.99,"Ubicacion":"Estante A"},
	{"RowKey":"7d2b4e1c-camiseta","Nombre":"Camiseta Casual","Tipo":"Ropa","Cantidad":15,"Precio":24.99,"Ubicacion":"Mostrador"}
]}`

// upstream is a fake inventory API.
type upstream struct {
	mu           sync.Mutex
	listBody     string
	mutateStatus int
	mutateBody   string
	calls        []string
	bodies       []map[string]any
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	q := r.URL.Query()
	u.calls = append(u.calls, strings.TrimSpace(r.Method+" "+q.Get("op")+" "+q.Get("id")))
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		body := map[string]any{}
		_ = json.Unmarshal(raw, &body)
		u.bodies = append(u.bodies, body)
	}

	w.Header().Set("Content-Type", "application/json")
	if q.Get("op") == string(inventoryapi.OpList) {
		_, _ = io.WriteString(w, u.listBody)
		return
	}
	w.WriteHeader(u.mutateStatus)
	_, _ = io.WriteString(w, u.mutateBody)
}

func (u *upstream) Calls() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.calls...)
}

type testEnv struct {
	router   http.Handler
	upstream *upstream
	server   *httptest.Server
	service  *service.ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	up := &upstream{
		listBody:     defaultListBody,
		mutateStatus: http.StatusOK,
		mutateBody:   `{"estado":"exitoso","mensaje":"Producto guardado"}`,
	}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	client, err := inventoryapi.NewClient(srv.URL+"/api/inventoryapi", srv.Client())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewProductService(client, repository.NewInMemoryProductRepository(), log)

	router := NewRouter(RouterConfig{
		Products:       NewProductHandler(svc, renderer, notify.Flash{}, client.BaseURL(), log),
		API:            NewAPIHandler(svc, log),
		Health:         NewHealthHandler(svc, log),
		Logger:         log,
		AllowedOrigins: []string{"*"},
	})

	return &testEnv{router: router, upstream: up, server: srv, service: svc}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == notify.CookieName && c.MaxAge >= 0 {
			return c
		}
	}
	t.Fatalf("expected %s cookie in response", notify.CookieName)
	return nil
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestIndexLoadsProducts(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	assertContains(t, w.Body.String(),
		"Laptop HP EliteBook",
		"Camiseta Casual",
		"Se cargaron 2 productos",
		`id="totalProducts">2<`,
		`id="totalValue">4274.82<`,
		"Agregar Producto",
	)
	if calls := env.upstream.Calls(); len(calls) != 1 || calls[0] != "GET listar" {
		t.Errorf("upstream calls = %v, want [GET listar]", calls)
	}
}

func TestIndexFallsBackToExampleData(t *testing.T) {
	env := newTestEnv(t)
	env.server.Close()

	w := env.get(t, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	assertContains(t, w.Body.String(),
		"No se pudo conectar con la API",
		"text-bg-danger",
		"Modo demostración",
		"Laptop HP EliteBook",
		"Camiseta Casual",
	)

	products, _ := env.service.ListProducts(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	if len(products) != 2 || products[0].ID != "ej-1" || products[1].ID != "ej-2" {
		t.Errorf("store = %+v, want the two example records", products)
	}
}

func TestIndexWarningKeepsStore(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	env.upstream.mu.Lock()
	env.upstream.listBody = `{"estado":"mantenimiento","mensaje":"Base de datos en mantenimiento"}`
	env.upstream.mu.Unlock()

	w := env.get(t, "/")
	assertContains(t, w.Body.String(),
		"Base de datos en mantenimiento",
		"text-bg-warning",
		"Laptop HP EliteBook",
		`id="totalProducts">2<`,
	)
}

func TestSearchFiltersWithoutNetwork(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	w := env.get(t, "/search?q=LAPTOP")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Laptop HP EliteBook</strong>") {
		t.Error("expected laptop row")
	}
	if strings.Contains(body, "Camiseta Casual</strong>") {
		t.Error("camiseta row should be filtered out")
	}
	assertContains(t, body, `id="totalProducts">2<`, `value="LAPTOP"`)

	w = env.get(t, "/search?type=Ropa")
	body = w.Body.String()
	if strings.Contains(body, "Laptop HP EliteBook</strong>") || !strings.Contains(body, "Camiseta Casual</strong>") {
		t.Error("type filter should keep only the Ropa product")
	}

	if calls := env.upstream.Calls(); len(calls) != 1 {
		t.Errorf("search must not call the API, calls = %v", calls)
	}
}

func TestTableFragment(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	w := env.get(t, "/products/table?type=Ropa")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Count(body, "<tr") != 1 || !strings.Contains(body, "Camiseta Casual") {
		t.Errorf("unexpected fragment %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("fragment should not include the page layout")
	}

	w = env.get(t, "/products/table?q=zapato")
	assertContains(t, w.Body.String(), "No hay productos en el inventario")
}

func TestSaveCreatesProduct(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/products", url.Values{
		"id":       {""},
		"name":     {"Mouse Logitech"},
		"type":     {"Electrónica"},
		"quantity": {"7"},
		"price":    {"19.5"},
		"location": {"Estante B"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	calls := env.upstream.Calls()
	if len(calls) != 1 || calls[0] != "POST crear" {
		t.Fatalf("upstream calls = %v, want [POST crear]", calls)
	}
	body := env.upstream.bodies[0]
	if body["nombre"] != "Mouse Logitech" || body["cantidad"] != float64(7) || body["precio"] != 19.5 {
		t.Errorf("unexpected payload %v", body)
	}

	// Following the redirect shows the flash notice and reloads the list.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(flashCookie(t, w))
	page := env.do(t, req)
	assertContains(t, page.Body.String(), "Producto guardado", "Se cargaron 2 productos")
}

func TestSaveUpdatesProduct(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/products", url.Values{
		"id":       {"7d2b4e1c-camiseta"},
		"name":     {"Camiseta Casual"},
		"type":     {"Ropa"},
		"quantity": {"20"},
		"price":    {"24.99"},
		"location": {"Mostrador"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	calls := env.upstream.Calls()
	if len(calls) != 1 || calls[0] != "PUT actualizar 7d2b4e1c-camiseta" {
		t.Fatalf("upstream calls = %v, want [PUT actualizar 7d2b4e1c-camiseta]", calls)
	}
}

func TestSaveFailureKeepsForm(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	env.upstream.mu.Lock()
	env.upstream.mutateStatus = http.StatusBadRequest
	env.upstream.mutateBody = `{"estado":"error","mensaje":"Ubicación desconocida"}`
	env.upstream.mu.Unlock()

	w := env.post(t, "/products", url.Values{
		"id":       {"7d2b4e1c-camiseta"},
		"name":     {"Camiseta Editada"},
		"type":     {"Ropa"},
		"quantity": {"9"},
		"price":    {"30"},
		"location": {"Bodega Z"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}
	assertContains(t, w.Body.String(),
		"Ubicación desconocida",
		"text-bg-danger",
		`value="Camiseta Editada"`,
		`value="Bodega Z"`,
		`value="7d2b4e1c-camiseta"`,
		"Guardar Cambios",
	)
}

func TestSaveInvalidInputMakesNoRequest(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/products", url.Values{
		"name":     {"Lámpara"},
		"quantity": {"muchas"},
		"price":    {"10"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}
	assertContains(t, w.Body.String(), "La cantidad debe ser un entero no negativo", `value="muchas"`)
	if calls := env.upstream.Calls(); len(calls) != 0 {
		t.Errorf("upstream calls = %v, want none", calls)
	}
}

func TestEditPopulatesForm(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	w := env.get(t, "/products/7d2b4e1c-camiseta/edit")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	assertContains(t, w.Body.String(),
		`value="7d2b4e1c-camiseta"`,
		`value="Camiseta Casual"`,
		`value="15"`,
		`value="24.99"`,
		"Guardar Cambios",
		"btn btn-warning",
		"Editando: Camiseta Casual",
		"text-bg-info",
	)
}

func TestEditUnknownProductRedirects(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/products/missing/edit")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/search" {
		t.Errorf("Location = %q, want /search", loc)
	}
	flashCookie(t, w)
}

func TestDeleteFlow(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	w := env.get(t, "/products/1f0c3a9e-laptop/delete")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	assertContains(t, w.Body.String(), `¿Estás seguro de eliminar el producto "Laptop HP EliteBook"?`)
	if calls := env.upstream.Calls(); len(calls) != 1 {
		t.Fatalf("confirmation must not call the API, calls = %v", calls)
	}

	w = env.post(t, "/products/1f0c3a9e-laptop/delete", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
	calls := env.upstream.Calls()
	if calls[len(calls)-1] != "DELETE eliminar 1f0c3a9e-laptop" {
		t.Errorf("last upstream call = %q", calls[len(calls)-1])
	}
}

func TestDeleteFailureDoesNotReload(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	env.upstream.mu.Lock()
	env.upstream.mutateStatus = http.StatusNotFound
	env.upstream.mutateBody = `{}`
	env.upstream.mu.Unlock()

	w := env.post(t, "/products/1f0c3a9e-laptop/delete", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/search" {
		t.Errorf("Location = %q, want /search", loc)
	}

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	req.AddCookie(flashCookie(t, w))
	page := env.do(t, req)
	assertContains(t, page.Body.String(), "Error al eliminar", "Laptop HP EliteBook")
}

func TestAPIEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	w := env.get(t, "/api/products?q=mostrador")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var products []ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Camiseta Casual" || products[0].Price != "24.99" || products[0].StockLevel != "high" {
		t.Errorf("unexpected products %+v", products)
	}

	w = env.get(t, "/api/stats")
	var stats StatsResponse
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.Count != 2 || stats.TotalValue != "4274.82" {
		t.Errorf("unexpected stats %+v", stats)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "http://dashboard.test")
	w = env.do(t, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected CORS header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	w := env.get(t, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Loading || resp.CachedProducts != 2 {
		t.Errorf("unexpected health %+v", resp)
	}
}

func TestProductIDRoundTrip(t *testing.T) {
	ids := []string{"a/b c", "x%y", "plain id", "1f0c3a9e/ñ?#"}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			env := newTestEnv(t)
			row, _ := json.Marshal(map[string]any{
				"RowKey": id, "Nombre": "Caja Rara", "Tipo": "Hogar",
				"Cantidad": 2, "Precio": 5, "Ubicacion": "Bodega",
			})
			env.upstream.listBody = `{"estado":"frontend_ready","datos":[` + string(row) + `]}`
			env.get(t, "/")

			w := env.get(t, render.EditURL(id))
			if w.Code != http.StatusOK {
				t.Fatalf("edit %s: expected status 200, got %d (Location %q)", render.EditURL(id), w.Code, w.Header().Get("Location"))
			}
			assertContains(t, w.Body.String(), "Editando: Caja Rara", "Guardar Cambios")

			w = env.get(t, render.DeleteURL(id))
			if w.Code != http.StatusOK {
				t.Fatalf("confirm delete: expected status 200, got %d", w.Code)
			}

			w = env.post(t, render.DeleteURL(id), nil)
			if w.Code != http.StatusSeeOther {
				t.Fatalf("delete: expected status 303, got %d", w.Code)
			}
			calls := env.upstream.Calls()
			if last := calls[len(calls)-1]; last != "DELETE eliminar "+id {
				t.Errorf("last upstream call = %q, want %q", last, "DELETE eliminar "+id)
			}
		})
	}
}

func TestSearchTermIsNotTrimmed(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/")

	w := env.get(t, "/products/table?q=Casual%20")
	assertContains(t, w.Body.String(), "No hay productos en el inventario")

	w = env.get(t, "/products/table?q=%20Casual")
	if !strings.Contains(w.Body.String(), "Camiseta Casual") {
		t.Error("leading space should still match \"Camiseta Casual\"")
	}
}

func TestListAcceptsNumericStringQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.listBody = `{"estado":"frontend_ready","datos":[
		{"RowKey":"r1","Nombre":"Taza","Tipo":"Hogar","Cantidad":"4","Precio":3.5,"Ubicacion":"Estante C"},
		{"RowKey":"r2","Nombre":"Plato","Tipo":"Hogar","Cantidad":3.0,"Precio":2,"Ubicacion":"Estante C"}
	]}`

	w := env.get(t, "/")
	body := w.Body.String()
	if strings.Contains(body, "Modo demostración") {
		t.Fatal("numeric string quantity should not trigger the demo fallback")
	}
	assertContains(t, body, "Taza</strong>", "4 unidades", "Plato</strong>", "3 unidades", `id="totalValue">20.00<`)
}
