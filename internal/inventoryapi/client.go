// Package inventoryapi is the HTTP client for the remote inventory API.
//
// The API exposes a single endpoint; the operation is selected with the "op"
// query parameter and the outcome is reported in the "estado" field of the
// JSON body rather than by the HTTP status alone.
package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lixing-Zhang/inventory-web/internal/models"
)

// Op is the value of the "op" query parameter.
type Op string

const (
	OpList   Op = "listar"
	OpCreate Op = "crear"
	OpUpdate Op = "actualizar"
	OpDelete Op = "eliminar"
)

// Both values mean success. No further distinction between them is made.
const (
	StatusReady     = "frontend_ready"
	StatusSucceeded = "exitoso"
)

const tracerName = "github.com/Lixing-Zhang/inventory-web/internal/inventoryapi"

// IsSuccessStatus reports whether status is one of the recognized success values.
func IsSuccessStatus(status string) bool {
	return status == StatusReady || status == StatusSucceeded
}

// Response is the envelope every operation returns.
type Response struct {
	Status  string           `json:"estado"`
	Message string           `json:"mensaje,omitempty"`
	Data    []models.Product `json:"datos,omitempty"`
}

type productPayload struct {
	Name     string      `json:"nombre"`
	Type     string      `json:"tipo"`
	Quantity int         `json:"cantidad"`
	Price    json.Number `json:"precio"`
	Location string      `json:"ubicacion"`
}

func newPayload(in models.ProductInput) productPayload {
	return productPayload{
		Name:     in.Name,
		Type:     in.Type,
		Quantity: in.Quantity,
		Price:    json.Number(in.Price.String()),
		Location: in.Location,
	}
}

// Client issues operations against a fixed base endpoint.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient creates a client for baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    u,
		httpClient: httpClient,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches every product. A missing "datos" field yields an empty slice.
func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	resp, httpStatus, err := c.do(ctx, http.MethodGet, OpList, "", nil)
	if err != nil {
		return nil, err
	}
	if !IsSuccessStatus(resp.Status) {
		return nil, &StatusError{Op: OpList, HTTPStatus: httpStatus, Status: resp.Status, Message: resp.Message}
	}
	if resp.Data == nil {
		return []models.Product{}, nil
	}
	return resp.Data, nil
}

// Create adds a product; the API assigns its identifier.
func (c *Client) Create(ctx context.Context, in models.ProductInput) (*Response, error) {
	payload := newPayload(in)
	return c.mutate(ctx, http.MethodPost, OpCreate, "", &payload)
}

// Update replaces the fields of the product with the given identifier.
func (c *Client) Update(ctx context.Context, id string, in models.ProductInput) (*Response, error) {
	payload := newPayload(in)
	return c.mutate(ctx, http.MethodPut, OpUpdate, id, &payload)
}

// Delete removes the product with the given identifier.
func (c *Client) Delete(ctx context.Context, id string) (*Response, error) {
	return c.mutate(ctx, http.MethodDelete, OpDelete, id, nil)
}

// mutate accepts any 2xx reply whose status is empty or recognized.
func (c *Client) mutate(ctx context.Context, method string, op Op, id string, payload *productPayload) (*Response, error) {
	var body any
	if payload != nil {
		body = payload
	}
	resp, httpStatus, err := c.do(ctx, method, op, id, body)
	if err != nil {
		return nil, err
	}
	if httpStatus < 200 || httpStatus > 299 || (resp.Status != "" && !IsSuccessStatus(resp.Status)) {
		return nil, &StatusError{Op: op, HTTPStatus: httpStatus, Status: resp.Status, Message: resp.Message}
	}
	return resp, nil
}

func (c *Client) endpoint(op Op, id string) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("op", string(op))
	if id != "" {
		q.Set("id", id)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) do(ctx context.Context, method string, op Op, id string, body any) (*Response, int, error) {
	ctx, span := c.tracer.Start(ctx, "inventoryapi."+string(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("inventory.op", string(op)),
			attribute.String("http.request.method", method),
		),
	)
	defer span.End()

	fail := func(err error) (*Response, int, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, &TransportError{Op: op, Err: err}
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fail(fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(op, id), reader)
	if err != nil {
		return fail(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		req.Header.Set("X-Request-Id", reqID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("send request: %w", err))
	}
	defer res.Body.Close()

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fail(fmt.Errorf("decode response (http %d): %w", res.StatusCode, err))
	}

	span.SetAttributes(
		attribute.Int("http.response.status_code", res.StatusCode),
		attribute.String("inventory.status", out.Status),
	)
	return &out, res.StatusCode, nil
}
