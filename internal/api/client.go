// Package api implementa el transporte HTTP hacia el backend del marketplace
// y la normalización de sus envelopes de respuesta.
//
// El backend expone dos patrones de endpoint:
//   - CRUD genérico: GET /resource[?filters], GET /resource/{id},
//     PUT /resource/{id}, DELETE /resource/{id}.
//   - Acciones explícitas: PATCH /resource/{id}/{action} (grant-pro, verify, ...).
//
// Los endpoints de listado responden un array JSON pelado o un envelope
// {<key>: [...], total?, page?, per_page?}; ambas formas se aceptan siempre.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dropDatabas3/patitas/internal/apierr"
	"github.com/dropDatabas3/patitas/internal/cache"
	"github.com/dropDatabas3/patitas/internal/metrics"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
)

// Doer abstrae *http.Client para poder inyectar transportes falsos en tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client es el cliente HTTP del SDK. Una instancia por proceso; los services
// de feature comparten el mismo Client.
type Client struct {
	baseURL string
	token   string
	http    Doer
	cache   cache.Client // opcional; solo usado por GetCached
}

// Option configura el Client.
type Option func(*Client)

// WithDoer inyecta el transporte HTTP (tests, instrumentación extra).
func WithDoer(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithToken setea el bearer token enviado en Authorization.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithCache habilita el cache de respuestas para GetCached.
func WithCache(cc cache.Client) Option {
	return func(c *Client) { c.cache = cc }
}

// WithTimeout setea el timeout del http.Client por defecto.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if hc, ok := c.http.(*http.Client); ok {
			hc.Timeout = d
		}
	}
}

// New crea un Client apuntando a baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get emite un GET a path, agregando "?<query>" solo si la query no es vacía.
func (c *Client) Get(ctx context.Context, path string, q *Query) ([]byte, error) {
	return c.do(ctx, http.MethodGet, pathWithQuery(path, q), nil)
}

// GetCached es Get con cache TTL por key path+query. Pensado para lecturas
// best-effort (status polls) y directorios públicos. Sin cache configurado
// degrada a Get.
func (c *Client) GetCached(ctx context.Context, path string, q *Query, ttl time.Duration) ([]byte, error) {
	full := pathWithQuery(path, q)
	if c.cache == nil {
		return c.do(ctx, http.MethodGet, full, nil)
	}
	if v, err := c.cache.Get(ctx, full); err == nil {
		metrics.CacheHits.Inc()
		return []byte(v), nil
	}
	b, err := c.do(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, full, string(b), ttl)
	return b, nil
}

// Post emite un POST con body JSON.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put emite un PUT con body JSON (update parcial: solo los campos a cambiar).
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Patch emite un PATCH, usado por los endpoints de acción explícita.
func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

// Delete emite un DELETE.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func pathWithQuery(path string, q *Query) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := logger.From(ctx).With(logger.Layer("transport"), logger.Method(method), logger.Path(path))
	start := time.Now()

	resp, err := c.http.Do(req)
	metrics.RequestDuration.WithLabelValues(method).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "network_error").Inc()
		log.Debug("request failed", logger.Err(err))
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "read_error").Inc()
		return nil, err
	}

	if resp.StatusCode/100 != 2 {
		metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
		log.Debug("non-2xx response", logger.Status(resp.StatusCode))
		return nil, errorFromResponse(resp.StatusCode, b)
	}

	metrics.RequestsTotal.WithLabelValues(method, "ok").Inc()
	log.Debug("request ok", logger.Status(resp.StatusCode), logger.Duration(time.Since(start)))
	return b, nil
}

// errorFromResponse arma el APIError con el body decodificado en Data:
// objeto JSON → map, cualquier otro body no vacío → string crudo.
func errorFromResponse(status int, body []byte) *apierr.APIError {
	ae := &apierr.APIError{Status: status, Message: http.StatusText(status)}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ae
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		ae.Data = obj
		if m, ok := obj["message"].(string); ok && m != "" {
			ae.Message = m
		}
		return ae
	}
	ae.Data = string(trimmed)
	return ae
}
