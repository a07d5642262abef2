// Package backend implementa los puertos de repositorio contra la API REST remota.
// El backend es la fuente de verdad: este paquete solo traduce DTOs y normaliza errores.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Logistica-bff/pkg/config"
)

// HeaderRequestID cabecera de correlación reenviada al backend.
const HeaderRequestID = "X-Request-ID"

// Caller identidad del usuario en cuyo nombre se llama al backend.
type Caller struct {
	Subject   string
	Token     string
	RequestID string
}

type callerKey struct{}

// WithCaller adjunta el caller al contexto.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom caller del contexto (vacío si no hay).
func CallerFrom(ctx context.Context) Caller {
	c, _ := ctx.Value(callerKey{}).(Caller)
	return c
}

// UnauthorizedHook se invoca ante cada 401 del backend con el sujeto y la ruta.
type UnauthorizedHook func(ctx context.Context, subject, path string)

// Client cliente HTTP del backend. Sin reintentos: cada operación es una sola llamada.
type Client struct {
	http           *resty.Client
	log            zerolog.Logger
	onUnauthorized UnauthorizedHook
}

// NewClient construye el cliente.
func NewClient(cfg config.BackendConfig, log zerolog.Logger) *Client {
	r := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		caller := CallerFrom(req.Context())
		if caller.Token != "" {
			req.SetAuthToken(caller.Token)
		}
		id := caller.RequestID
		if id == "" {
			id = uuid.NewString()
		}
		req.SetHeader(HeaderRequestID, id)
		return nil
	})

	return &Client{http: r, log: log}
}

// OnUnauthorized registra el hook de 401.
func (c *Client) OnUnauthorized(h UnauthorizedHook) {
	c.onUnauthorized = h
}

// do ejecuta la llamada y decodifica la respuesta en out (si no es nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend sin respuesta")
		return networkError(method, path, err)
	}

	status := resp.StatusCode()
	if status == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(ctx, CallerFrom(ctx).Subject, path)
	}
	if resp.IsError() {
		apiErr := normalizeError(method, path, status, resp.Body())
		c.log.Warn().Int("status", status).Str("method", method).Str("path", path).
			Str("message", apiErr.Message).Msg("backend respondió con error")
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := decode(resp.Body(), out); err != nil {
		return fmt.Errorf("%s %s: decodificar respuesta: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// decode acepta tanto el cuerpo directo como el sobre {"data": ...}.
func decode(body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if body[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(body, &env); err == nil {
			if data, ok := env["data"]; ok {
				return json.Unmarshal(data, out)
			}
		}
	}
	return json.Unmarshal(body, out)
}

func pathf(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
