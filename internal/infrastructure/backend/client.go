// Package backend implementa los puertos de repositorio sobre el API REST del taller.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/humble-crm/internal/domain"
)

// Límite de lectura de respuestas; los listados completos de clientes con órdenes son grandes.
const maxBodyBytes = 16 << 20

// Client cliente HTTP del backend. Seguro para uso concurrente.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 15 s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// StatusError respuesta no-2xx del backend. Unwrap devuelve el error de dominio equivalente.
type StatusError struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("backend: %s %s: HTTP %d", e.Method, e.Path, e.Status)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return domain.ErrUpstream
	}
}

// ── Verbos ────────────────────────────────────────────────────────────────────

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) patch(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, nil, in, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, query, nil, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return fmt.Errorf("backend: crear request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path, out)
}

// upload envía un multipart/form-data con un archivo y campos de texto.
func (c *Client) upload(ctx context.Context, path, fileField, filename, contentType string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("backend: campo %s: %w", k, err)
		}
	}
	part, err := mw.CreatePart(filePartHeader(fileField, filename, contentType))
	if err != nil {
		return fmt.Errorf("backend: crear parte de archivo: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("backend: copiar archivo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("backend: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("backend: crear request POST %s: %w", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.send(req, path, out)
}

func (c *Client) send(req *http.Request, path string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("backend: %s %s: %w", req.Method, path, ctxErr)
		}
		return fmt.Errorf("backend: %s %s: %w: %w", req.Method, path, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("backend: leer respuesta %s %s: %w", req.Method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: req.Method, Path: path, Status: resp.StatusCode, Detail: errorDetail(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: deserializar %s %s: %w: %w", req.Method, path, domain.ErrUpstream, err)
	}
	return nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// errorDetail extrae {"detail": "..."} (FastAPI) o recorta el cuerpo crudo.
func errorDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var s string
		if json.Unmarshal(body.Detail, &s) == nil {
			return s
		}
		return string(body.Detail)
	}
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
