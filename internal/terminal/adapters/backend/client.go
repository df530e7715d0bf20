// Package backend реализует клиент REST API бэкенда магазина.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/domain/services"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogRequestFailed  = "backend request failed"
	LogRequestRefused = "backend responded with error status"

	ErrorBuildRequest  = "failed to build backend request"
	ErrorEncodeBody    = "failed to encode request body"
	ErrorDecodeBody    = "failed to decode response body"
	ErrorReadBody      = "failed to read response body"
	ErrorRequestFailed = "backend request failed"
)

// HeaderIdempotencyKey - заголовок ключа идемпотентности продажи.
const HeaderIdempotencyKey = "Idempotency-Key"

// Client выполняет JSON-запросы к бэкенду.
// Авторизацию и восстановление после 401 выполняет транспорт http.Client.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient создает клиент. baseURL указывает на корень API, например http://localhost:3000/api.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	header http.Header
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	log := logger.Log(ctx).With(zap.String("method", r.method), zap.String("path", r.path))

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrorEncodeBody, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range r.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, LogRequestFailed, zap.Error(err))
		return classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", services.ErrNetwork, ErrorReadBody, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &services.APIError{
			Status:  resp.StatusCode,
			Method:  r.method,
			Path:    r.path,
			Message: parseMessage(raw),
		}
		log.Debug(ctx, LogRequestRefused, zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %w", services.ErrServer, ErrorDecodeBody, err)
	}
	return nil
}

// classifyTransportError сохраняет доменные ошибки транспорта
// (например, неудачное обновление сессии), остальные считает сетевыми.
func classifyTransportError(err error) error {
	for _, known := range []error{
		services.ErrUnauthenticated,
		services.ErrNoRefreshToken,
		services.ErrNetwork,
		services.ErrServer,
	} {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", ErrorRequestFailed, err)
		}
	}
	return fmt.Errorf("%w: %w", services.ErrNetwork, err)
}

// parseMessage извлекает поле message, которое бэкенд отдает строкой или списком строк.
func parseMessage(raw []byte) string {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(envelope.Message, &single); err == nil {
		return single
	}
	var list []string
	if err := json.Unmarshal(envelope.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

func pageValues(q entities.PageQuery) url.Values {
	values := url.Values{}
	values.Set("offset", strconv.Itoa(q.Offset))
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	for key, value := range q.Filters {
		if value != "" {
			values.Set(key, value)
		}
	}
	return values
}

func resourcePath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
