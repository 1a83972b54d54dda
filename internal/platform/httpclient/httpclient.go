package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout   = 20 * time.Second
	DefaultUserAgent = "economic-calendar/1.0 (+https://github.com/economic-calendar)"
	maxErrorBody     = 512
)

// Options configura el cliente compartido por los proveedores.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// Client envuelve *resty.Client con los defaults de los proveedores.
type Client struct {
	R *resty.Client
}

// New crea un Client con timeout, user-agent y reintentos.
// Reintenta errores de red, 429 y 5xx.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}
	wait := opts.RetryWait
	if wait <= 0 {
		wait = 500 * time.Millisecond
	}
	maxWait := opts.RetryMaxWait
	if maxWait <= 0 {
		maxWait = 5 * time.Second
	}

	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", ua).
		SetRetryCount(max(0, opts.RetryCount)).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(maxWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})

	return &Client{R: rc}
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Get hace un GET y devuelve el cuerpo. Error si status no es 2xx.
func (c *Client) Get(ctx context.Context, url string, query map[string]string, headers map[string]string) ([]byte, error) {
	if c == nil || c.R == nil {
		return nil, errors.New("httpclient: nil client")
	}
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("httpclient: empty url")
	}

	req := c.R.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.SetHeader(k, v)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("httpclient: do request: %w", err)
	}

	if !resp.IsSuccess() {
		body := strings.TrimSpace(resp.String())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode(), Body: body}
	}
	return resp.Body(), nil
}
