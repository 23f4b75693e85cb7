package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"riotcli/internal/config"
	"riotcli/internal/constants"
	"riotcli/internal/domain"
)

const maxErrorBody = 200

// Error is returned for any non-2xx response.
type Error struct {
	URL        string
	StatusCode int
	Body       string
	RetryAfter string
}

func (e *Error) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("API error %d (retry after %ss): %s", e.StatusCode, e.RetryAfter, e.Body)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

type RateLimitInfo struct {
	AppLimit       string
	AppCount       string
	MethodLimit    string
	MethodCount    string
	LastRetryAfter string
	UpdatedAt      time.Time
}

// Transport issues blocking GET requests and decodes JSON payloads.
type Transport struct {
	client    *fasthttp.Client
	timeout   time.Duration
	logger    zerolog.Logger
	rateLimit RateLimitInfo
}

func NewTransport(cfg *config.Config, logger zerolog.Logger) *Transport {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.ExternalAPITimeout
	}
	return newTransport(&fasthttp.Client{
		MaxConnsPerHost:        16,
		ReadTimeout:            timeout,
		WriteTimeout:           timeout,
		MaxIdleConnDuration:    1 * time.Minute,
		DisablePathNormalizing: true,
	}, timeout, logger)
}

func newTransport(client *fasthttp.Client, timeout time.Duration, logger zerolog.Logger) *Transport {
	return &Transport{client: client, timeout: timeout, logger: logger}
}

func (t *Transport) GetRateLimitInfo() RateLimitInfo {
	return t.rateLimit
}

func (t *Transport) updateRateLimit(resp *fasthttp.Response) {
	if v := string(resp.Header.Peek("X-App-Rate-Limit")); v != "" {
		t.rateLimit.AppLimit = v
	}
	if v := string(resp.Header.Peek("X-App-Rate-Limit-Count")); v != "" {
		t.rateLimit.AppCount = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit")); v != "" {
		t.rateLimit.MethodLimit = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit-Count")); v != "" {
		t.rateLimit.MethodCount = v
	}
	t.rateLimit.LastRetryAfter = string(resp.Header.Peek("Retry-After"))
	t.rateLimit.UpdatedAt = time.Now()
}

func doRequest[T any](ctx context.Context, t *Transport, url string, headers map[string]string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < t.timeout {
		err = t.client.DoDeadline(req, resp, deadline)
	} else {
		err = t.client.DoTimeout(req, resp, t.timeout)
	}
	if err != nil {
		t.logger.Error().Err(err).Str("url", url).Msg("request failed")
		return nil, domain.Unavailable(fmt.Errorf("request %s: %w", url, err))
	}

	t.updateRateLimit(resp)

	status := resp.StatusCode()
	t.logger.Debug().
		Str("url", url).
		Int("status", status).
		Dur("took", time.Since(start)).
		Str("app_rate_count", t.rateLimit.AppCount).
		Msg("request completed")

	if status < 200 || status > 299 {
		body := string(resp.Body())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		apiErr := &Error{
			URL:        url,
			StatusCode: status,
			Body:       body,
			RetryAfter: t.rateLimit.LastRetryAfter,
		}
		if status == http.StatusNotFound {
			return nil, domain.NotFound(apiErr)
		}
		return nil, domain.Unavailable(apiErr)
	}

	var result T
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		return nil, domain.Unavailable(fmt.Errorf("failed to parse response from %s: %w", url, err))
	}
	return &result, nil
}
