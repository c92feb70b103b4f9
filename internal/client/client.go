// Package client talks to a bookrec server and implements recommender.Service.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/yildizm/bookrec/internal/api"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/recommender"
)

// Config holds remote client settings
type Config struct {
	Endpoint string
	Timeout  time.Duration

	// RateLimit is requests per second; zero disables limiting
	RateLimit float64
	Burst     int

	// FailureThreshold consecutive failures open the breaker for BreakerTimeout
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

// DefaultConfig returns the settings used when none are given
func DefaultConfig() *Config {
	return &Config{
		Timeout:          5 * time.Second,
		RateLimit:        10,
		Burst:            5,
		FailureThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return recommender.NewError(recommender.KindValidation, "endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return recommender.NewError(recommender.KindValidation, "invalid endpoint %q", c.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return recommender.NewError(recommender.KindValidation, "endpoint scheme must be http or https, got %q", u.Scheme)
	}
	if c.Timeout <= 0 {
		return recommender.NewError(recommender.KindValidation, "timeout must be positive")
	}
	if c.RateLimit < 0 {
		return recommender.NewError(recommender.KindValidation, "rate limit cannot be negative")
	}
	if c.RateLimit > 0 && c.Burst <= 0 {
		return recommender.NewError(recommender.KindValidation, "burst must be positive when rate limiting")
	}
	if c.FailureThreshold == 0 {
		return recommender.NewError(recommender.KindValidation, "failure threshold must be positive")
	}
	return nil
}

// Remote is a recommender.Service backed by a bookrec server
type Remote struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *logger.Logger
}

var _ recommender.Service = (*Remote)(nil)

// New creates a remote client
func New(config *Config, log *logger.Logger) (*Remote, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	baseURL, err := url.Parse(strings.TrimRight(config.Endpoint, "/"))
	if err != nil {
		return nil, recommender.WrapError(recommender.KindValidation, err, "invalid endpoint")
	}

	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
	}

	r := &Remote{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		limiter: rate.NewLimiter(limit, max(config.Burst, 1)),
		log:     log,
	}
	r.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "bookrec-remote",
		Timeout: config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		// the server answering with a client error is not a failure of the server
		IsSuccessful: func(err error) bool {
			return err == nil || recommender.IsValidation(err) || recommender.IsNotFound(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker %s: %s -> %s", name, from, to)
		},
	})
	return r, nil
}

// BreakerState reports the circuit breaker state
func (r *Remote) BreakerState() string {
	return r.breaker.State().String()
}

// Recommend implements recommender.Service
func (r *Remote) Recommend(ctx context.Context, req recommender.Request) (*recommender.Result, error) {
	q := url.Values{}
	if req.User != recommender.NoHistory {
		q.Set("user", strconv.FormatInt(req.User, 10))
	}
	if req.Model != "" {
		q.Set("model", req.Model.String())
	}
	if len(req.Books) > 0 {
		parts := make([]string, len(req.Books))
		for i, id := range req.Books {
			parts[i] = strconv.FormatInt(id, 10)
		}
		q.Set("books", strings.Join(parts, ","))
	}
	if req.K != 0 {
		q.Set("k", strconv.Itoa(req.K))
	}

	var result recommender.Result
	if err := r.get(ctx, "/api/recommendations", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Popular implements recommender.Service
func (r *Remote) Popular(ctx context.Context, k int) ([]recommender.ScoredBook, error) {
	q := url.Values{}
	if k != 0 {
		q.Set("k", strconv.Itoa(k))
	}
	var resp api.PopularResponse
	if err := r.get(ctx, "/api/popular", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Books implements recommender.Service
func (r *Remote) Books(ctx context.Context) ([]catalog.Book, error) {
	var resp api.BooksResponse
	if err := r.get(ctx, "/api/books", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// Users implements recommender.Service
func (r *Remote) Users(ctx context.Context) ([]int64, error) {
	var resp api.UsersResponse
	if err := r.get(ctx, "/api/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// Models implements recommender.Service
func (r *Remote) Models(ctx context.Context) ([]recommender.ModelType, error) {
	var resp api.ModelsResponse
	if err := r.get(ctx, "/api/models", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// HealthCheck asks the server for its health summary
func (r *Remote) HealthCheck(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := r.get(ctx, "/api/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *Remote) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return recommender.WrapError(recommender.KindUnavailable, err, "rate limiter")
	}

	endpoint := r.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	start := time.Now()
	body, err := r.breaker.Execute(func() ([]byte, error) {
		return r.do(ctx, endpoint.String())
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return recommender.WrapError(recommender.KindUnavailable, err, "server %s is unavailable", r.baseURL.Host)
		}
		return err
	}

	r.log.DebugWithFields("remote call", []logger.Field{
		logger.F("path", path),
		logger.Duration(time.Since(start)),
	})

	if err := json.Unmarshal(body, out); err != nil {
		return recommender.WrapError(recommender.KindInternal, err, "failed to decode %s response", path)
	}
	return nil
}

func (r *Remote) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, recommender.WrapError(recommender.KindInternal, err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, recommender.WrapError(recommender.KindUnavailable, err, "request to %s failed", r.baseURL.Host)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, recommender.WrapError(recommender.KindUnavailable, err, "failed to read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}
	return body, nil
}

// handleErrorResponse turns a non-200 answer into a typed error. The kind in
// the body wins; the status code is the fallback.
func handleErrorResponse(status int, body []byte) error {
	var errorResp api.ErrorResponse
	_ = json.Unmarshal(body, &errorResp)

	message := errorResp.Message
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}

	kind := recommender.ErrorKind(errorResp.Error)
	switch kind {
	case recommender.KindValidation, recommender.KindNotFound, recommender.KindUnavailable, recommender.KindInternal:
	default:
		kind = kindForStatus(status)
	}

	return &recommender.Error{Kind: kind, Message: message, StatusCode: status}
}

func kindForStatus(status int) recommender.ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return recommender.KindNotFound
	case status == http.StatusTooManyRequests, status == http.StatusServiceUnavailable,
		status == http.StatusBadGateway, status == http.StatusGatewayTimeout:
		return recommender.KindUnavailable
	case status >= 400 && status < 500:
		return recommender.KindValidation
	default:
		return recommender.KindInternal
	}
}
