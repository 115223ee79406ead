package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/gitego/pkg/buildinfo"
	"github.com/matzehuels/gitego/pkg/cache"
	"github.com/matzehuels/gitego/pkg/errors"
	"github.com/matzehuels/gitego/pkg/httputil"
	"github.com/matzehuels/gitego/pkg/observability"
)

const (
	// DefaultEndpoint is GitHub's GraphQL API.
	DefaultEndpoint = "https://api.github.com/graphql"

	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 30 * time.Second

	// DefaultTTL is how long a successful response stays cached.
	DefaultTTL = 30 * time.Second

	retryDelay = time.Second
)

// Client posts GraphQL requests with a bearer token and caches the answers.
// It is safe for concurrent use.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	retries  int
	logger   *log.Logger
	group    singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient replaces the HTTP client. Its Timeout is left as given.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithCache sets the response cache. The default is a fresh [cache.MemoryCache].
func WithCache(cc cache.Cache) Option {
	return func(c *Client) { c.cache = cc }
}

// WithKeyer sets how cache keys are built.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) { c.keyer = k }
}

// WithTTL sets the cache time-to-live for successful responses.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithRetries enables n retries of transient failures (5xx, transport
// errors) with exponential backoff starting at one second.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = max(n, 0) }
}

// WithLogger sets the logger used for cache backend warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client authenticated with token.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized,
			"missing GitHub token: set GITHUB_PERSONAL_ACCESS_TOKEN")
	}
	c := &Client{
		endpoint: DefaultEndpoint,
		token:    token,
		http:     &http.Client{Timeout: DefaultTimeout},
		cache:    cache.NewMemoryCache(),
		keyer:    cache.NewDefaultKeyer(),
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if err := errors.ValidateURL(c.endpoint); err != nil {
		return nil, err
	}
	return c, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Fetch runs query with variables and returns the "data" payload.
// A cached answer younger than the TTL is returned without a request.
func (c *Client) Fetch(ctx context.Context, query string, variables map[string]any) (Response, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	vars, err := json.Marshal(variables)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode variables")
	}

	key := c.keyer.GraphQLKey(query, vars)
	if data, ok := c.cached(ctx, key); ok {
		return data, nil
	}

	// The flight outlives any single caller: it is detached from the first
	// caller's cancellation and bounded by the HTTP client timeout instead.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		data, err := c.post(flightCtx, query, vars)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(flightCtx, key, data, c.ttl); err != nil {
			c.logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(flightCtx, key, len(data))
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return Response(res.Val.([]byte)), nil
	}
}

// Invalidate drops the cached answer for query and variables.
func (c *Client) Invalidate(ctx context.Context, query string, variables map[string]any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	vars, err := json.Marshal(variables)
	if err != nil {
		return err
	}
	return c.cache.Delete(ctx, c.keyer.GraphQLKey(query, vars))
}

func (c *Client) cached(ctx context.Context, key string) (Response, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		// A broken backend degrades to uncached fetches.
		c.logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return Response(data), true
}

type request struct {
	Query     string          `json:"query"`
	Variables json.RawMessage `json:"variables"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

func (c *Client) post(ctx context.Context, query string, vars []byte) ([]byte, error) {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}

	var data []byte
	err = httputil.Retry(ctx, c.retries+1, retryDelay, func() error {
		var err error
		data, err = c.do(ctx, body)
		return err
	})
	if err != nil {
		// Strip the retry marker so callers only see the underlying error.
		var re *httputil.RetryableError
		if stderrors.As(err, &re) {
			return nil, re.Err
		}
		return nil, err
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, body []byte) ([]byte, error) {
	host, path := splitURL(c.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	observability.HTTP().OnRequest(ctx, http.MethodPost, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodPost, host, path, err)
		code := errors.ErrCodeNetwork
		if isTimeout(err) {
			code = errors.ErrCodeTimeout
		}
		return nil, httputil.Retryable(errors.Wrap(code, err, "POST %s", c.endpoint))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodPost, host, path, err)
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response"))
	}
	observability.HTTP().OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
		if resp.StatusCode >= 500 {
			return nil, httputil.Retryable(statusErr)
		}
		return nil, statusErr
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode response")
	}
	if len(env.Errors) > 0 {
		first := env.Errors[0]
		return nil, &first
	}
	return env.Data, nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}
