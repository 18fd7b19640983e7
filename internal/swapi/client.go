package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/five82/holonet/internal/logger"
)

// Fetcher is the read surface of the Star Wars API used by holonet.
// It is implemented by *Client and can be faked in tests.
type Fetcher interface {
	FetchCharacters(ctx context.Context, page int) (Page[Character], error)
	SearchCharacters(ctx context.Context, query string) (Page[Character], error)
	SearchCharactersPage(ctx context.Context, query string, page int) (Page[Character], error)
	FetchCharacter(ctx context.Context, id string) (Character, error)
	FetchFilm(ctx context.Context, rawURL string) (Film, error)
	FetchPlanet(ctx context.Context, rawURL string) (Planet, error)
	FetchSpecies(ctx context.Context, rawURL string) (Species, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the Star Wars API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	log       logger.Logger
}

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://swapi.dev/api"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "holonet/0.1"
	defaultRate      = 20
	defaultBurst     = 10
)

type settings struct {
	http      *http.Client
	timeout   time.Duration
	rps       float64
	burst     int
	userAgent string
	log       logger.Logger
}

// Option customises a Client.
type Option func(*settings)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(s *settings) { s.http = h }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRateLimit caps outbound requests per second. A non-positive rps
// disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *settings) {
		s.rps = rps
		s.burst = burst
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// NewClient builds a Client rooted at baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	s := settings{
		timeout:   DefaultTimeout,
		rps:       defaultRate,
		burst:     defaultBurst,
		userAgent: defaultUserAgent,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	httpClient := &http.Client{Timeout: s.timeout}
	if s.http != nil {
		dup := *s.http
		dup.Timeout = s.timeout
		httpClient = &dup
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if s.rps > 0 {
		burst := s.burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(s.rps), burst)
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: s.userAgent,
		limiter:   limiter,
		log:       s.log.With(logger.String("component", "swapi")),
	}, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchCharacters retrieves one page (1-based) of the people collection.
func (c *Client) FetchCharacters(ctx context.Context, page int) (Page[Character], error) {
	if page < 1 {
		page = 1
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))

	var payload Page[Character]
	if err := c.get(ctx, c.endpoint("people", values), &payload); err != nil {
		return Page[Character]{}, err
	}
	return payload, nil
}

// SearchCharacters retrieves the first page of characters whose name
// contains query. Matching is done by the service.
func (c *Client) SearchCharacters(ctx context.Context, query string) (Page[Character], error) {
	return c.SearchCharactersPage(ctx, query, 1)
}

// SearchCharactersPage retrieves a given page of search results.
func (c *Client) SearchCharactersPage(ctx context.Context, query string, page int) (Page[Character], error) {
	values := url.Values{}
	values.Set("search", strings.TrimSpace(query))
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}

	var payload Page[Character]
	if err := c.get(ctx, c.endpoint("people", values), &payload); err != nil {
		return Page[Character]{}, err
	}
	return payload, nil
}

// FetchCharacter retrieves a single character by identifier.
func (c *Client) FetchCharacter(ctx context.Context, id string) (Character, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Character{}, fmt.Errorf("character id required")
	}
	var payload Character
	if err := c.get(ctx, c.endpoint("people/"+url.PathEscape(id), nil), &payload); err != nil {
		return Character{}, err
	}
	return payload, nil
}

// FetchFilm retrieves the film at rawURL.
func (c *Client) FetchFilm(ctx context.Context, rawURL string) (Film, error) {
	var payload Film
	if err := c.getAbsolute(ctx, rawURL, &payload); err != nil {
		return Film{}, err
	}
	return payload, nil
}

// FetchPlanet retrieves the planet at rawURL.
func (c *Client) FetchPlanet(ctx context.Context, rawURL string) (Planet, error) {
	var payload Planet
	if err := c.getAbsolute(ctx, rawURL, &payload); err != nil {
		return Planet{}, err
	}
	return payload, nil
}

// FetchSpecies retrieves the species at rawURL.
func (c *Client) FetchSpecies(ctx context.Context, rawURL string) (Species, error) {
	var payload Species
	if err := c.getAbsolute(ctx, rawURL, &payload); err != nil {
		return Species{}, err
	}
	return payload, nil
}

// endpoint builds "<base>/<resource>/" with an optional query.
func (c *Client) endpoint(resource string, values url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Trim(resource, "/") + "/"
	u.RawPath = ""
	if len(values) > 0 {
		u.RawQuery = values.Encode()
	}
	return u.String()
}

func (c *Client) getAbsolute(ctx context.Context, rawURL string, dest any) error {
	target := Secure(rawURL)
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid resource url %q", rawURL)
	}
	return c.get(ctx, u.String(), dest)
}

func (c *Client) get(ctx context.Context, target string, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{URL: target, Err: err}
	}

	reqID := uuid.NewString()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		netErr := &NetworkError{URL: target, Err: err}
		c.log.Warn("request failed",
			logger.String("request_id", reqID),
			logger.String("url", target),
			logger.String("kind", Kind(netErr)),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return netErr
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("request",
		logger.String("request_id", reqID),
		logger.String("url", target),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{URL: target, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %w", errDecode, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
