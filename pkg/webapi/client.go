package webapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/leighmacdonald/steamweb/internal/encoding"
	"github.com/leighmacdonald/steamweb/internal/network"
)

const (
	DefaultBaseURL      = "https://api.steampowered.com"
	DefaultCommunityURL = "https://steamcommunity.com"
	DefaultLanguage     = "english"
	maxBodySize         = 16 << 20
)

// Client talks to the upstream api. It is safe for concurrent use.
//
// The api key is read when a request is built, not when the call starts, so a SetKey racing
// with an in-flight call may or may not be seen by it.
type Client struct {
	keyMu        sync.RWMutex
	key          string
	httpClient   *http.Client
	baseURL      *url.URL
	communityURL *url.URL
	language     string
	logger       *slog.Logger
}

type Option func(client *Client) error

func WithKey(key string) Option {
	return func(client *Client) error {
		client.key = key

		return nil
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) error {
		if httpClient == nil {
			return errNilClient
		}

		client.httpClient = httpClient

		return nil
	}
}

func WithBaseURL(baseURL string) Option {
	return func(client *Client) error {
		parsed, errParse := parseBaseURL(baseURL)
		if errParse != nil {
			return errParse
		}

		client.baseURL = parsed

		return nil
	}
}

// WithCommunityURL sets the community site used for group lookups.
func WithCommunityURL(communityURL string) Option {
	return func(client *Client) error {
		parsed, errParse := parseBaseURL(communityURL)
		if errParse != nil {
			return errParse
		}

		client.communityURL = parsed

		return nil
	}
}

// WithLanguage sets the language used for localised achievement and stat names.
func WithLanguage(language string) Option {
	return func(client *Client) error {
		if language != "" {
			client.language = language
		}

		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) error {
		if logger != nil {
			client.logger = logger
		}

		return nil
	}
}

// New creates a client. The default http client enforces no overall deadline, callers bound
// requests through their context or supply their own client with WithHTTPClient.
func New(opts ...Option) (*Client, error) {
	baseURL, _ := url.Parse(DefaultBaseURL)
	communityURL, _ := url.Parse(DefaultCommunityURL)
	client := &Client{
		httpClient:   network.NewHTTPClient(network.NoTimeout),
		baseURL:      baseURL,
		communityURL: communityURL,
		language:     DefaultLanguage,
		logger:       slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

func parseBaseURL(value string) (*url.URL, error) {
	parsed, errParse := url.Parse(strings.TrimRight(value, "/"))
	if errParse != nil {
		return nil, errors.Join(errParse, ErrInvalidURL)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrInvalidURL
	}

	return parsed, nil
}

// SetKey replaces the api key used by subsequent requests. No validation is performed.
func (c *Client) SetKey(key string) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()

	c.key = key
}

func (c *Client) Key() string {
	c.keyMu.RLock()
	defer c.keyMu.RUnlock()

	return c.key
}

// RawResponse is the unprocessed outcome of a request. Data holds the parsed json body, or nil
// when the body could not be parsed. Error describes a non-200 status or an unparsable body;
// it can be set alongside Data when upstream answers with a json error document.
type RawResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Data       any               `json:"data"`
	Error      string            `json:"error,omitempty"`
	Body       []byte            `json:"-"`
}

type request struct {
	method string
	base   *url.URL
	path   string
	params Params
	// api requests carry the key and format parameters and are expected to answer in json.
	api bool
}

// Request performs a GET against an api path like ISteamUser/ResolveVanityURL/v1. It only
// returns an error when no response was received or params could not be encoded.
func (c *Client) Request(ctx context.Context, path string, params Params) (RawResponse, error) {
	return c.call(ctx, http.MethodGet, path, params)
}

// Post is Request with the parameters sent as a form body.
func (c *Client) Post(ctx context.Context, path string, params Params) (RawResponse, error) {
	return c.call(ctx, http.MethodPost, path, params)
}

func (c *Client) call(ctx context.Context, method string, path string, params Params) (RawResponse, error) {
	endpoint, errEndpoint := ParseEndpoint(path)
	if errEndpoint != nil {
		return RawResponse{}, errEndpoint
	}

	return c.do(ctx, request{method: method, base: c.baseURL, path: endpoint.Path() + "/", params: params, api: true})
}

func (c *Client) do(ctx context.Context, req request) (RawResponse, error) {
	values, errValues := req.params.Values()
	if errValues != nil {
		return RawResponse{}, errValues
	}

	if req.api {
		values.Set("format", "json")
		if key := c.Key(); key != "" && !values.Has("key") {
			values.Set("key", key)
		}
	}

	target := req.base.JoinPath(req.path)
	if strings.HasSuffix(req.path, "/") && !strings.HasSuffix(target.Path, "/") {
		target.Path += "/"
	}

	var body io.Reader
	if req.method == http.MethodPost {
		body = strings.NewReader(values.Encode())
	} else {
		target.RawQuery = values.Encode()
	}

	httpReq, errReq := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if errReq != nil {
		return RawResponse{}, errors.Join(errReq, ErrInvalidURL)
	}

	if req.method == http.MethodPost {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()

	resp, errResp := c.httpClient.Do(httpReq)
	if errResp != nil {
		return RawResponse{}, errors.Join(errResp, ErrTransport)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", slog.String("error", err.Error()))
		}
	}()

	content, errRead := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if errRead != nil {
		return RawResponse{}, errors.Join(errRead, ErrTransport)
	}

	c.logger.Debug("upstream request", slog.String("method", req.method), slog.String("path", req.path),
		slog.Int("status", resp.StatusCode), slog.Duration("duration", time.Since(start)))

	raw := RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    make(map[string]string, len(resp.Header)),
		Body:       content,
	}

	for name := range resp.Header {
		raw.Headers[name] = resp.Header.Get(name)
	}

	if req.api {
		if data, errData := encoding.DecodeJSON[any](content); errData == nil {
			raw.Data = data
		} else if resp.StatusCode == http.StatusOK {
			raw.Error = "malformed response body"
		}
	}

	if resp.StatusCode != http.StatusOK {
		raw.Error = resp.Status
	}

	return raw, nil
}
