package catalog

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

	mhttp "github.com/Nackophilz/fankai-jellyfin/pkg/http"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"go.uber.org/zap"
)

// DefaultServer is the public Fankai metadata API
const DefaultServer = "https://metadata.fankai.fr"

const apiKeyHeader = "X-API-Key"

// RequestEditorFn is called on every request before it is sent
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Client is an HTTP implementation of Catalog
type Client struct {
	server         *url.URL
	client         mhttp.HTTPClient
	requestEditors []RequestEditorFn
}

// ClientOption allows setting custom parameters during construction
type ClientOption func(*Client) error

// New creates a catalog client for the given server, e.g. DefaultServer
func New(server string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(server) == "" {
		return nil, errors.New("catalog server is required")
	}

	if !strings.HasSuffix(server, "/") {
		server += "/"
	}

	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog server %q: %w", server, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid catalog server %q: scheme and host are required", server)
	}

	c := &Client{
		server: u,
		client: http.DefaultClient,
	}

	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// WithHTTPClient allows overriding the default Doer, e.g. with a retrying client
func WithHTTPClient(doer mhttp.HTTPClient) ClientOption {
	return func(c *Client) error {
		c.client = doer
		return nil
	}
}

// WithRequestEditorFn allows setting up a callback function, which will be
// called right before sending the request. This can be used to mutate the request.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.requestEditors = append(c.requestEditors, fn)
		return nil
	}
}

// WithAPIKey sends key in the X-API-Key header. An empty key sends no header.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) error {
		if key == "" {
			return nil
		}

		c.requestEditors = append(c.requestEditors, func(ctx context.Context, req *http.Request) error {
			req.Header.Set(apiKeyHeader, key)
			return nil
		})
		return nil
	}
}

func (c *Client) GetSeriesByID(ctx context.Context, id int) (*Series, error) {
	var series Series
	found, err := c.get(ctx, "series/"+strconv.Itoa(id), nil, &series)
	if err != nil || !found {
		return nil, err
	}

	return &series, nil
}

// ListSeries returns the full, unpaginated listing in catalog order
func (c *Client) ListSeries(ctx context.Context) ([]Series, error) {
	var raw json.RawMessage
	found, err := c.get(ctx, "series", url.Values{"paginate": []string{"false"}}, &raw)
	if err != nil || !found {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var series []Series
		if err := json.Unmarshal(raw, &series); err != nil {
			return nil, fmt.Errorf("%w: decoding series listing: %w", ErrUnavailable, err)
		}
		return series, nil
	}

	var page seriesPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("%w: decoding series listing: %w", ErrUnavailable, err)
	}

	return page.Series, nil
}

func (c *Client) ListSeasons(ctx context.Context, seriesID int) ([]Season, error) {
	var resp seasonsResponse
	found, err := c.get(ctx, "series/"+strconv.Itoa(seriesID)+"/seasons", nil, &resp)
	if err != nil || !found {
		return nil, err
	}

	return resp.Seasons, nil
}

func (c *Client) ListEpisodes(ctx context.Context, seasonID int) ([]Episode, error) {
	var resp episodesResponse
	found, err := c.get(ctx, "seasons/"+strconv.Itoa(seasonID)+"/episodes", nil, &resp)
	if err != nil || !found {
		return nil, err
	}

	return resp.Episodes, nil
}

func (c *Client) ListActors(ctx context.Context, seriesID int) ([]Actor, error) {
	var resp actorsResponse
	found, err := c.get(ctx, "series/"+strconv.Itoa(seriesID)+"/actors", nil, &resp)
	if err != nil || !found {
		return nil, err
	}

	return resp.Actors, nil
}

// get decodes the response of a GET request into dest. It reports false when the catalog has no
// data for the path.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) (bool, error) {
	u := c.server.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	log := logger.FromCtx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	for _, fn := range c.requestEditors {
		if err := fn(ctx, req); err != nil {
			return false, err
		}
	}

	log.Debugw("querying catalog", zap.String("url", u.String()))

	resp, err := c.client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return false, fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Debugw("catalog has no data", zap.String("path", path))
		return false, nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("%w: %s returned status %d: %s", ErrUnavailable, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("%w: reading %s: %w", ErrUnavailable, path, err)
	}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(b, dest); err != nil {
		return false, fmt.Errorf("%w: decoding %s: %w", ErrUnavailable, path, err)
	}

	return true, nil
}
