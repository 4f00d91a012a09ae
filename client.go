package topodash

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
)

type Counter interface {
	Inc()
	Add(v float64)
}

type Measure interface {
	Observe(secs float64)
}

type noopMetric struct{}

func (noopMetric) Inc()            {}
func (noopMetric) Add(float64)     {}
func (noopMetric) Observe(float64) {}

var (
	ErrUnexpectedStatus = errors.New("unexpected status", j.C("ERR_6a0f1c2b9e4d7a31"))
	ErrRequestTimeout   = errors.New("request timed out", j.C("ERR_d41c87a2f05b6e93"))
)

// Client talks to the controller's REST API.
type Client struct {
	baseURL    string
	cli        *http.Client
	metrics    Metrics
	reqTimeout time.Duration
}

type ClientOption func(*Client)

func WithBaseURL(url string) ClientOption {
	return func(client *Client) {
		client.baseURL = strings.TrimSuffix(url, "/")
	}
}

func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.cli = c
	}
}

func WithRequestTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.reqTimeout = d
	}
}

type Metrics struct {
	Calls    Counter
	Failures Counter
	Latency  Measure
}

func (m *Metrics) defaultUnused() {
	if m.Calls == nil {
		m.Calls = noopMetric{}
	}
	if m.Failures == nil {
		m.Failures = noopMetric{}
	}
	if m.Latency == nil {
		m.Latency = noopMetric{}
	}
}

func WithMetrics(m Metrics) ClientOption {
	return func(client *Client) {
		client.metrics = m
	}
}

func NewClient(opts ...ClientOption) *Client {
	ret := &Client{
		baseURL:    "http://127.0.0.1:8080",
		cli:        http.DefaultClient,
		reqTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.metrics.defaultUnused()
	if ret.cli == nil {
		panic("no http client specified")
	}
	return ret
}

// URL resolves a path against the base url, anything that isn't a path is
// returned as is.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return path
}

// Fetch gets the body at path, which may be relative to the base url or a
// full url of any scheme the http client supports.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	t0 := time.Now()
	c.metrics.Calls.Inc()
	b, err := c.doOnce(ctx, method, path, body)
	if err != nil {
		c.metrics.Failures.Inc()
		return nil, err
	}
	c.metrics.Latency.Observe(time.Since(t0).Seconds())
	return b, nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.reqTimeout)
	defer cancel()

	url := c.URL(path)
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.cli.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.Wrap(ErrRequestTimeout,
				fmt.Sprintf("%s timed out after %d ms", url, c.reqTimeout.Milliseconds()))
		}
		return nil, errors.Wrap(err, url)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response", j.KV("url", url))
	}
	if resp.StatusCode == http.StatusOK {
		return b, nil
	}
	return nil, errors.Wrap(ErrUnexpectedStatus, url+" : "+strconv.Itoa(resp.StatusCode), j.MKV{
		"status":   resp.StatusCode,
		"response": strings.TrimSpace(string(b)),
	})
}
