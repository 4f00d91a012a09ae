package topodash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/jtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luno/topodash/api"
	"github.com/luno/topodash/test/fakectl"
)

type countMetric struct {
	n float64
}

func (c *countMetric) Inc()            { c.n++ }
func (c *countMetric) Add(v float64)   { c.n += v }
func (c *countMetric) Observe(float64) { c.n++ }

func newTestClient(t *testing.T, opts ...ClientOption) (*Client, *fakectl.Controller) {
	ctrl := fakectl.New(fakectl.DefaultOptions())
	srv := httptest.NewServer(ctrl.Router())
	t.Cleanup(srv.Close)

	opts = append([]ClientOption{
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
	}, opts...)
	return NewClient(opts...), ctrl
}

func TestClientIntents(t *testing.T) {
	ctx := context.Background()
	c, ctrl := newTestClient(t)

	intents := []api.Intent{
		{IntentID: "1", IntentOp: api.IntentAdd, SrcSwitch: "00:00:00:00:00:00:02:02", DstSwitch: "00:00:00:00:00:00:04:02"},
		{IntentID: "2", IntentOp: api.IntentAdd, SrcSwitch: "00:00:00:00:00:00:02:02", DstSwitch: "00:00:00:00:00:00:04:02"},
	}
	_, err := c.AddIntents(ctx, intents)
	jtest.RequireNil(t, err)
	assert.Equal(t, intents, ctrl.Intents())

	b, err := c.GetIntent(ctx, "high", "2")
	jtest.RequireNil(t, err)
	var got api.Intent
	jtest.RequireNil(t, json.Unmarshal(b, &got))
	assert.Equal(t, intents[1], got)

	_, err = c.AddIntents(ctx, []api.Intent{{IntentID: "1", IntentOp: api.IntentRemove}})
	jtest.RequireNil(t, err)

	b, err = c.GetIntents(ctx, "high")
	jtest.RequireNil(t, err)
	var all []api.Intent
	jtest.RequireNil(t, json.Unmarshal(b, &all))
	assert.Equal(t, intents[1:], all)

	_, err = c.PurgeIntents(ctx)
	jtest.RequireNil(t, err)
	assert.Empty(t, ctrl.Intents())
}

func TestClientUnexpectedStatus(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.GetIntent(context.Background(), "high", "missing")
	jtest.Assert(t, ErrUnexpectedStatus, err)
}

func TestClientTimeout(t *testing.T) {
	c, ctrl := newTestClient(t, WithRequestTimeout(50*time.Millisecond))
	ctrl.Stall("/wm/onos/topology/links", time.Second)

	_, err := c.Fetch(context.Background(), "/wm/onos/topology/links")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestTimeout))
}

func TestClientMetrics(t *testing.T) {
	var calls, failures, latency countMetric
	c, _ := newTestClient(t, WithMetrics(Metrics{Calls: &calls, Failures: &failures, Latency: &latency}))
	ctx := context.Background()

	_, err := c.Fetch(ctx, "/wm/onos/topology/switches")
	jtest.RequireNil(t, err)
	_, err = c.Fetch(ctx, "/wm/onos/nothing/here")
	require.Error(t, err)

	assert.Equal(t, 2.0, calls.n)
	assert.Equal(t, 1.0, failures.n)
	assert.Equal(t, 1.0, latency.n)
}

func TestClientURL(t *testing.T) {
	c := NewClient(WithBaseURL("http://ctrl:8080/"))
	assert.Equal(t, "http://ctrl:8080/wm/onos/topology/links", c.URL("/wm/onos/topology/links"))
	assert.Equal(t, "file:///configuration.json", c.URL("file:///configuration.json"))
}

func TestFetchFileScheme(t *testing.T) {
	dir := t.TempDir()
	jtest.RequireNil(t, fakectl.New(fakectl.DefaultOptions()).WriteFixtures(dir))

	tr := &http.Transport{}
	tr.RegisterProtocol("file", http.NewFileTransport(http.Dir(dir)))
	c := NewClient(WithHTTPClient(&http.Client{Transport: tr}))

	b, err := c.Fetch(context.Background(), "file:///"+fakectl.Fixtures["controllers"])
	jtest.RequireNil(t, err)
	var names []string
	jtest.RequireNil(t, json.Unmarshal(b, &names))
	assert.Equal(t, fakectl.DefaultOptions().Controllers, names)
}
