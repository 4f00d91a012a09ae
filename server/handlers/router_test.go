package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luno/jettison/jtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luno/topodash/api"
	"github.com/luno/topodash/api/render"
	"github.com/luno/topodash/server/ops"
	"github.com/luno/topodash/server/ops/config"
	"github.com/luno/topodash/server/ops/layout"
)

type staticTopology struct {
	snap *ops.Snapshot
}

func (s staticTopology) Snapshot() (ops.Snapshot, error) {
	if s.snap == nil {
		return ops.Snapshot{}, ops.ErrNoSnapshot
	}
	return *s.snap, nil
}

func (s staticTopology) Ready() bool { return s.snap != nil }

type deps struct {
	t Topology
}

func (d deps) Topology() Topology { return d.t }

const (
	core = "00:00:00:00:00:01:00:00"
	agg  = "00:00:00:00:00:00:01:01"
	edge = "00:00:00:00:00:00:01:02"
)

func testSnapshot() *ops.Snapshot {
	m := ops.BuildModel(api.Payloads{
		Switches: []api.Switch{
			{DPID: edge, State: api.StateActive},
			{DPID: agg, State: api.StateActive},
			{DPID: core, State: api.StateActive},
		},
		Links: []api.Link{
			{SrcSwitch: core, DstSwitch: agg},
			{SrcSwitch: agg, DstSwitch: edge},
		},
		Controllers:       []string{"onos1", "onos2"},
		ActiveControllers: []string{"onos2"},
		Mapping:           api.Registry{core: {{ControllerID: "onos1"}}},
		Configuration: api.Configuration{
			Core:        []string{core},
			Aggregation: []string{agg},
			Association: map[string][]string{core: {agg}},
			Geo:         map[string]api.Geo{core: {Lng: -98, Lat: 46}},
		},
	})
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ops.Snapshot{
		Model:    m,
		Topology: ops.Render(m, layout.NewOptions(config.Default().Layout), now),
		Paths:    ops.NewPathFinder(m.Links),
		Updated:  now,
	}
}

func get(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	jtest.RequireNil(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	jtest.RequireNil(t, err)
	return resp.StatusCode, b
}

func TestRouter(t *testing.T) {
	srv := httptest.NewServer(CreateRouter(deps{t: staticTopology{snap: testSnapshot()}}))
	t.Cleanup(srv.Close)

	t.Run("model", func(t *testing.T) {
		code, b := get(t, srv, "/topodash/api/model")
		require.Equal(t, http.StatusOK, code)
		var m ops.Model
		jtest.RequireNil(t, json.Unmarshal(b, &m))
		require.Len(t, m.CoreSwitches, 1)
		assert.Equal(t, "onos1", m.CoreSwitches[0].Controller)
		assert.Len(t, m.AggregationSwitches, 1)
		assert.Len(t, m.EdgeSwitches, 1)
	})

	t.Run("topology", func(t *testing.T) {
		code, b := get(t, srv, "/topodash/api/topology")
		require.Equal(t, http.StatusOK, code)
		var topo render.Topology
		jtest.RequireNil(t, json.Unmarshal(b, &topo))
		assert.Len(t, topo.Switches, 3)
		assert.Len(t, topo.Links, 2)
		assert.Equal(t, "active color1", topo.Switches[0].Style)
	})

	t.Run("controllers", func(t *testing.T) {
		code, b := get(t, srv, "/topodash/api/controllers")
		require.Equal(t, http.StatusOK, code)
		var resp controllersResponse
		jtest.RequireNil(t, json.Unmarshal(b, &resp))
		assert.Equal(t, []render.ControllerBar{
			{Name: "onos1", Active: false, Color: "red"},
			{Name: "onos2", Active: true, Color: "blue"},
		}, resp.Controllers)
	})

	t.Run("path", func(t *testing.T) {
		code, b := get(t, srv, "/topodash/api/path/"+core+"/"+edge)
		require.Equal(t, http.StatusOK, code)
		var resp pathResponse
		jtest.RequireNil(t, json.Unmarshal(b, &resp))
		assert.Equal(t, []string{core, agg, edge}, resp.Path)
	})

	t.Run("no path", func(t *testing.T) {
		code, _ := get(t, srv, "/topodash/api/path/"+edge+"/"+core)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("unknown api", func(t *testing.T) {
		code, _ := get(t, srv, "/topodash/api/nodes")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestRouterNoSnapshot(t *testing.T) {
	srv := httptest.NewServer(CreateRouter(deps{t: staticTopology{}}))
	t.Cleanup(srv.Close)

	code, _ := get(t, srv, "/topodash/api/topology")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestDebugReady(t *testing.T) {
	testCases := []struct {
		name    string
		topo    staticTopology
		expCode int
	}{
		{name: "not ready", topo: staticTopology{}, expCode: http.StatusServiceUnavailable},
		{name: "ready", topo: staticTopology{snap: testSnapshot()}, expCode: http.StatusOK},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(CreateDebugRouter(deps{t: tc.topo}))
			t.Cleanup(srv.Close)

			code, _ := get(t, srv, "/debug/ready")
			assert.Equal(t, tc.expCode, code)
		})
	}
}
