package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luno/jettison/jtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luno/topodash"
	"github.com/luno/topodash/api/render"
	"github.com/luno/topodash/test/fakectl"
)

func TestRenderBars(t *testing.T) {
	out := renderBars([]render.ControllerBar{
		{Name: "onos1", Active: true, Color: "red"},
		{Name: "onos2", Active: false, Color: "blue"},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "onos1")
	assert.Contains(t, lines[0], "█")
	assert.Contains(t, lines[1], "onos2")
	assert.Contains(t, lines[1], "░")
}

func TestPrintStatus(t *testing.T) {
	ctrl := fakectl.New(fakectl.DefaultOptions())
	srv := httptest.NewServer(ctrl.Router())
	t.Cleanup(srv.Close)
	cli := topodash.NewClient(topodash.WithBaseURL(srv.URL), topodash.WithHTTPClient(srv.Client()))

	ctrl.SetControllerActive("onos3", false)

	var out bytes.Buffer
	jtest.RequireNil(t, printStatus(context.Background(), cli, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "onos3")
	assert.Contains(t, lines[2], "░")
	assert.Contains(t, lines[3], "█")
}
