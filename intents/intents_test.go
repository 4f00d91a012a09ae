package intents

import (
	"bytes"
	"context"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luno/jettison/jtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luno/topodash"
	"github.com/luno/topodash/api"
	"github.com/luno/topodash/test/fakectl"
)

func TestMACFormat(t *testing.T) {
	testCases := []struct {
		n   int
		exp string
	}{
		{n: 0, exp: "00:00:00"},
		{n: 255, exp: "00:00:ff"},
		{n: 256, exp: "00:01:00"},
		{n: 65535, exp: "00:ff:ff"},
		{n: 65536, exp: "01:00:00"},
		{n: 70000, exp: "01:11:70"},
	}
	for _, tc := range testCases {
		t.Run(tc.exp, func(t *testing.T) {
			assert.Equal(t, tc.exp, MACFormat(tc.n))
		})
	}
}

func TestGenerate(t *testing.T) {
	o := DefaultOptions()
	o.IntentID = 100
	o.Freeze = true
	o.Type = api.IntentConstrained

	got := Generate(o)
	require.Len(t, got, 4)
	assert.Equal(t, api.Intent{
		IntentID:   "F100",
		IntentType: api.IntentConstrained,
		IntentOp:   api.IntentAdd,
		SrcSwitch:  "00:00:00:00:00:00:02:02",
		SrcPort:    1,
		SrcMac:     "00:00:c0:00:00:00",
		DstSwitch:  "00:00:00:00:00:00:04:02",
		DstPort:    1,
		DstMac:     "00:00:c1:00:00:00",
	}, got[0])
	assert.Equal(t, "F103", got[3].IntentID)
	assert.Equal(t, "00:00:c0:00:00:03", got[3].SrcMac)

	o.MaxIntents = 300
	o.Freeze = false
	got = Generate(o)
	require.Len(t, got, 300)
	assert.Equal(t, "399", got[299].IntentID)
	assert.Equal(t, "00:00:c1:00:01:2b", got[299].DstMac)
}

func TestGenerateRandom(t *testing.T) {
	o := DefaultOptions()
	o.MaxSwitches = 6

	got := GenerateRandom(o, rand.New(rand.NewSource(7)))
	require.Len(t, got, 5)

	src := got[0].SrcSwitch
	dsts := make(map[string]bool)
	for i, in := range got {
		assert.Equal(t, src, in.SrcSwitch)
		assert.NotEqual(t, src, in.DstSwitch)
		assert.Equal(t, MACFormat(i), strings.TrimPrefix(in.SrcMac, "00:00:c0:"))
		dsts[in.DstSwitch] = true
	}
	assert.Len(t, dsts, 5)
}

func TestBatches(t *testing.T) {
	sizes := func(b [][]api.Intent) []int {
		var ret []int
		for _, l := range b {
			ret = append(ret, len(l))
		}
		return ret
	}

	testCases := []struct {
		name  string
		n     int
		limit int
		exp   []int
	}{
		{name: "remainder", n: 25000, limit: 10000, exp: []int{10000, 10000, 5000}},
		{name: "exact", n: 20000, limit: 10000, exp: []int{10000, 10000}},
		{name: "under limit", n: 4, limit: 10000, exp: []int{4}},
		{name: "empty", n: 0, limit: 10, exp: nil},
		{name: "one each", n: 3, limit: 1, exp: []int{1, 1, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			o.MaxIntents = tc.n
			intents := Generate(o)
			if tc.n == 0 {
				intents = nil
			}
			b := Batches(intents, tc.limit)
			assert.Equal(t, tc.exp, sizes(b))

			var flat []api.Intent
			for _, l := range b {
				flat = append(flat, l...)
			}
			assert.Equal(t, intents, flat)
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Options)
		expErr bool
	}{
		{name: "default", mutate: func(*Options) {}},
		{name: "low category", mutate: func(o *Options) { o.Category = "low" }},
		{name: "bad category", mutate: func(o *Options) { o.Category = "medium" }, expErr: true},
		{name: "bad op", mutate: func(o *Options) { o.Op = "update" }, expErr: true},
		{name: "bad type", mutate: func(o *Options) { o.Type = "widest" }, expErr: true},
		{name: "no switches", mutate: func(o *Options) { o.MaxSwitches = 0 }, expErr: true},
		{name: "zero bulk limit", mutate: func(o *Options) { o.BulkLimit = 0 }, expErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			tc.mutate(&o)
			err := o.Validate()
			assert.Equal(t, tc.expErr, err != nil, "%v", err)
		})
	}
}

func TestRunner(t *testing.T) {
	ctx := context.Background()
	ctrl := fakectl.New(fakectl.DefaultOptions())
	srv := httptest.NewServer(ctrl.Router())
	t.Cleanup(srv.Close)
	cli := topodash.NewClient(topodash.WithBaseURL(srv.URL), topodash.WithHTTPClient(srv.Client()))

	var out bytes.Buffer
	r := NewRunner(cli, &out, rand.New(rand.NewSource(1)))

	o := DefaultOptions()
	o.MaxIntents = 25
	o.BulkLimit = 10
	jtest.RequireNil(t, r.Post(ctx, o))
	assert.Len(t, ctrl.Intents(), 25)
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))

	out.Reset()
	jtest.RequireNil(t, r.Get(ctx, "high", "7"))
	assert.Contains(t, out.String(), `"intent_id":"7"`)

	o.Op = api.IntentRemove
	o.MaxIntents = 5
	jtest.RequireNil(t, r.Post(ctx, o))
	assert.Len(t, ctrl.Intents(), 20)

	out.Reset()
	jtest.RequireNil(t, r.GetAll(ctx, "high"))
	assert.Contains(t, out.String(), `"intent_id":"25"`)

	jtest.RequireNil(t, r.Purge(ctx))
	assert.Empty(t, ctrl.Intents())

	o.Category = "medium"
	require.Error(t, r.Post(ctx, o))
}
