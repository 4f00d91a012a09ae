package fakectl

import (
	"encoding/json"
	"fmt"

	"github.com/luno/topodash/api"
)

type Options struct {
	Cores               int
	AggregationsPerCore int
	EdgesPerAggregation int
	Flows               int
	Controllers         []string
}

func DefaultOptions() Options {
	return Options{
		Cores:               4,
		AggregationsPerCore: 3,
		EdgesPerAggregation: 5,
		Flows:               20,
		Controllers:         []string{"onos1", "onos2", "onos3", "onos4"},
	}
}

var sites = []api.Geo{
	{Lat: 37.77, Lng: -122.42, Label: "SFO"},
	{Lat: 41.88, Lng: -87.63, Label: "CHI"},
	{Lat: 40.71, Lng: -74.01, Label: "NYC"},
	{Lat: 29.76, Lng: -95.37, Label: "HOU"},
	{Lat: 47.61, Lng: -122.33, Label: "SEA"},
	{Lat: 39.74, Lng: -104.99, Label: "DEN"},
	{Lat: 33.75, Lng: -84.39, Label: "ATL"},
	{Lat: 42.36, Lng: -71.06, Label: "BOS"},
}

func CoreDPID(c int) string {
	return fmt.Sprintf("00:00:00:00:00:%02x:00:00", c)
}

func AggregationDPID(a int) string {
	return fmt.Sprintf("00:00:00:00:00:00:%02x:01", a)
}

// EdgeDPID numbers edges from 2, the last component 01 belongs to the
// aggregation switch they hang off.
func EdgeDPID(a, e int) string {
	return fmt.Sprintf("00:00:00:00:00:00:%02x:%02x", a, e+2)
}

type topology struct {
	switches []api.Switch
	links    []api.Link
	flows    []json.RawMessage
	registry api.Registry
	config   api.Configuration
}

type flowID struct {
	Value string `json:"value"`
}

type flowEntry struct {
	FlowEntryID string `json:"flowEntryId"`
	DPID        flowID `json:"dpid"`
	InPort      int    `json:"inPort"`
	OutPort     int    `json:"outPort"`
}

type flowSummary struct {
	FlowID      flowID `json:"flowId"`
	InstallerID flowID `json:"installerId"`
	DataPath    struct {
		SrcPort     json.RawMessage `json:"srcPort"`
		DstPort     json.RawMessage `json:"dstPort"`
		FlowEntries []flowEntry     `json:"flowEntries"`
	} `json:"dataPath"`
}

func makeTopology(o Options) topology {
	t := topology{
		registry: make(api.Registry),
		config: api.Configuration{
			Association: make(map[string][]string),
			Geo:         make(map[string]api.Geo),
		},
	}

	addSwitch := func(dpid string) {
		t.switches = append(t.switches, api.Switch{
			DPID:  dpid,
			State: api.StateActive,
			Ports: []api.Port{{Number: 1}, {Number: 2}},
		})
		if len(o.Controllers) > 0 {
			ctrl := o.Controllers[(len(t.switches)-1)%len(o.Controllers)]
			t.registry[dpid] = []api.ControllerMapping{{ControllerID: ctrl}}
		}
	}
	addLink := func(a, b string) {
		t.links = append(t.links,
			api.Link{SrcSwitch: a, SrcPort: 1, DstSwitch: b, DstPort: 2},
			api.Link{SrcSwitch: b, SrcPort: 2, DstSwitch: a, DstPort: 1},
		)
	}

	agg := 1
	var edges []string
	for c := 1; c <= o.Cores; c++ {
		core := CoreDPID(c)
		addSwitch(core)
		t.config.Core = append(t.config.Core, core)
		g := sites[(c-1)%len(sites)]
		g.FanOutAngle = float64(c * 45 % 360)
		t.config.Geo[core] = g
		if c > 1 {
			addLink(CoreDPID(c-1), core)
		}

		for a := 0; a < o.AggregationsPerCore; a++ {
			ad := AggregationDPID(agg)
			addSwitch(ad)
			t.config.Aggregation = append(t.config.Aggregation, ad)
			t.config.Association[core] = append(t.config.Association[core], ad)
			addLink(core, ad)

			for e := 0; e < o.EdgesPerAggregation; e++ {
				ed := EdgeDPID(agg, e)
				addSwitch(ed)
				addLink(ad, ed)
				edges = append(edges, ed)
			}
			agg++
		}
	}
	if o.Cores > 2 {
		addLink(CoreDPID(o.Cores), CoreDPID(1))
	}

	for i := 0; i < o.Flows && len(edges) > 1; i++ {
		var f flowSummary
		f.FlowID.Value = fmt.Sprintf("0x%x", i+1)
		f.InstallerID.Value = "fakectl"
		f.DataPath.SrcPort = json.RawMessage(`{"port":{"value":1}}`)
		f.DataPath.DstPort = json.RawMessage(`{"port":{"value":1}}`)
		// Every fourth flow is degenerate with a single entry.
		entries := 3
		if i%4 == 3 {
			entries = 1
		}
		src := edges[i%len(edges)]
		for e := 0; e < entries; e++ {
			f.DataPath.FlowEntries = append(f.DataPath.FlowEntries, flowEntry{
				FlowEntryID: fmt.Sprintf("0x%x%02x", i+1, e),
				DPID:        flowID{Value: src},
				InPort:      1,
				OutPort:     2,
			})
		}
		b, err := json.Marshal(f)
		if err != nil {
			panic(err)
		}
		t.flows = append(t.flows, b)
	}
	return t
}
