package ops

import (
	"encoding/json"
	"sort"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"

	"github.com/luno/topodash/api"
	"github.com/luno/topodash/server/ops/layout"
)

// Model is the joined state of a single poll cycle.
type Model struct {
	EdgeSwitches        []api.Switch      `json:"edgeSwitches"`
	AggregationSwitches []api.Switch      `json:"aggregationSwitches"`
	CoreSwitches        []api.Switch      `json:"coreSwitches"`
	Flows               []api.Flow        `json:"flows"`
	Controllers         []string          `json:"controllers"`
	ActiveControllers   []string          `json:"activeControllers"`
	Links               []api.Link        `json:"links"`
	Configuration       api.Configuration `json:"configuration"`
}

func (m Model) Switches() layout.Switches {
	return layout.Switches{
		Core:        m.CoreSwitches,
		Aggregation: m.AggregationSwitches,
		Edge:        m.EdgeSwitches,
	}
}

// Decode unmarshals the fetched sources. Sources that weren't fetched keep
// their zero value.
func Decode(raw Raw) (api.Payloads, error) {
	var p api.Payloads
	targets := map[Source]any{
		SourceLinks:             &p.Links,
		SourceSwitches:          &p.Switches,
		SourceFlows:             &p.Flows,
		SourceControllers:       &p.Controllers,
		SourceActiveControllers: &p.ActiveControllers,
		SourceMapping:           &p.Mapping,
		SourceConfiguration:     &p.Configuration,
	}
	for key, b := range raw {
		v, ok := targets[key]
		if !ok || len(b) == 0 {
			continue
		}
		if err := json.Unmarshal(b, v); err != nil {
			return api.Payloads{}, errors.Wrap(err, "decode source", j.KV("source", key))
		}
	}
	return p, nil
}

// BuildModel classifies switches by the configuration, attaches each
// switch's master controller and drops flows without a usable data path.
func BuildModel(p api.Payloads) Model {
	m := Model{
		Flows:             filterFlows(p.Flows),
		Controllers:       p.Controllers,
		ActiveControllers: p.ActiveControllers,
		Links:             p.Links,
		Configuration:     p.Configuration,
	}

	switches := append([]api.Switch(nil), p.Switches...)
	sort.SliceStable(switches, func(i, j int) bool {
		return api.CompareDPID(switches[i].DPID, switches[j].DPID) < 0
	})

	core := set(p.Configuration.Core)
	agg := set(p.Configuration.Aggregation)
	for _, s := range switches {
		if mapping := p.Mapping[s.DPID]; len(mapping) > 0 {
			s.Controller = mapping[0].ControllerID
		}
		switch {
		case core[s.DPID]:
			m.CoreSwitches = append(m.CoreSwitches, s)
		case agg[s.DPID]:
			m.AggregationSwitches = append(m.AggregationSwitches, s)
		default:
			m.EdgeSwitches = append(m.EdgeSwitches, s)
		}
	}
	return m
}

func filterFlows(flows []api.Flow) []api.Flow {
	ret := make([]api.Flow, 0, len(flows))
	for _, f := range flows {
		if f.EntryCount() > 1 {
			ret = append(ret, f)
		}
	}
	return ret
}

func set(l []string) map[string]bool {
	ret := make(map[string]bool, len(l))
	for _, s := range l {
		ret[s] = true
	}
	return ret
}
