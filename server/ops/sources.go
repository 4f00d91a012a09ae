package ops

import (
	"sort"

	"github.com/luno/topodash/server/ops/config"
)

type Source string

const (
	SourceLinks             Source = "links"
	SourceSwitches          Source = "switches"
	SourceFlows             Source = "flows"
	SourceActiveControllers Source = "activeControllers"
	SourceControllers       Source = "controllers"
	SourceMapping           Source = "mapping"
	SourceConfiguration     Source = "configuration"
)

// Sources maps each source to the url it's fetched from. An empty url means
// the source isn't configured.
type Sources map[Source]string

func (s Sources) Keys() []Source {
	ret := make([]Source, 0, len(s))
	for k := range s {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Deployment documents are read from the fixtures directory in every mode.
const (
	controllersDoc   = "file:///controllers.json"
	configurationDoc = "file:///configuration.json"
)

func liveSources() Sources {
	return Sources{
		SourceLinks:             "/wm/onos/topology/links",
		SourceSwitches:          "/wm/onos/topology/switches",
		SourceFlows:             "/wm/onos/flows/getsummary/0/0/json?proxy",
		SourceActiveControllers: "/wm/onos/registry/controllers/json",
		SourceMapping:           "/wm/onos/registry/switches/json",
		SourceControllers:       controllersDoc,
		SourceConfiguration:     configurationDoc,
	}
}

func proxySources() Sources {
	s := liveSources()
	for k, url := range s {
		if url == controllersDoc || url == configurationDoc || k == SourceFlows {
			continue
		}
		s[k] = url + "?proxy"
	}
	return s
}

// mockSources are the fixture files captured from a controller.
func mockSources() Sources {
	return Sources{
		SourceLinks:             "file:///wm_core_topology_links_json.json",
		SourceSwitches:          "file:///wm_core_topology_switches_all_json.json",
		SourceFlows:             "file:///wm_flow_getall_json.json",
		SourceActiveControllers: "file:///wm_registry_controllers_json.json",
		SourceMapping:           "file:///wm_registry_switches_json.json",
		SourceControllers:       controllersDoc,
		SourceConfiguration:     configurationDoc,
	}
}

// SourcesFor returns the source set of the configured mode with any
// overrides applied.
func SourcesFor(c config.Config) Sources {
	var s Sources
	switch c.Mode {
	case config.ModeMock:
		s = mockSources()
	case config.ModeProxy:
		s = proxySources()
	default:
		s = liveSources()
	}
	for k, url := range c.Sources {
		s[Source(k)] = url
	}
	return s
}
