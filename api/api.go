package api

import (
	"encoding/json"
)

type SwitchState string

const (
	StateActive   SwitchState = "ACTIVE"
	StateInactive SwitchState = "INACTIVE"
)

type Port struct {
	Number int    `json:"number"`
	State  string `json:"state,omitempty"`
}

type Switch struct {
	DPID  string      `json:"dpid"`
	State SwitchState `json:"state"`
	Ports []Port      `json:"ports,omitempty"`

	// Controller is filled from the registry mapping, it's not part of the
	// topology payload.
	Controller string `json:"controller,omitempty"`
}

type Link struct {
	SrcSwitch string `json:"src-switch"`
	SrcPort   int    `json:"src-port"`
	DstSwitch string `json:"dst-switch"`
	DstPort   int    `json:"dst-port"`
	Pending   bool   `json:"pending,omitempty"`
}

func (l Link) Key() string {
	return l.SrcSwitch + "->" + l.DstSwitch
}

type DataPath struct {
	SrcPort     json.RawMessage   `json:"srcPort,omitempty"`
	DstPort     json.RawMessage   `json:"dstPort,omitempty"`
	FlowEntries []json.RawMessage `json:"flowEntries"`
}

// Flow keeps the payload it was decoded from so that it can be passed on
// unmodified.
type Flow struct {
	DataPath *DataPath

	raw json.RawMessage
}

func (f *Flow) UnmarshalJSON(b []byte) error {
	var v struct {
		DataPath *DataPath `json:"dataPath"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.DataPath = v.DataPath
	f.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (f Flow) MarshalJSON() ([]byte, error) {
	if f.raw != nil {
		return f.raw, nil
	}
	return json.Marshal(struct {
		DataPath *DataPath `json:"dataPath,omitempty"`
	}{DataPath: f.DataPath})
}

func (f Flow) EntryCount() int {
	if f.DataPath == nil {
		return 0
	}
	return len(f.DataPath.FlowEntries)
}

type ControllerMapping struct {
	ControllerID string `json:"controllerId"`
	Timestamp    int64  `json:"timestamp,omitempty"`
}

// Registry maps a switch dpid to the controllers that have registered for it,
// master first.
type Registry map[string][]ControllerMapping

type Geo struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Label       string  `json:"label,omitempty"`
	FanOutAngle float64 `json:"fanOutAngle,omitempty"`
}

type Configuration struct {
	Core        []string            `json:"core"`
	Aggregation []string            `json:"aggregation"`
	Association map[string][]string `json:"association"`
	Geo         map[string]Geo      `json:"geo"`
}

// Payloads holds every decoded source of a single poll cycle.
type Payloads struct {
	Links             []Link
	Switches          []Switch
	Flows             []Flow
	Controllers       []string
	ActiveControllers []string
	Mapping           Registry
	Configuration     Configuration
}

type IntentType string

const (
	IntentShortest    IntentType = "shortest_intent_type"
	IntentConstrained IntentType = "constrained_shortest_intent_type"
)

type IntentOp string

const (
	IntentAdd    IntentOp = "add"
	IntentRemove IntentOp = "remove"
)

type Intent struct {
	IntentID   string     `json:"intent_id"`
	IntentType IntentType `json:"intent_type"`
	IntentOp   IntentOp   `json:"intent_op"`
	SrcSwitch  string     `json:"srcSwitch"`
	SrcPort    int        `json:"srcPort"`
	SrcMac     string     `json:"srcMac"`
	DstSwitch  string     `json:"dstSwitch"`
	DstPort    int        `json:"dstPort"`
	DstMac     string     `json:"dstMac"`
}
