package render

type Class string

const (
	ClassCore        Class = "core"
	ClassAggregation Class = "aggregation"
	ClassEdge        Class = "edge"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Switch struct {
	DPID       string `json:"dpid"`
	State      string `json:"state"`
	Class      Class  `json:"className"`
	Controller string `json:"controller,omitempty"`
	Label      string `json:"label,omitempty"`

	// Style is the css class list the renderer applies to the switch.
	Style string `json:"style"`

	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`

	// Synthetic is set when the position was fanned out from an upstream
	// switch rather than configured.
	Synthetic bool `json:"synthetic,omitempty"`
}

type Link struct {
	Key      string `json:"key"`
	Src      string `json:"src"`
	Dst      string `json:"dst"`
	Pending  bool   `json:"pending,omitempty"`
	Dangling bool   `json:"dangling,omitempty"`

	Points []Point `json:"points,omitempty"`
}

type ControllerBar struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Color  string `json:"color"`
}

type Topology struct {
	Switches    []Switch        `json:"switches"`
	Links       []Link          `json:"links"`
	Controllers []ControllerBar `json:"controllers"`
	Updated     int64           `json:"updated"`
}
