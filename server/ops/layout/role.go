package layout

import (
	"sort"

	"github.com/luno/topodash/api"
	"github.com/luno/topodash/api/render"
)

// Role is the placement rule of a switch. The set of roles is closed: Core,
// Aggregation and Edge.
type Role interface {
	Class() render.Class
	// Upstream is the switch this one fans out from, if any.
	Upstream() (string, bool)

	isRole()
}

type Core struct{}

func (Core) Class() render.Class      { return render.ClassCore }
func (Core) Upstream() (string, bool) { return "", false }
func (Core) isRole()                  {}

type Aggregation struct {
	// Parent is the association key this switch is grouped under, empty when
	// it isn't associated.
	Parent string
}

func (Aggregation) Class() render.Class { return render.ClassAggregation }
func (a Aggregation) Upstream() (string, bool) {
	return a.Parent, a.Parent != ""
}
func (Aggregation) isRole() {}

type Edge struct {
	Parent string
}

func (Edge) Class() render.Class { return render.ClassEdge }
func (e Edge) Upstream() (string, bool) {
	return e.Parent, e.Parent != ""
}
func (Edge) isRole() {}

// Associations maps aggregation switches to the key they're grouped under.
type Associations map[string]string

// InvertAssociation turns the configured parent to children lists around.
// A switch listed under more than one parent keeps the lowest parent.
func InvertAssociation(assoc map[string][]string) Associations {
	parents := make([]string, 0, len(assoc))
	for p := range assoc {
		parents = append(parents, p)
	}
	sort.Slice(parents, func(i, j int) bool {
		return api.CompareDPID(parents[i], parents[j]) < 0
	})

	ret := make(Associations)
	for _, p := range parents {
		for _, child := range assoc[p] {
			if _, ok := ret[child]; ok {
				continue
			}
			ret[child] = p
		}
	}
	return ret
}

func coreRole() Role {
	return Core{}
}

func aggregationRole(dpid string, assoc Associations) Role {
	return Aggregation{Parent: assoc[dpid]}
}

func edgeRole(dpid, sentinel string) Role {
	parent := api.ReplaceLastComponent(dpid, sentinel)
	if parent == dpid {
		return Edge{}
	}
	return Edge{Parent: parent}
}
