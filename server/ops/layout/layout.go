// Package layout places switches on the map.
//
// Switches with a configured geo entry are projected directly. The rest are
// fanned out around their upstream switch: the children of an upstream are
// spread at a fixed angle per class, centred on the upstream's bearing, and
// their synthetic positions are inverted back to lng/lat so that their own
// children fan out around them in turn.
package layout

import (
	"math"

	"github.com/luno/topodash/api"
	"github.com/luno/topodash/api/render"
	"github.com/luno/topodash/server/ops/config"
)

// fanRadius scales a class width into the distance a child sits from its
// upstream switch.
const fanRadius = 20

type Options struct {
	Projection Mercator

	// Widths is the rendered radius of each class.
	Widths map[render.Class]float64
	// FanOutAngles is the angle in degrees between siblings of each class.
	FanOutAngles map[render.Class]float64

	Fallback           LngLat
	EdgeParentSentinel string
}

func NewOptions(l config.Layout) Options {
	return Options{
		Projection: NewMercator(
			LngLat{Lng: l.Center.Lng, Lat: l.Center.Lat},
			l.Scale,
			l.Rotate,
			render.Point{X: l.Translate.X, Y: l.Translate.Y},
		),
		Widths: map[render.Class]float64{
			render.ClassCore:        l.Widths.Core,
			render.ClassAggregation: l.Widths.Aggregation,
			render.ClassEdge:        l.Widths.Edge,
		},
		FanOutAngles: map[render.Class]float64{
			render.ClassAggregation: l.FanOutAngles.Aggregation,
			render.ClassEdge:        l.FanOutAngles.Edge,
		},
		Fallback:           LngLat{Lng: l.Fallback.Lng, Lat: l.Fallback.Lat},
		EdgeParentSentinel: l.EdgeParentSentinel,
	}
}

// Switches are the classified switches of a model, each list in the order
// it should be placed.
type Switches struct {
	Core        []api.Switch
	Aggregation []api.Switch
	Edge        []api.Switch
}

// fanout is the layout state of one switch during a single pass.
type fanout struct {
	children int
	cursor   float64
	pos      LngLat
	placed   bool
}

type fanouts map[string]*fanout

type entry struct {
	sw   api.Switch
	role Role
}

// Compute places every switch. It's a pure function of its arguments: the
// fan out state is rebuilt on every call.
func Compute(sw Switches, conf api.Configuration, o Options) []render.Switch {
	entries := classify(sw, InvertAssociation(conf.Association), o.EdgeParentSentinel)
	state := countChildren(entries, conf.Geo)

	ret := make([]render.Switch, 0, len(entries))
	for _, e := range entries {
		ret = append(ret, place(e, conf.Geo, state, o))
	}
	return ret
}

func classify(sw Switches, assoc Associations, sentinel string) []entry {
	entries := make([]entry, 0, len(sw.Core)+len(sw.Aggregation)+len(sw.Edge))
	for _, s := range sw.Core {
		entries = append(entries, entry{sw: s, role: coreRole()})
	}
	for _, s := range sw.Aggregation {
		entries = append(entries, entry{sw: s, role: aggregationRole(s.DPID, assoc)})
	}
	for _, s := range sw.Edge {
		entries = append(entries, entry{sw: s, role: edgeRole(s.DPID, sentinel)})
	}
	return entries
}

// countChildren creates the state of every switch and counts, per upstream,
// the children that will be fanned out around it.
func countChildren(entries []entry, geo map[string]api.Geo) fanouts {
	state := make(fanouts, len(entries))
	for _, e := range entries {
		f := &fanout{}
		if g, ok := geo[e.sw.DPID]; ok {
			f.cursor = g.FanOutAngle
		}
		state[e.sw.DPID] = f
	}
	for _, e := range entries {
		if _, ok := geo[e.sw.DPID]; ok {
			continue
		}
		up, ok := e.role.Upstream()
		if !ok {
			continue
		}
		if f, ok := state[up]; ok {
			f.children++
		}
	}
	return state
}

func place(e entry, geo map[string]api.Geo, state fanouts, o Options) render.Switch {
	self := state[e.sw.DPID]
	ret := render.Switch{
		DPID:       e.sw.DPID,
		State:      string(e.sw.State),
		Class:      e.role.Class(),
		Controller: e.sw.Controller,
	}

	if g, ok := geo[e.sw.DPID]; ok {
		ll := LngLat{Lng: g.Lng, Lat: g.Lat}
		setPosition(&ret, self, ll, o.Projection.Project(ll))
		ret.Label = g.Label
		return ret
	}

	up, ok := upstreamOf(e.role, state)
	if !ok {
		setPosition(&ret, self, o.Fallback, o.Projection.Project(o.Fallback))
		return ret
	}

	step := o.FanOutAngles[ret.Class]
	angle := up.cursor - float64(up.children-1)*step/2
	r := o.Widths[ret.Class] * fanRadius
	base := o.Projection.Project(up.pos)
	pt := render.Point{
		X: base.X + math.Sin(radians(angle))*r,
		Y: base.Y + math.Cos(radians(angle))*r,
	}
	setPosition(&ret, self, o.Projection.Invert(pt), pt)
	self.cursor = angle
	ret.Synthetic = true

	up.cursor += step
	return ret
}

func upstreamOf(r Role, state fanouts) (*fanout, bool) {
	dpid, ok := r.Upstream()
	if !ok {
		return nil, false
	}
	up, ok := state[dpid]
	if !ok || !up.placed {
		return nil, false
	}
	return up, true
}

func setPosition(s *render.Switch, f *fanout, ll LngLat, pt render.Point) {
	s.X, s.Y = pt.X, pt.Y
	s.Lng, s.Lat = ll.Lng, ll.Lat
	f.pos = ll
	f.placed = true
}

// Links resolves link end points against placed switches. A link with an
// unknown end is kept but marked dangling and has no points.
func Links(links []api.Link, switches []render.Switch) []render.Link {
	pos := make(map[string]render.Point, len(switches))
	for _, s := range switches {
		pos[s.DPID] = render.Point{X: s.X, Y: s.Y}
	}

	ret := make([]render.Link, 0, len(links))
	for _, l := range links {
		rl := render.Link{
			Key:     l.Key(),
			Src:     l.SrcSwitch,
			Dst:     l.DstSwitch,
			Pending: l.Pending,
		}
		src, okSrc := pos[l.SrcSwitch]
		dst, okDst := pos[l.DstSwitch]
		if !okSrc || !okDst {
			rl.Dangling = true
			ret = append(ret, rl)
			continue
		}
		mid := render.Point{X: (src.X + dst.X) / 2, Y: (src.Y + dst.Y) / 2}
		rl.Points = []render.Point{src, mid, dst}
		ret = append(ret, rl)
	}
	return ret
}
