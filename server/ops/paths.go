package ops

import (
	"math"
	"sort"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/luno/topodash/api"
)

var ErrPathNotFound = errors.New("path not found", j.C("ERR_3c9e1f0a7d52b846"))

// PathFinder answers shortest hop queries over a set of directed links.
type PathFinder struct {
	g   *simple.WeightedDirectedGraph
	ids map[string]int64
	dps []string
}

func NewPathFinder(links []api.Link) *PathFinder {
	var dpids []string
	seen := make(map[string]bool)
	for _, l := range links {
		for _, d := range []string{l.SrcSwitch, l.DstSwitch} {
			if !seen[d] {
				seen[d] = true
				dpids = append(dpids, d)
			}
		}
	}
	sort.Slice(dpids, func(i, j int) bool {
		return api.CompareDPID(dpids[i], dpids[j]) < 0
	})

	pf := &PathFinder{
		g:   simple.NewWeightedDirectedGraph(0, math.Inf(1)),
		ids: make(map[string]int64, len(dpids)),
		dps: dpids,
	}
	for i, d := range dpids {
		pf.ids[d] = int64(i)
		pf.g.AddNode(simple.Node(i))
	}
	for _, l := range links {
		from, to := pf.ids[l.SrcSwitch], pf.ids[l.DstSwitch]
		if from == to {
			continue
		}
		pf.g.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(from),
			T: simple.Node(to),
			W: 1,
		})
	}
	return pf
}

// Shortest returns the switches on a shortest path from src to dst, both
// included.
func (pf *PathFinder) Shortest(src, dst string) ([]string, error) {
	from, ok := pf.ids[src]
	if !ok {
		return nil, errors.Wrap(ErrPathNotFound, "unknown source", j.KV("src", src))
	}
	to, ok := pf.ids[dst]
	if !ok {
		return nil, errors.Wrap(ErrPathNotFound, "unknown destination", j.KV("dst", dst))
	}
	if from == to {
		return []string{src}, nil
	}

	tree := path.DijkstraFrom(simple.Node(from), pf.g)
	nodes, _ := tree.To(to)
	if len(nodes) == 0 {
		return nil, errors.Wrap(ErrPathNotFound, "", j.MKV{"src": src, "dst": dst})
	}
	ret := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, pf.dps[n.ID()])
	}
	return ret, nil
}
