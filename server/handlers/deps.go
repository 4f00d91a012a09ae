package handlers

import "github.com/luno/topodash/server/ops"

type Deps interface {
	Topology() Topology
}

// Topology is the latest polled state, see ops.Poller.
type Topology interface {
	Snapshot() (ops.Snapshot, error)
	Ready() bool
}
