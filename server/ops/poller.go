package ops

import (
	"context"
	"sync"
	"time"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	"github.com/luno/jettison/log"

	"github.com/luno/topodash/api/render"
	"github.com/luno/topodash/server/ops/layout"
)

var ErrNoSnapshot = errors.New("no snapshot yet", j.C("ERR_8b27d5e0c4a1f963"))

// Snapshot is the result of the last successful poll cycle.
type Snapshot struct {
	Model    Model
	Topology render.Topology
	Paths    *PathFinder
	Updated  time.Time
}

type Poller struct {
	fetcher *Fetcher
	sources Sources
	layout  layout.Options
	period  time.Duration

	now func() time.Time

	mu   sync.RWMutex
	snap *Snapshot
}

func NewPoller(f *Fetcher, sources Sources, opts layout.Options, period time.Duration) *Poller {
	return &Poller{
		fetcher: f,
		sources: sources,
		layout:  opts,
		period:  period,
		now:     time.Now,
	}
}

// PollForever refreshes the snapshot right away and then every period until
// ctx is done. A failed cycle leaves the previous snapshot in place.
func (p *Poller) PollForever(ctx context.Context) {
	ti := time.NewTicker(p.period)
	defer ti.Stop()

	for {
		err := p.Refresh(ctx)
		if errors.Is(err, context.Canceled) {
			return
		} else if err != nil {
			log.Error(ctx, errors.Wrap(err, "poll failed"))
		}

		select {
		case <-ti.C:
		case <-ctx.Done():
			return
		}
	}
}

// Refresh runs a single fetch, build and layout cycle.
func (p *Poller) Refresh(ctx context.Context) error {
	t0 := time.Now()
	pollCycles.Inc()
	defer func() {
		pollDuration.Observe(time.Since(t0).Seconds())
	}()

	raw, err := p.fetcher.Fetch(ctx, p.sources)
	if err != nil {
		pollFailures.Inc()
		return err
	}
	payloads, err := Decode(raw)
	if err != nil {
		pollFailures.Inc()
		return err
	}

	m := BuildModel(payloads)
	now := p.now()
	snap := &Snapshot{
		Model:    m,
		Topology: Render(m, p.layout, now),
		Paths:    NewPathFinder(m.Links),
		Updated:  now,
	}
	p.setSnapshot(snap)

	snapshotSwitches.WithLabelValues(string(render.ClassCore)).Set(float64(len(m.CoreSwitches)))
	snapshotSwitches.WithLabelValues(string(render.ClassAggregation)).Set(float64(len(m.AggregationSwitches)))
	snapshotSwitches.WithLabelValues(string(render.ClassEdge)).Set(float64(len(m.EdgeSwitches)))
	log.Info(ctx, "topology refreshed", j.MKV{
		"switches":   len(snap.Topology.Switches),
		"links":      len(m.Links),
		"flows":      len(m.Flows),
		"time_taken": time.Since(t0),
	})
	return nil
}

// Render lays the model out and styles it for the renderer.
func Render(m Model, o layout.Options, now time.Time) render.Topology {
	sw := layout.Compute(m.Switches(), m.Configuration, o)
	for i := range sw {
		sw[i].Style = switchStyle(sw[i], m.Controllers)
	}
	return render.Topology{
		Switches:    sw,
		Links:       layout.Links(m.Links, sw),
		Controllers: ControllerBars(m.Controllers, m.ActiveControllers),
		Updated:     now.UnixMilli(),
	}
}

func (p *Poller) Snapshot() (Snapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snap == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return *p.snap, nil
}

// Ready reports whether a snapshot has ever been produced.
func (p *Poller) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap != nil
}

func (p *Poller) setSnapshot(s *Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = s
}
