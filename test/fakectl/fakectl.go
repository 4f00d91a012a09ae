// Package fakectl serves a synthetic controller REST API for demos and tests.
package fakectl

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	"github.com/luno/jettison/log"

	"github.com/luno/topodash/api"
)

type Controller struct {
	mu          sync.Mutex
	topo        topology
	controllers []string
	active      map[string]bool
	intents     map[string]api.Intent
	failing     map[string]time.Duration
}

func New(o Options) *Controller {
	c := &Controller{
		topo:        makeTopology(o),
		controllers: o.Controllers,
		active:      make(map[string]bool),
		intents:     make(map[string]api.Intent),
		failing:     make(map[string]time.Duration),
	}
	for _, name := range o.Controllers {
		c.active[name] = true
	}
	return c
}

func (c *Controller) Switches() []api.Switch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.Switch(nil), c.topo.switches...)
}

func (c *Controller) Configuration() api.Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topo.config
}

func (c *Controller) SetSwitchState(dpid string, s api.SwitchState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.topo.switches {
		if c.topo.switches[i].DPID == dpid {
			c.topo.switches[i].State = s
		}
	}
}

func (c *Controller) SetControllerActive(name string, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[name] = active
}

// Stall makes every request to path hang for d before it's answered, a zero
// duration clears it.
func (c *Controller) Stall(path string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d == 0 {
		delete(c.failing, path)
		return
	}
	c.failing[path] = d
}

func (c *Controller) stallFor(path string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failing[path]
}

func (c *Controller) Intents() []api.Intent {
	c.mu.Lock()
	defer c.mu.Unlock()
	ret := make([]api.Intent, 0, len(c.intents))
	for _, i := range c.intents {
		ret = append(ret, i)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].IntentID < ret[j].IntentID
	})
	return ret
}

func (c *Controller) activeControllers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ret []string
	for _, name := range c.controllers {
		if c.active[name] {
			ret = append(ret, name)
		}
	}
	return ret
}

func (c *Controller) applyIntents(intents []api.Intent) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(intents))
	for _, i := range intents {
		switch i.IntentOp {
		case api.IntentRemove:
			delete(c.intents, i.IntentID)
		default:
			c.intents[i.IntentID] = i
		}
		ids = append(ids, i.IntentID)
	}
	return ids
}

func (c *Controller) purgeIntents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.intents)
	c.intents = make(map[string]api.Intent)
	return n
}

// Fixtures are the file names used for mock mode, keyed by source.
var Fixtures = map[string]string{
	"links":             "wm_core_topology_links_json.json",
	"switches":          "wm_core_topology_switches_all_json.json",
	"flows":             "wm_flow_getall_json.json",
	"activeControllers": "wm_registry_controllers_json.json",
	"controllers":       "controllers.json",
	"mapping":           "wm_registry_switches_json.json",
	"configuration":     "configuration.json",
}

// WriteFixtures dumps the current state as mock mode fixture files in dir.
func (c *Controller) WriteFixtures(dir string) error {
	docs := map[string]any{
		"links":             c.links(),
		"switches":          c.Switches(),
		"flows":             c.flows(),
		"activeControllers": c.activeControllers(),
		"controllers":       c.controllers,
		"mapping":           c.registry(),
		"configuration":     c.Configuration(),
	}
	for key, doc := range docs {
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return errors.Wrap(err, "", j.KV("source", key))
		}
		err = os.WriteFile(filepath.Join(dir, Fixtures[key]), b, 0o644)
		if err != nil {
			return errors.Wrap(err, "write fixture", j.KV("source", key))
		}
	}
	return nil
}

func (c *Controller) links() []api.Link {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.Link(nil), c.topo.links...)
}

func (c *Controller) flows() []json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]json.RawMessage(nil), c.topo.flows...)
}

func (c *Controller) registry() api.Registry {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := make(api.Registry, len(c.topo.registry))
	for k, v := range c.topo.registry {
		r[k] = v
	}
	return r
}

type event int

const (
	eventNone event = iota
	eventSwitchDown
	eventSwitchUp
	eventControllerDown
	eventControllerUp
)

var events = map[event]int{
	eventNone:           90,
	eventSwitchDown:     4,
	eventSwitchUp:       4,
	eventControllerDown: 1,
	eventControllerUp:   1,
}

// Simulate flaps switches and controllers at random until ctx is done.
func (c *Controller) Simulate(ctx context.Context, period time.Duration, seed int64) error {
	ti := time.NewTicker(period)
	defer ti.Stop()

	r := rand.New(rand.NewSource(seed))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ti.C:
			c.step(ctx, r)
		}
	}
}

func (c *Controller) step(ctx context.Context, r *rand.Rand) {
	switches := c.Switches()
	if len(switches) == 0 {
		return
	}
	switch ChooseWeighted(r, events) {
	case eventSwitchDown:
		s := switches[r.Intn(len(switches))]
		c.SetSwitchState(s.DPID, api.StateInactive)
		log.Info(ctx, "switch down", j.KV("dpid", s.DPID))
	case eventSwitchUp:
		s := switches[r.Intn(len(switches))]
		c.SetSwitchState(s.DPID, api.StateActive)
	case eventControllerDown:
		if len(c.controllers) == 0 {
			return
		}
		name := c.controllers[r.Intn(len(c.controllers))]
		c.SetControllerActive(name, false)
		log.Info(ctx, "controller down", j.KV("controller", name))
	case eventControllerUp:
		if len(c.controllers) == 0 {
			return
		}
		c.SetControllerActive(c.controllers[r.Intn(len(c.controllers))], true)
	}
}

// ChooseWeighted picks a key with probability proportional to its weight.
func ChooseWeighted[K comparable](r *rand.Rand, weights map[K]int) K {
	type option struct {
		key    K
		weight int
	}
	var total int
	opts := make([]option, 0, len(weights))
	for k, w := range weights {
		opts = append(opts, option{key: k, weight: w})
		total += w
	}
	var zero K
	if total <= 0 {
		return zero
	}
	// Map iteration order is random, sort for a seed to mean something.
	sort.Slice(opts, func(i, j int) bool {
		if opts[i].weight != opts[j].weight {
			return opts[i].weight > opts[j].weight
		}
		return lessKey(opts[i].key, opts[j].key)
	})
	n := r.Intn(total)
	for _, o := range opts {
		if n < o.weight {
			return o.key
		}
		n -= o.weight
	}
	return zero
}

func lessKey[K comparable](a, b K) bool {
	return fmt.Sprint(a) < fmt.Sprint(b)
}
