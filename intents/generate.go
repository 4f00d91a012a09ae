// Package intents generates synthetic intents and submits them to a
// controller in bulk.
package intents

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/luno/jettison/errors"

	"github.com/luno/topodash/api"
)

const (
	srcSwitch = "00:00:00:00:00:00:02:02"
	dstSwitch = "00:00:00:00:00:00:04:02"

	srcMacPrefix = "00:00:c0:"
	dstMacPrefix = "00:00:c1:"

	freezePrefix = "F"
)

type Options struct {
	// MaxIntents is the number of intents to generate, MaxSwitches is used
	// when it's zero.
	MaxIntents  int `validate:"gte=0"`
	MaxSwitches int `validate:"gte=1,lte=255"`

	IntentID int            `validate:"gte=0"`
	Category string         `validate:"oneof=high low"`
	Type     api.IntentType `validate:"oneof=shortest_intent_type constrained_shortest_intent_type"`
	Op       api.IntentOp   `validate:"oneof=add remove"`

	// Random sends one intent from a random switch to every other switch.
	Random bool
	// Freeze marks intents so the controller doesn't reroute them.
	Freeze bool

	BulkLimit int `validate:"gte=1"`
}

func DefaultOptions() Options {
	return Options{
		MaxSwitches: 4,
		IntentID:    1,
		Category:    "high",
		Type:        api.IntentShortest,
		Op:          api.IntentAdd,
		BulkLimit:   10000,
	}
}

var validate = validator.New()

func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(err, "invalid options")
	}
	return nil
}

func (o Options) count() int {
	if o.MaxIntents > 0 {
		return o.MaxIntents
	}
	return o.MaxSwitches
}

func (o Options) intentID(i int) string {
	id := strconv.Itoa(o.IntentID + i)
	if o.Freeze {
		return freezePrefix + id
	}
	return id
}

// MACFormat renders n as the last three octets of a mac address.
func MACFormat(n int) string {
	return fmt.Sprintf("%02x:%02x:%02x", n/65536, (n/256)%256, n%256)
}

// SwitchDPID is the dpid of the k-th switch in random mode.
func SwitchDPID(k int) string {
	return fmt.Sprintf("00:00:00:00:00:00:%02x:02", k)
}

func intent(o Options, idx int, src, dst string) api.Intent {
	return api.Intent{
		IntentID:   o.intentID(idx),
		IntentType: o.Type,
		IntentOp:   o.Op,
		SrcSwitch:  src,
		SrcPort:    1,
		SrcMac:     srcMacPrefix + MACFormat(idx),
		DstSwitch:  dst,
		DstPort:    1,
		DstMac:     dstMacPrefix + MACFormat(idx),
	}
}

// Generate returns the intents between the two fixed test switches, one per
// mac pair.
func Generate(o Options) []api.Intent {
	n := o.count()
	ret := make([]api.Intent, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, intent(o, i, srcSwitch, dstSwitch))
	}
	return ret
}

// GenerateRandom picks a source switch and returns an intent from it to
// every other switch.
func GenerateRandom(o Options, r *rand.Rand) []api.Intent {
	src := r.Intn(o.MaxSwitches) + 1
	ret := make([]api.Intent, 0, o.MaxSwitches-1)
	for k := 1; k <= o.MaxSwitches; k++ {
		if k == src {
			continue
		}
		ret = append(ret, intent(o, len(ret), SwitchDPID(src), SwitchDPID(k)))
	}
	return ret
}
