// Command intents posts, gets and purges intents on a controller in bulk.
package main

import (
	"context"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/log"
	"github.com/spf13/cobra"

	"github.com/luno/topodash"
	"github.com/luno/topodash/api"
	"github.com/luno/topodash/intents"
)

var (
	getIntents  bool
	getIntent   string
	purge       bool
	shortest    bool
	constrained bool
	server      string
	port        int
	timeout     time.Duration

	opts = intents.DefaultOptions()
)

var rootCmd = &cobra.Command{
	Use:   "intents",
	Short: "intents installs, inspects and purges intents on a controller",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		r := intents.NewRunner(newClient(), cmd.OutOrStdout(), rand.New(rand.NewSource(time.Now().UnixNano())))

		switch {
		case getIntents:
			return r.GetAll(ctx, opts.Category)
		case getIntent != "":
			return r.Get(ctx, opts.Category, getIntent)
		case purge:
			return r.Purge(ctx)
		}

		if shortest {
			opts.Type = api.IntentShortest
		}
		if constrained {
			opts.Type = api.IntentConstrained
		}
		return r.Post(ctx, opts)
	},
}

func newClient() *topodash.Client {
	return topodash.NewClient(
		topodash.WithBaseURL("http://"+net.JoinHostPort(server, strconv.Itoa(port))),
		topodash.WithRequestTimeout(timeout),
	)
}

func init() {
	rootCmd.SilenceUsage = true

	f := rootCmd.Flags()
	f.BoolVarP(&getIntents, "get_intents", "G", false, "get intents state")
	f.StringVarP(&getIntent, "get_intent", "g", "", "get intent state by `intent_id`")
	f.BoolVarP(&purge, "purge", "d", false, "purge all intents")

	f.IntVarP(&opts.MaxIntents, "max_intents", "t", 0, "max. number of intents")
	f.StringVarP(&opts.Category, "intent_category", "e", opts.Category, "intent category high|low")
	f.IntVarP(&opts.IntentID, "intent_id", "i", opts.IntentID, "global intent id")
	f.BoolVarP(&shortest, "shortest", "s", false, "create a shortest path intent")
	f.BoolVarP(&constrained, "constrained", "c", false, "create a constrained shortest path intent")
	f.BoolVarP(&opts.Random, "random_intent", "r", false, "create intents from a random switch to all others")
	f.IntVarP(&opts.MaxSwitches, "max_switches", "m", opts.MaxSwitches, "max. number of switches")
	f.StringVarP((*string)(&opts.Op), "intent_op", "o", string(opts.Op), "an operation to post an intent add|remove")
	f.IntVarP(&opts.BulkLimit, "bulk_limit", "b", opts.BulkLimit, "bulk request upto this limit")
	f.BoolVarP(&opts.Freeze, "freeze_intents", "f", false, "freeze, don't reroute intents")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&server, "server", "w", "127.0.0.1", "controller to talk to")
	pf.IntVarP(&port, "port", "p", 8080, "controller port")
	pf.DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	rootCmd.MarkFlagsMutuallyExclusive("get_intents", "get_intent", "purge")
	rootCmd.MarkFlagsMutuallyExclusive("shortest", "constrained")

	rootCmd.AddCommand(statusCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error(ctx, err)
		}
		os.Exit(1)
	}
}
