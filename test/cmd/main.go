// Command fakectl serves a synthetic controller for running the dashboard
// and the intents tool without a real network.
package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	"github.com/luno/jettison/log"

	"github.com/luno/topodash/test/fakectl"
)

var (
	listenAddr  = flag.String("listen", ":8080", "address to serve the controller api on")
	fixturesDir = flag.String("fixtures", "", "write mock mode fixtures to this `dir` and exit")
	cores       = flag.Int("cores", 4, "number of core switches")
	aggs        = flag.Int("aggregations", 3, "aggregation switches per core")
	edges       = flag.Int("edges", 5, "edge switches per aggregation")
	flows       = flag.Int("flows", 20, "number of flows")
	controllers = flag.String("controllers", "onos1,onos2,onos3,onos4", "comma separated controller names")
	period      = flag.Duration("simulate", time.Second, "period between simulated events, 0 disables them")
	seed        = flag.Int64("seed", 0, "simulation seed, 0 picks one")
)

func main() {
	flag.Parse()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ctrl := fakectl.New(fakectl.Options{
		Cores:               *cores,
		AggregationsPerCore: *aggs,
		EdgesPerAggregation: *edges,
		Flows:               *flows,
		Controllers:         strings.Split(*controllers, ","),
	})

	if *fixturesDir != "" {
		if err := ctrl.WriteFixtures(*fixturesDir); err != nil {
			log.Error(ctx, err)
			os.Exit(1)
		}
		log.Info(ctx, "fixtures written", j.KV("dir", *fixturesDir))
		return
	}

	var wg sync.WaitGroup
	if *period > 0 {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := ctrl.Simulate(ctx, *period, s)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error(ctx, err)
			}
		}()
	}

	srv := &http.Server{
		BaseContext: func(net.Listener) context.Context { return ctx },
		Handler:     ctrl.Router(),
		Addr:        *listenAddr,
	}
	go func() {
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Info(ctx, "fake controller listening", j.KV("addr", *listenAddr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, err)
	}
	wg.Wait()
}
