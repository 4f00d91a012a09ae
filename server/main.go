package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	jlog "github.com/luno/jettison/log"

	"github.com/luno/topodash"
	"github.com/luno/topodash/server/handlers"
	"github.com/luno/topodash/server/ops"
	"github.com/luno/topodash/server/ops/config"
	"github.com/luno/topodash/server/ops/layout"
)

var (
	listenAddr      = flag.String("listen", ":80", "address for the dashboard server")
	debugListenAddr = flag.String("debug_listen", ":8081", "address for the debug server")
)

type state struct {
	Poller *ops.Poller
}

func (s state) Topology() handlers.Topology {
	return s.Poller
}

func main() {
	InitLogging()
	flag.Parse()
	config.MustLoadConfig()
	conf := config.GetConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cli := topodash.NewClient(
		topodash.WithBaseURL(conf.ControllerURL),
		topodash.WithHTTPClient(ops.NewHTTPClient(conf.FixturesDir)),
		topodash.WithRequestTimeout(conf.FetchTimeout),
		topodash.WithMetrics(clientMetrics()),
	)
	sources := ops.SourcesFor(conf)
	jlog.Info(ctx, "polling controller", j.MKV{
		"controller": conf.ControllerURL,
		"mode":       conf.Mode,
		"period":     conf.PollPeriod,
	})

	s := state{
		Poller: ops.NewPoller(ops.NewFetcher(cli), sources, layout.NewOptions(conf.Layout), conf.PollPeriod),
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Poller.PollForever(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runWebServer(ctx, handlers.CreateRouter(s), *listenAddr)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runWebServer(ctx, handlers.CreateDebugRouter(s), *debugListenAddr)
	}()

	wg.Wait()
}

func runWebServer(ctx context.Context, router *httprouter.Router, addr string) {
	srv := &http.Server{
		BaseContext: func(listener net.Listener) context.Context { return ctx },
		Handler:     router,
		Addr:        addr,
	}
	go shutdownOnCancel(ctx, srv)
	jlog.Info(ctx, "server listening", j.KV("addr", addr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
	jlog.Info(ctx, "server terminated", j.KV("addr", addr))
}

func shutdownOnCancel(ctx context.Context, server *http.Server) {
	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	jlog.Info(ctx, "shutting down http server")
	_ = server.Shutdown(ctx)
}
