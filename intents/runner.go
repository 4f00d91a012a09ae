package intents

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	"github.com/luno/jettison/log"

	"github.com/luno/topodash/api"
)

// Client is the part of the controller API the runner uses.
type Client interface {
	AddIntents(ctx context.Context, intents []api.Intent) ([]byte, error)
	GetIntents(ctx context.Context, category string) ([]byte, error)
	GetIntent(ctx context.Context, category, id string) ([]byte, error)
	PurgeIntents(ctx context.Context) ([]byte, error)
}

// Runner performs intent operations one request at a time and writes each
// response body to out.
type Runner struct {
	cli Client
	out io.Writer
	rnd *rand.Rand
}

func NewRunner(cli Client, out io.Writer, rnd *rand.Rand) *Runner {
	return &Runner{cli: cli, out: out, rnd: rnd}
}

func (r *Runner) Post(ctx context.Context, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	var intents []api.Intent
	if o.Random {
		intents = GenerateRandom(o, r.rnd)
	} else {
		intents = Generate(o)
	}

	batches := Batches(intents, o.BulkLimit)
	for i, b := range batches {
		log.Info(ctx, "posting intents", j.MKV{
			"batch":   i + 1,
			"batches": len(batches),
			"size":    len(b),
			"op":      o.Op,
		})
		resp, err := r.cli.AddIntents(ctx, b)
		if err != nil {
			return errors.Wrap(err, "post intents", j.KV("batch", i+1))
		}
		if err := r.print(resp); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) GetAll(ctx context.Context, category string) error {
	resp, err := r.cli.GetIntents(ctx, category)
	if err != nil {
		return err
	}
	return r.print(resp)
}

func (r *Runner) Get(ctx context.Context, category, id string) error {
	resp, err := r.cli.GetIntent(ctx, category, id)
	if err != nil {
		return err
	}
	return r.print(resp)
}

func (r *Runner) Purge(ctx context.Context) error {
	resp, err := r.cli.PurgeIntents(ctx)
	if err != nil {
		return err
	}
	return r.print(resp)
}

func (r *Runner) print(resp []byte) error {
	if _, err := fmt.Fprintln(r.out, string(resp)); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
