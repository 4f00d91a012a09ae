package ops

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/j"
	"golang.org/x/sync/errgroup"

	"github.com/luno/topodash"
)

// Fetch failures are classified with the client's errors.
var (
	ErrSourceTimeout = topodash.ErrRequestTimeout
	ErrSourceStatus  = topodash.ErrUnexpectedStatus
)

// NewHTTPClient returns a client that serves file urls from the fixtures
// directory, next to the usual http schemes.
func NewHTTPClient(fixturesDir string) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.RegisterProtocol("file", http.NewFileTransport(http.Dir(fixturesDir)))
	return &http.Client{Transport: tr}
}

type Getter interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Fetcher gets every source of a poll cycle in parallel. The per request
// timeout belongs to the Getter.
type Fetcher struct {
	g Getter
}

func NewFetcher(g Getter) *Fetcher {
	return &Fetcher{g: g}
}

// Raw holds the body of each source, nil for sources that aren't configured.
type Raw map[Source][]byte

// Fetch returns the bodies of all sources or the first error, never a
// partial result.
func (f *Fetcher) Fetch(ctx context.Context, sources Sources) (Raw, error) {
	eg, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	ret := make(Raw, len(sources))
	for _, key := range sources.Keys() {
		key := key
		url := sources[key]
		if url == "" {
			ret[key] = nil
			continue
		}
		eg.Go(func() error {
			t0 := time.Now()
			b, err := f.g.Fetch(ctx, url)
			sourceLatency.WithLabelValues(string(key)).Observe(time.Since(t0).Seconds())
			if err != nil {
				return errors.Wrap(err, "", j.KV("source", key))
			}
			mu.Lock()
			defer mu.Unlock()
			ret[key] = b
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}
