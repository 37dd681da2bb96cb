// internal/images/images.go
//
// Card image URLs and best-effort prefetching.
//
// Prefetching never affects game logic: a request that fails, times out, or
// is dropped because too many are in flight is only logged.
package images

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// DefaultWidth is the thumbnail width requested for cards.
const DefaultWidth = 300

// WikimediaURL resolves a Commons file name to a resized image URL.
func WikimediaURL(image string, width int) string {
	if image == "" {
		return ""
	}
	return "https://commons.wikimedia.org/w/index.php?title=Special:Redirect/file/" +
		url.PathEscape(image) + "&width=" + strconv.Itoa(width)
}

// Prefetcher warms an image by URL. Implementations must not block.
type Prefetcher interface {
	Prefetch(url string)
}

// Nop discards every request.
type Nop struct{}

func (Nop) Prefetch(string) {}

// HTTPPrefetcher issues GET requests in the background, bounded by a semaphore.
type HTTPPrefetcher struct {
	client  *http.Client
	sem     *semaphore.Weighted
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewHTTPPrefetcher allows at most concurrency requests in flight; extra requests are dropped.
func NewHTTPPrefetcher(client *http.Client, concurrency int64) *HTTPPrefetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &HTTPPrefetcher{client: client, sem: semaphore.NewWeighted(concurrency), timeout: 10 * time.Second}
}

func (p *HTTPPrefetcher) Prefetch(u string) {
	if u == "" {
		return
	}
	if !p.sem.TryAcquire(1) {
		log.Debug().Str("url", u).Msg("prefetch dropped")
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)

		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			log.Warn().Err(err).Str("url", u).Msg("prefetch request")
			return
		}
		res, err := p.client.Do(req)
		if err != nil {
			log.Warn().Err(err).Str("url", u).Msg("prefetch")
			return
		}
		defer res.Body.Close()
		_, _ = io.Copy(io.Discard, res.Body)
	}()
}

// Wait blocks until all in-flight prefetches finish.
func (p *HTTPPrefetcher) Wait() { p.wg.Wait() }
