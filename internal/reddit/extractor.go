package reddit

import (
	"context"
	"errors"
	"fmt"

	httputil "github.com/mkarjala/meme-courier/pkg/http"
)

// ErrNoEntries signals that the upstream responded but carried no posts.
// The fetcher treats it as a transient failure worth retrying.
var ErrNoEntries = errors.New("no entries in upstream response")

// Extractor produces admitted image posts for one subreddit, in the
// order the provider supplies them. Individual malformed entries are
// skipped, never surfaced as errors.
type Extractor interface {
	Name() string
	Fetch(ctx context.Context, subreddit string, limit int) ([]Meme, error)
}

// Kind selects the upstream representation an Extractor reads
type Kind string

// Supported extractor kinds
const (
	KindFeed   Kind = "feed"
	KindScrape Kind = "scrape"
	KindAPI    Kind = "api"
)

// Options holds extraction behavior shared across extractor kinds
type Options struct {
	SkipNSFW bool
}

// NewExtractor creates the extractor for the given kind. The provider
// choice is fixed at construction time; retry and aggregation logic are
// shared regardless of kind.
func NewExtractor(kind Kind, client *httputil.Client, opts Options) (Extractor, error) {
	if client == nil {
		client = httputil.NewClient(nil)
	}
	switch kind {
	case KindFeed:
		return NewFeedExtractor(client), nil
	case KindScrape:
		return NewScrapeExtractor(client, opts), nil
	case KindAPI:
		return NewAPIExtractor(client, opts), nil
	default:
		return nil, fmt.Errorf("unknown extractor kind: %q", kind)
	}
}
