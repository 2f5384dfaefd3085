package reddit

import (
	"context"
	"log/slog"

	"github.com/mkarjala/meme-courier/pkg/retry"
)

// Fetcher wraps an Extractor with bounded retry. Network failures,
// non-success statuses and empty listings all count as failed attempts;
// after the last attempt the subreddit simply contributes nothing.
type Fetcher struct {
	extractor Extractor
	policy    *retry.Policy
}

// NewFetcher creates a fetcher around the given extractor
func NewFetcher(extractor Extractor, policy *retry.Policy) *Fetcher {
	if policy == nil {
		policy = retry.DefaultPolicy()
	}
	return &Fetcher{
		extractor: extractor,
		policy:    policy,
	}
}

// Fetch returns at most limit admitted image posts from the subreddit's
// weekly top listing, in provider order. It never returns an error:
// retry exhaustion degrades to an empty result so the run can continue
// with the next subreddit.
func (f *Fetcher) Fetch(ctx context.Context, subreddit string, limit int) []Meme {
	slog.Info("Fetching memes", "subreddit", subreddit, "limit", limit, "extractor", f.extractor.Name())

	var memes []Meme
	err := f.policy.Do("fetch r/"+subreddit, func() error {
		fetched, err := f.extractor.Fetch(ctx, subreddit, limit)
		if err != nil {
			return err
		}
		memes = fetched
		return nil
	})
	if err != nil {
		slog.Warn("Giving up on subreddit", "subreddit", subreddit, "error", err)
		return nil
	}

	slog.Info("Fetched memes", "subreddit", subreddit, "count", len(memes))
	return memes
}
