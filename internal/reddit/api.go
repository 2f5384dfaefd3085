package reddit

import (
	"context"
	"fmt"
	"html"
	"strconv"

	httputil "github.com/mkarjala/meme-courier/pkg/http"
)

// APIExtractor reads the subreddit's weekly top JSON listing
type APIExtractor struct {
	client   *httputil.Client
	baseURL  string
	skipNSFW bool
}

// NewAPIExtractor creates a JSON listing extractor
func NewAPIExtractor(client *httputil.Client, opts Options) *APIExtractor {
	return &APIExtractor{
		client:   client,
		baseURL:  "https://www.reddit.com",
		skipNSFW: opts.SkipNSFW,
	}
}

// Name implements the Extractor interface
func (e *APIExtractor) Name() string { return string(KindAPI) }

// Fetch implements the Extractor interface
func (e *APIExtractor) Fetch(ctx context.Context, subreddit string, limit int) ([]Meme, error) {
	listingURL := fmt.Sprintf("%s/r/%s/top.json?t=week&limit=50", e.baseURL, subreddit)

	resp, err := e.client.GetWithContext(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing for r/%s: %w", subreddit, err)
	}

	var listing Listing
	if err := httputil.DecodeJSONResponse(resp, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing for r/%s: %w", subreddit, err)
	}

	if len(listing.Data.Children) == 0 {
		return nil, ErrNoEntries
	}

	memes := make([]Meme, 0, limit)
	for _, post := range listing.Data.Children {
		if len(memes) >= limit {
			break
		}
		if meme, ok := e.extractPost(post); ok {
			memes = append(memes, meme)
		}
	}

	return memes, nil
}

// extractPost turns one listing child into a Meme. The post's url field
// is preferred; the preview source is a fallback for posts whose url
// points at a gallery or external page.
func (e *APIExtractor) extractPost(post Post) (Meme, bool) {
	if e.skipNSFW && post.Data.Over18 {
		return Meme{}, false
	}

	imageURL := ""
	if HasImageExtension(post.Data.URL) {
		imageURL = post.Data.URL
	} else if post.Data.Preview != nil && len(post.Data.Preview.Images) > 0 {
		// Preview URLs come back entity-encoded from the API
		source := html.UnescapeString(post.Data.Preview.Images[0].Source.URL)
		if HasImageExtension(source) {
			imageURL = source
		}
	}
	if imageURL == "" {
		return Meme{}, false
	}

	postURL := ""
	if post.Data.Permalink != "" {
		postURL = e.baseURL + post.Data.Permalink
	}

	return Meme{
		Title:    post.Data.Title,
		ImageURL: NormalizeImageURL(imageURL),
		PostURL:  postURL,
		Score:    strconv.Itoa(post.Data.Score),
	}, true
}
