package reddit

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	httputil "github.com/mkarjala/meme-courier/pkg/http"
)

var (
	imgSrcPattern    = regexp.MustCompile(`(?i)<img[^>]+src="([^"]+)"`)
	hrefImagePattern = regexp.MustCompile(`(?i)href="([^"]+\.(?:jpg|jpeg|png|gif|gifv)[^"]*)"`)
	pointsPattern    = regexp.MustCompile(`(\d+)\s+points?`)
)

// FeedExtractor reads the subreddit's weekly top RSS feed and digs
// image URLs out of the entry markup.
type FeedExtractor struct {
	parser  *gofeed.Parser
	client  *httputil.Client
	baseURL string
}

// NewFeedExtractor creates a feed-based extractor
func NewFeedExtractor(client *httputil.Client) *FeedExtractor {
	return &FeedExtractor{
		parser:  gofeed.NewParser(),
		client:  client,
		baseURL: "https://www.reddit.com",
	}
}

// Name implements the Extractor interface
func (e *FeedExtractor) Name() string { return string(KindFeed) }

// Fetch implements the Extractor interface
func (e *FeedExtractor) Fetch(ctx context.Context, subreddit string, limit int) ([]Meme, error) {
	feedURL := fmt.Sprintf("%s/r/%s/top/.rss?t=week&limit=50", e.baseURL, subreddit)

	resp, err := e.client.GetWithContext(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed for r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if err := httputil.EnsureStatusOK(resp); err != nil {
		return nil, fmt.Errorf("feed request for r/%s: %w", subreddit, err)
	}

	feed, err := e.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed for r/%s: %w", subreddit, err)
	}

	if len(feed.Items) == 0 {
		return nil, ErrNoEntries
	}

	memes := make([]Meme, 0, limit)
	for _, item := range feed.Items {
		if len(memes) >= limit {
			break
		}
		if meme, ok := extractFeedItem(item); ok {
			memes = append(memes, meme)
		}
	}

	return memes, nil
}

// extractFeedItem turns one feed entry into a Meme. Entries without a
// resolvable full-size image URL are dropped, not errors.
func extractFeedItem(item *gofeed.Item) (Meme, bool) {
	content := item.Content
	if content == "" {
		content = item.Description
	}

	imageURL := feedImageURL(item, content)
	if imageURL == "" {
		return Meme{}, false
	}

	return Meme{
		Title:    item.Title,
		ImageURL: NormalizeImageURL(imageURL),
		PostURL:  item.Link,
		Score:    feedScore(content),
	}, true
}

// feedImageURL resolves the best image URL for a feed entry.
// Priority: media:thumbnail > img tag in content > direct image href >
// entry id with image extension.
func feedImageURL(item *gofeed.Item, content string) string {
	if u := mediaThumbnailURL(item); u != "" && HasImageExtension(u) {
		return u
	}

	if match := imgSrcPattern.FindStringSubmatch(content); match != nil {
		candidate := strings.ReplaceAll(match[1], "&amp;", "&")
		if HasImageExtension(candidate) && !isPreviewURL(candidate) {
			return candidate
		}
	}

	if match := hrefImagePattern.FindStringSubmatch(content); match != nil {
		return strings.ReplaceAll(match[1], "&amp;", "&")
	}

	if item.GUID != "" && HasImageExtension(item.GUID) {
		return item.GUID
	}

	return ""
}

// mediaThumbnailURL pulls the media:thumbnail extension URL if present
func mediaThumbnailURL(item *gofeed.Item) string {
	mediaExt, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, thumb := range mediaExt["thumbnail"] {
		if u := thumb.Attrs["url"]; u != "" {
			return u
		}
	}
	return ""
}

// feedScore extracts the "N points" marker from entry markup, "?" when absent
func feedScore(content string) string {
	if match := pointsPattern.FindStringSubmatch(content); match != nil {
		return match[1]
	}
	return "?"
}
