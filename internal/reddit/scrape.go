package reddit

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	httputil "github.com/mkarjala/meme-courier/pkg/http"
)

// Reddit serves the plain HTML listing only to something that looks
// like a browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ScrapeExtractor reads the old-style HTML listing page and walks the
// post rows with goquery.
type ScrapeExtractor struct {
	client   *httputil.Client
	baseURL  string
	skipNSFW bool
}

// NewScrapeExtractor creates a markup-scraping extractor
func NewScrapeExtractor(client *httputil.Client, opts Options) *ScrapeExtractor {
	client.SetUserAgent(browserUserAgent)
	return &ScrapeExtractor{
		client:   client,
		baseURL:  "https://old.reddit.com",
		skipNSFW: opts.SkipNSFW,
	}
}

// Name implements the Extractor interface
func (e *ScrapeExtractor) Name() string { return string(KindScrape) }

// Fetch implements the Extractor interface
func (e *ScrapeExtractor) Fetch(ctx context.Context, subreddit string, limit int) ([]Meme, error) {
	pageURL := fmt.Sprintf("%s/r/%s/top/?t=week", e.baseURL, subreddit)

	resp, err := e.client.GetWithContext(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page for r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if err := httputil.EnsureStatusOK(resp); err != nil {
		return nil, fmt.Errorf("listing request for r/%s: %w", subreddit, err)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page for r/%s: %w", subreddit, err)
	}

	things := doc.Find("div.thing")
	if things.Length() == 0 {
		return nil, ErrNoEntries
	}

	memes := make([]Meme, 0, limit)
	things.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(memes) >= limit {
			return false
		}
		if meme, ok := e.extractThing(s); ok {
			memes = append(memes, meme)
		}
		return true
	})

	return memes, nil
}

// extractThing turns one listing row into a Meme. Promoted rows and,
// when suppression is on, NSFW rows are dropped along with anything
// lacking a direct image URL.
func (e *ScrapeExtractor) extractThing(s *goquery.Selection) (Meme, bool) {
	if s.HasClass("promoted") {
		return Meme{}, false
	}
	if e.skipNSFW && (s.HasClass("over18") || s.AttrOr("data-nsfw", "") == "true") {
		return Meme{}, false
	}

	imageURL := s.AttrOr("data-url", "")
	if imageURL == "" {
		imageURL = s.Find("a.title").AttrOr("href", "")
	}
	if imageURL == "" || !HasImageExtension(imageURL) || isPreviewURL(imageURL) {
		return Meme{}, false
	}

	title := strings.TrimSpace(s.Find("a.title").Text())
	if title == "" {
		return Meme{}, false
	}

	postURL := ""
	if permalink := s.AttrOr("data-permalink", ""); permalink != "" {
		postURL = e.baseURL + permalink
	}

	return Meme{
		Title:    title,
		ImageURL: NormalizeImageURL(imageURL),
		PostURL:  postURL,
		Score:    e.extractScore(s),
	}, true
}

// extractScore reads the row's score attribute or the unvoted score
// span, falling back to "?" when the listing hides it.
func (e *ScrapeExtractor) extractScore(s *goquery.Selection) string {
	if score := s.AttrOr("data-score", ""); score != "" {
		return score
	}

	text := strings.TrimSpace(s.Find("div.score.unvoted").First().Text())
	if text == "" || text == "•" {
		return "?"
	}
	return text
}
