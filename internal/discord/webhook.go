// Package discord delivers finished meme batches to a Discord webhook
// as rich-embed messages.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkarjala/meme-courier/internal/reddit"
	httputil "github.com/mkarjala/meme-courier/pkg/http"
	"github.com/mkarjala/meme-courier/pkg/retry"
)

// WebhookPrefix is the only accepted webhook URL shape
const WebhookPrefix = "https://discord.com/api/webhooks/"

// Discord caps embed titles at 256 characters; 250 leaves room for the
// numbering prefix.
const maxTitleLength = 250

// Message is the webhook payload
type Message struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed is one visual card inside a message
type Embed struct {
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	Image  Image  `json:"image"`
	Footer Footer `json:"footer"`
	Color  int    `json:"color"`
}

// Image references the embedded image by URL
type Image struct {
	URL string `json:"url"`
}

// Footer captions an embed
type Footer struct {
	Text string `json:"text"`
}

// ValidateWebhookURL checks that the URL looks like a Discord webhook
// endpoint. Called before any network activity.
func ValidateWebhookURL(webhookURL string) error {
	if webhookURL == "" {
		return fmt.Errorf("webhook URL is not set")
	}
	if !strings.HasPrefix(webhookURL, WebhookPrefix) {
		return fmt.Errorf("webhook URL must start with %s", WebhookPrefix)
	}
	return nil
}

// Notifier posts batches to a single preconfigured webhook
type Notifier struct {
	client     *httputil.Client
	policy     *retry.Policy
	webhookURL string
}

// NewNotifier creates a webhook notifier
func NewNotifier(webhookURL string, client *httputil.Client, policy *retry.Policy) *Notifier {
	if policy == nil {
		policy = retry.DefaultPolicy()
	}
	return &Notifier{
		client:     client,
		policy:     policy,
		webhookURL: webhookURL,
	}
}

// Send delivers one non-empty batch as a single message with one embed
// per meme. Delivery failures are retried with a fixed delay; after
// exhaustion the error is returned so the caller can mark the category
// failed without aborting the run.
func (n *Notifier) Send(ctx context.Context, header string, color int, memes []reddit.Meme) error {
	if len(memes) == 0 {
		return fmt.Errorf("refusing to send an empty batch")
	}

	message := BuildMessage(header, color, memes)
	slog.Info("Sending batch to Discord", "count", len(memes), "header", header)

	return n.post(ctx, message)
}

// SendNotice delivers a plain text message, used for the optional
// "nothing found" notice.
func (n *Notifier) SendNotice(ctx context.Context, content string) error {
	return n.post(ctx, Message{Content: content})
}

func (n *Notifier) post(ctx context.Context, message Message) error {
	return n.policy.Do("discord webhook", func() error {
		resp, err := n.client.PostJSON(ctx, n.webhookURL, message)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		return httputil.EnsureStatusSuccess(resp)
	})
}

// BuildMessage renders a batch into the webhook payload
func BuildMessage(header string, color int, memes []reddit.Meme) Message {
	embeds := make([]Embed, 0, len(memes))
	for i, meme := range memes {
		embeds = append(embeds, Embed{
			Title:  fmt.Sprintf("%d. %s", i+1, truncateTitle(meme.Title)),
			URL:    meme.PostURL,
			Image:  Image{URL: meme.ImageURL},
			Footer: Footer{Text: fmt.Sprintf("👍 %s upvotes", meme.Score)},
			Color:  color,
		})
	}

	return Message{
		Content: header,
		Embeds:  embeds,
	}
}

// truncateTitle caps a title at the embed display length
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength])
}
