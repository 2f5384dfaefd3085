package preview

import (
	"fmt"
	"strings"

	"github.com/mkarjala/meme-courier/internal/reddit"
)

// FormatCompactListItem formats a single meme in compact list format.
// Example: "1. [1234↑] Post Title"
func FormatCompactListItem(index int, meme reddit.Meme) string {
	title := meme.Title

	const maxTitleLength = 70
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength-3] + "..."
	}

	return fmt.Sprintf("%2d. [%4s↑] %s", index+1, meme.Score, title)
}

// FormatDetailedItem formats a single meme with all fields
func FormatDetailedItem(meme reddit.Meme) string {
	var b strings.Builder

	b.WriteString("═══════════════════════════════════════════════════════════════════════\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", meme.Title))
	b.WriteString(fmt.Sprintf("Image: %s\n", meme.ImageURL))

	if meme.PostURL != "" {
		b.WriteString(fmt.Sprintf("Post: %s\n", meme.PostURL))
	}

	b.WriteString(fmt.Sprintf("Score: %s\n", meme.Score))
	b.WriteString("═══════════════════════════════════════════════════════════════════════\n")

	return b.String()
}
