// Package reddit fetches weekly top image posts from subreddits through
// one of three interchangeable upstream representations: the RSS feed,
// the old-style HTML listing, or the JSON listing API.
package reddit

// Meme is one admitted image post. Instances are immutable once
// produced; ImageURL is always non-empty and carries a recognized image
// extension.
type Meme struct {
	Title    string
	ImageURL string
	PostURL  string
	Score    string // opaque display string, "?" when unknown
}

// Listing mirrors the wire structure of a Reddit JSON listing response.
type Listing struct {
	Data struct {
		Children []Post `json:"children"`
		After    string `json:"after"`
	} `json:"data"`
}

// Post represents a single post inside a JSON listing
type Post struct {
	Data struct {
		Title     string       `json:"title"`
		URL       string       `json:"url"`
		Permalink string       `json:"permalink"`
		Score     int          `json:"score"`
		Over18    bool         `json:"over_18"`
		Thumbnail string       `json:"thumbnail"`
		Preview   *PreviewData `json:"preview,omitempty"`
	} `json:"data"`
}

// PreviewData represents Reddit's preview image data structure
type PreviewData struct {
	Images []PreviewImage `json:"images"`
}

// PreviewImage represents a single preview image with different resolutions
type PreviewImage struct {
	Source ImageSource `json:"source"`
}

// ImageSource represents an image URL with dimensions
type ImageSource struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
