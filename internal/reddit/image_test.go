package reddit

import "testing"

func TestHasImageExtension(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "jpg", url: "https://i.redd.it/abc.jpg", want: true},
		{name: "jpeg", url: "https://i.redd.it/abc.jpeg", want: true},
		{name: "png", url: "https://i.redd.it/abc.png", want: true},
		{name: "gif", url: "https://i.redd.it/abc.gif", want: true},
		{name: "gifv counts pre-normalization", url: "https://i.imgur.com/abc.gifv", want: true},
		{name: "uppercase extension", url: "https://i.redd.it/abc.PNG", want: true},
		{name: "query string ignored", url: "https://i.redd.it/abc.jpg?width=640&s=xyz", want: true},
		{name: "fragment ignored", url: "https://i.redd.it/abc.gif#frame", want: true},
		{name: "html page", url: "https://example.com/article", want: false},
		{name: "extension in query only", url: "https://example.com/view?img=abc.jpg", want: false},
		{name: "mp4 is not an image", url: "https://v.redd.it/abc.mp4", want: false},
		{name: "empty", url: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasImageExtension(tt.url); got != tt.want {
				t.Errorf("HasImageExtension(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "gifv becomes gif",
			url:  "https://i.imgur.com/abc.gifv",
			want: "https://i.imgur.com/abc.gif",
		},
		{
			name: "gifv with query keeps query",
			url:  "https://i.imgur.com/abc.gifv?source=feed",
			want: "https://i.imgur.com/abc.gif?source=feed",
		},
		{
			name: "jpg unchanged",
			url:  "https://i.redd.it/abc.jpg",
			want: "https://i.redd.it/abc.jpg",
		},
		{
			name: "gif unchanged",
			url:  "https://i.redd.it/abc.gif",
			want: "https://i.redd.it/abc.gif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeImageURL(tt.url); got != tt.want {
				t.Errorf("NormalizeImageURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsPreviewURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "preview host", url: "https://preview.redd.it/abc.png?width=640", want: true},
		{name: "external preview host", url: "https://external-preview.redd.it/abc.jpg", want: true},
		{name: "full resolution host", url: "https://i.redd.it/abc.png", want: false},
		{name: "imgur", url: "https://i.imgur.com/abc.gif", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPreviewURL(tt.url); got != tt.want {
				t.Errorf("isPreviewURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
