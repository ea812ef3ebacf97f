package searches

import (
	"context"
	"fmt"
)

// Size is a Flickr image size suffix.
type Size string

const (
	SizeThumbnail Size = "m" // 240 on the longest side
	SizeLarge     Size = "b" // 1024 on the longest side
)

// Photo identifies one image returned by a search.
type Photo struct {
	ID     string `json:"id"     yaml:"id"`
	Owner  string `json:"owner"  yaml:"owner"`
	Secret string `json:"secret" yaml:"secret"`
	Server string `json:"server" yaml:"server"`
	Farm   int    `json:"farm"   yaml:"farm"`
	Title  string `json:"title"  yaml:"title"`
}

// URL returns the static image URL for the photo at the given size.
func (p Photo) URL(size Size) string {
	return fmt.Sprintf("https://farm%d.staticflickr.com/%s/%s_%s_%s.jpg",
		p.Farm, p.Server, p.ID, p.Secret, size)
}

// Searcher finds photos for a search term.
type Searcher interface {
	Search(ctx context.Context, term string) ([]Photo, error)
}

// SearcherFunc adapts a function to the Searcher interface.
type SearcherFunc func(ctx context.Context, term string) ([]Photo, error)

func (f SearcherFunc) Search(ctx context.Context, term string) ([]Photo, error) {
	return f(ctx, term)
}
