package domain

import (
	"time"

	"github.com/google/uuid"
)

// RadioStation is a stream listed on the radio page.
type RadioStation struct {
	ID          uuid.UUID `json:"id" yaml:"-"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	StreamURL   string    `json:"stream_url" yaml:"streamUrl"`
	Frequency   string    `json:"frequency" yaml:"frequency"`
	Category    string    `json:"category" yaml:"category"`
	Region      string    `json:"region" yaml:"region"`
	Quality     string    `json:"quality" yaml:"quality"`
	LogoURL     string    `json:"logo_url" yaml:"logoUrl"`
}

// Photo is an image in one of the community galleries.
type Photo struct {
	ID      uuid.UUID `json:"id"`
	Album   string    `json:"album"`
	URL     string    `json:"url"`
	Caption string    `json:"caption"`
	TakenAt time.Time `json:"taken_at"`
}

// GroupByAlbum groups photos by album, keeping first-seen album order.
func GroupByAlbum(photos []Photo) (albums []string, byAlbum map[string][]Photo) {
	byAlbum = make(map[string][]Photo)
	for _, p := range photos {
		if _, seen := byAlbum[p.Album]; !seen {
			albums = append(albums, p.Album)
		}
		byAlbum[p.Album] = append(byAlbum[p.Album], p)
	}
	return albums, byAlbum
}
