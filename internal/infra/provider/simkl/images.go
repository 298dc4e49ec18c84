package simkl

import "media-catalog-service/internal/domain"

// ImageURLs builds full artwork URLs from the bare asset paths this
// provider returns. Every builder resolves to a placeholder when the path
// is empty, except episode thumbnails, which are optional downstream.
type ImageURLs struct {
	base string
}

// NewImageURLs creates a URL builder rooted at the provider's image host.
func NewImageURLs(base string) *ImageURLs {
	return &ImageURLs{base: base}
}

// Poster returns the medium poster URL or the poster placeholder.
func (u *ImageURLs) Poster(path string) string {
	if path == "" {
		return domain.PlaceholderPoster
	}
	return u.base + "/posters/" + path + "_m.webp"
}

// Fanart returns the medium fanart URL or the fanart placeholder.
func (u *ImageURLs) Fanart(path string) string {
	if path == "" {
		return domain.PlaceholderFanart
	}
	return u.base + "/fanart/" + path + "_medium.webp"
}

// EpisodeThumb returns the episode thumbnail URL, empty when absent.
func (u *ImageURLs) EpisodeThumb(path string) string {
	if path == "" {
		return ""
	}
	return u.base + "/episodes/" + path + "_c.webp"
}

// Headshot returns the cast headshot URL or the actor placeholder.
func (u *ImageURLs) Headshot(path string) string {
	if path == "" {
		return domain.PlaceholderActor
	}
	return u.base + "/" + path
}
