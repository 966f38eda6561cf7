package models

import "strings"

const (
	PosterSize   = "w500"
	BackdropSize = "w1280"
)

// Images resolves catalog image paths against the CDN. An empty path falls
// back to the placeholder asset.
type Images struct {
	BaseURL     string
	Placeholder string
}

func (i Images) URL(size, path string) string {
	if strings.TrimSpace(path) == "" {
		return i.Placeholder
	}
	return strings.TrimRight(i.BaseURL, "/") + "/" + size + "/" + strings.TrimLeft(path, "/")
}

func (i Images) Poster(path string) string {
	return i.URL(PosterSize, path)
}

func (i Images) Backdrop(path string) string {
	return i.URL(BackdropSize, path)
}
