package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies which catalog collection a media item belongs to.
type Kind string

const (
	KindArticle Kind = "article"
	KindVideo   Kind = "video"
	KindTVShow  Kind = "tvshow"
	KindPodcast Kind = "podcast"
)

// Kinds lists every collection served by the gateway.
func Kinds() []Kind {
	return []Kind{KindArticle, KindVideo, KindTVShow, KindPodcast}
}

// ParseKind maps a URL path segment to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "articles", "article":
		return KindArticle, true
	case "videos", "video":
		return KindVideo, true
	case "tv-shows", "tvshow", "tvshows":
		return KindTVShow, true
	case "podcasts", "podcast":
		return KindPodcast, true
	}
	return "", false
}

// MediaItem is the common shape shared by articles, videos, TV show
// episodes and podcast episodes. ID is the sole lookup key; no two
// items in one catalog share an ID.
type MediaItem struct {
	ID          string  `json:"id"`
	Kind        Kind    `json:"kind"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Duration    string  `json:"duration,omitempty"`    // "M:SS" or "H:MM:SS"
	PublishDate string  `json:"publishDate,omitempty"` // ISO-8601 or epoch seconds
	ViewCount   string  `json:"views,omitempty"`       // raw, may carry a K/M suffix
	Rating      float64 `json:"rating,omitempty"`      // 0-5
	Featured    bool    `json:"featured"`
	IsNew       bool    `json:"new"`
	MediaURL    string  `json:"mediaUrl,omitempty"` // external player URL

	FetchedAt time.Time `json:"-"`
}

// NewMediaItem builds a MediaItem with a fresh ID.
func NewMediaItem(kind Kind, title, description, category string) *MediaItem {
	return &MediaItem{
		ID:          uuid.New().String(),
		Kind:        kind,
		Title:       title,
		Description: description,
		Category:    category,
		FetchedAt:   time.Now(),
	}
}
