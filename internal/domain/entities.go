package domain

import (
	"fmt"
	"time"
)

// FightingBook is a historical fencing manual
type FightingBook struct {
	ID              int       `json:"id"`
	SwordMasterID   int       `json:"sword_master_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublicationYear *int      `json:"publication_year,omitempty"` // nil or 0 = unknown
	CoverImageURL   *string   `json:"cover_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	SwordMasterName string    `json:"sword_master_name"` // Denormalized author name
}

// Year returns the publication year, or 0 if unknown
func (b FightingBook) Year() int {
	if b.PublicationYear == nil {
		return 0
	}
	return *b.PublicationYear
}

// YearLabel returns the publication year for display
func (b FightingBook) YearLabel() string {
	if y := b.Year(); y > 0 {
		return fmt.Sprintf("%d", y)
	}
	return "Unknown"
}

// Chapter is an ordered section of a fighting book
type Chapter struct {
	ID             int       `json:"id"`
	FightingBookID int       `json:"fighting_book_id"`
	ChapterNumber  int       `json:"chapter_number"` // 1-based, unique within a book
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Technique is a single technique taught in a chapter
type Technique struct {
	ID             int       `json:"id"`
	ChapterID      int       `json:"chapter_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Instructions   string    `json:"instructions"`
	VideoURL       *string   `json:"video_url"`
	ThumbnailURL   *string   `json:"thumbnail_url"`
	OrderInChapter int       `json:"order_in_chapter"` // 1-based, unique within a chapter
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasVideo returns true if the technique links to a playable video
func (t Technique) HasVideo() bool {
	return t.VideoURL != nil && *t.VideoURL != ""
}

// Video returns the video URL, or an empty string if there is none
func (t Technique) Video() string {
	if t.VideoURL == nil {
		return ""
	}
	return *t.VideoURL
}

// PageParams selects a page of a list endpoint.
// Zero values are omitted from the request so the server defaults apply.
type PageParams struct {
	Page     int
	PageSize int
}

// Page is the paginated response envelope returned by list endpoints
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`      // 1-based
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// HasNext returns true if the server has more pages after this one
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// NextPage returns the cursor for the following page.
// ok is false when this page is the last one.
func (p Page[T]) NextPage() (next int, ok bool) {
	if !p.HasNext() {
		return 0, false
	}
	return p.Page + 1, true
}

// Health is the API's liveness report
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
