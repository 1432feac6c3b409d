package domain

import "fmt"

// ListItem is the polymorphic interface for items that can be displayed in lists.
// It provides a common API for display and filtering across all content types.
// Domain entities (FightingBook, Chapter, Technique) implement this interface directly.
type ListItem interface {
	// GetID returns the server identifier for this item
	GetID() int

	// GetTitle returns the display title
	GetTitle() string

	// GetSubtitle returns secondary info for display (e.g., author and year for books)
	GetSubtitle() string

	// GetDescription returns the longer free-text description
	GetDescription() string

	// GetOrdinal returns the display position within its parent (0 if not applicable)
	GetOrdinal() int
}

func (b FightingBook) GetID() int             { return b.ID }
func (b FightingBook) GetTitle() string       { return b.Title }
func (b FightingBook) GetDescription() string { return b.Description }
func (b FightingBook) GetOrdinal() int        { return 0 }

// GetSubtitle returns "Author, Year", dropping the year when unknown
func (b FightingBook) GetSubtitle() string {
	if y := b.Year(); y > 0 {
		if b.SwordMasterName == "" {
			return fmt.Sprintf("%d", y)
		}
		return fmt.Sprintf("%s, %d", b.SwordMasterName, y)
	}
	return b.SwordMasterName
}

func (c Chapter) GetID() int             { return c.ID }
func (c Chapter) GetTitle() string       { return c.Title }
func (c Chapter) GetSubtitle() string    { return fmt.Sprintf("Chapter %d", c.ChapterNumber) }
func (c Chapter) GetDescription() string { return c.Description }
func (c Chapter) GetOrdinal() int        { return c.ChapterNumber }

func (t Technique) GetID() int             { return t.ID }
func (t Technique) GetTitle() string       { return t.Name }
func (t Technique) GetDescription() string { return t.Description }
func (t Technique) GetOrdinal() int        { return t.OrderInChapter }

// GetSubtitle marks techniques that have a video
func (t Technique) GetSubtitle() string {
	if t.HasVideo() {
		return "video"
	}
	return ""
}

// AsListItems converts a typed slice into list items, preserving order
func AsListItems[T ListItem](items []T) []ListItem {
	out := make([]ListItem, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
