package models

// Item text bounds, applied by NormalizeItemName/NormalizeItemDescription.
const (
	MaxItemNameLen        = 50
	MaxItemDescriptionLen = 100
)

// PlaceholderItemImage is substituted when an item has no media of its own.
const PlaceholderItemImage = "https://placehold.co/250x250"

// Item represents a single ranked entity. Rank is the only field that
// determines order and tier membership when a list is rebuilt from storage.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Rank        float64 `json:"rank"` // decimal rank: row + position/10000
	Votes       int     `json:"votes"`
	PlayCount   int     `json:"play_count"`
}

// NormalizeItemName truncates an item name to MaxItemNameLen runes.
func NormalizeItemName(name string) string {
	return truncateRunes(name, MaxItemNameLen)
}

// NormalizeItemDescription truncates an item description to MaxItemDescriptionLen runes.
func NormalizeItemDescription(desc string) string {
	return truncateRunes(desc, MaxItemDescriptionLen)
}
