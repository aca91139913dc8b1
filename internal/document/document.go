// Package document converts between the in-memory board layout and the flat
// remote document shape the store keeps: tier records in a 1-based array with
// an unused null slot 0, and items as a flat id-keyed map carrying a decimal
// rank. All loose-typed coercion of remote values lives in coerce.go.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kyanaldridge/Ranko-sub002/internal/board"
	"github.com/kyanaldridge/Ranko-sub002/internal/models"
	"github.com/kyanaldridge/Ranko-sub002/internal/rank"
)

// Stamps are written in the app's home timezone, matching the documents the
// mobile client produces.
var stampLocation = func() *time.Location {
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// StampLayout is the created/updated timestamp format used by the store.
const StampLayout = "20060102150405"

// TierRecord is one tier as stored remotely, 1-based.
type TierRecord struct {
	Index    int    `json:"Index"`
	Code     string `json:"Code"`
	Label    string `json:"Label"`
	ColorHex int    `json:"ColorHex"`
}

// ItemRecord is one item as stored remotely. Row and Position are written
// redundantly next to ItemRank; readers prefer them when present and fall
// back to the rank's integer part when a writer omitted them.
type ItemRecord struct {
	ItemName        string  `json:"ItemName"`
	ItemDescription string  `json:"ItemDescription"`
	ItemImage       string  `json:"ItemImage"`
	ItemRank        float64 `json:"ItemRank"`
	ItemVotes       int     `json:"ItemVotes"`
	PlayCount       int     `json:"PlayCount"`
	Row             int     `json:"Row,omitempty"`
	Position        int     `json:"Position,omitempty"`
}

// Meta bundles the non-layout blocks of a ranko document.
type Meta struct {
	Details    models.ListDetails    `json:"Details"`
	Privacy    models.ListPrivacy    `json:"Privacy"`
	Category   models.ListCategory   `json:"Category"`
	DateTime   models.ListDateTime   `json:"DateTime"`
	Statistics models.ListStatistics `json:"Statistics"`
}

// Document is the full remote shape of one ranko list.
type Document struct {
	Details    models.ListDetails    `json:"Details"`
	Privacy    models.ListPrivacy    `json:"Privacy"`
	Category   models.ListCategory   `json:"Category"`
	Tiers      []*TierRecord         `json:"Tiers"` // slot 0 unused, kept null
	Items      map[string]ItemRecord `json:"Items"`
	DateTime   models.ListDateTime   `json:"DateTime"`
	Statistics models.ListStatistics `json:"Statistics"`
}

// Serialize flattens a board and its metadata into the remote shape. Tier i
// (0-based) lands at array slot i+1; every item gets a freshly encoded rank
// from its current row and position. The updated stamp is set from now; the
// created stamp is kept, or set from now on first publish. Tags default to
// ["ranko", <category>] when empty.
func Serialize(b *board.Board, meta Meta, now time.Time) *Document {
	stamp := now.In(stampLocation).Format(StampLayout)

	doc := &Document{
		Details:    meta.Details,
		Privacy:    meta.Privacy,
		Category:   meta.Category,
		Tiers:      make([]*TierRecord, len(b.Tiers)+1),
		Items:      make(map[string]ItemRecord, b.ItemCount()),
		DateTime:   meta.DateTime,
		Statistics: meta.Statistics,
	}
	if doc.DateTime.Created == "" {
		doc.DateTime.Created = stamp
	}
	doc.DateTime.Updated = stamp
	if len(doc.Details.Tags) == 0 {
		doc.Details.Tags = defaultTags(meta.Category.Name)
	}

	for i, t := range b.Tiers {
		doc.Tiers[i+1] = &TierRecord{
			Index:    i + 1,
			Code:     t.Code,
			Label:    t.Label,
			ColorHex: t.ColorHex,
		}
	}

	for i, row := range b.Rows {
		for j, it := range row {
			image := it.Image
			if image == "" {
				image = models.PlaceholderItemImage
			}
			doc.Items[it.ID] = ItemRecord{
				ItemName:        it.Name,
				ItemDescription: it.Description,
				ItemImage:       image,
				ItemRank:        rank.Encode(i+1, j+1),
				ItemVotes:       it.Votes,
				PlayCount:       it.PlayCount,
				Row:             i + 1,
				Position:        j + 1,
			}
		}
	}
	return doc
}

// Rebuild inverts Serialize: it reconstructs the board and metadata from a
// decoded document. Items carrying explicit Row/Position are placed exactly
// there; the rest are bucketed from the integer part of their rank. Either
// way each row ends up sorted ascending by rank.
func Rebuild(doc *Document) (*board.Board, Meta) {
	meta := Meta{
		Details:    doc.Details,
		Privacy:    doc.Privacy,
		Category:   doc.Category,
		DateTime:   doc.DateTime,
		Statistics: doc.Statistics,
	}

	tiers := make([]models.Tier, 0, len(doc.Tiers))
	for _, t := range doc.Tiers {
		if t == nil {
			continue
		}
		tiers = append(tiers, models.Tier{
			ID:       uuid.New().String(),
			Code:     t.Code,
			Label:    t.Label,
			ColorHex: t.ColorHex,
		})
	}

	items := make([]models.Item, 0, len(doc.Items))
	for id, rec := range doc.Items {
		r := rec.ItemRank
		if rec.Row >= 1 && rec.Position >= 1 {
			r = rank.Encode(rec.Row, rec.Position)
		}
		image := rec.ItemImage
		if image == "" {
			image = models.PlaceholderItemImage
		}
		items = append(items, models.Item{
			ID:          id,
			Name:        rec.ItemName,
			Description: rec.ItemDescription,
			Image:       image,
			Rank:        r,
			Votes:       rec.ItemVotes,
			PlayCount:   rec.PlayCount,
		})
	}

	return board.FromFlatRanks(tiers, items), meta
}

func defaultTags(category string) []string {
	tags := []string{"ranko"}
	if category != "" {
		tags = append(tags, strings.ToLower(category))
	}
	return tags
}

// DecodeError reports a document that is malformed at the top level. Missing
// optional fields never produce one; they decode to documented defaults.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("document: bad field %q: %s", e.Field, e.Reason)
}
