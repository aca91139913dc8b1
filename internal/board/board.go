// Package board owns the in-memory tier layout of a ranko list: the ordered
// tier metadata, the item rows backing each tier, and the unassigned pool.
// A Board is not safe for concurrent mutation; confine each instance to a
// single owner.
package board

import (
	"sort"

	"github.com/kyanaldridge/Ranko-sub002/internal/models"
	"github.com/kyanaldridge/Ranko-sub002/internal/rank"
)

// MinRows is the smallest number of rows a board keeps after initialization.
const MinRows = 3

// Board holds the tiers and the item partition for one list. Row i is backed
// by the tier at the same index; the two sequences are kept index-aligned.
type Board struct {
	Tiers []models.Tier
	Rows  [][]models.Item
	Pool  []models.Item // items not yet placed into any row

	hovered int // currently hovered row, -1 when none
	locked  int // tiers below this index cannot be deleted
}

// New returns a board seeded with the starter tier catalog and MinRows empty
// rows.
func New() *Board {
	b := &Board{
		Tiers:   models.StarterTiers(MinRows),
		hovered: -1,
	}
	b.EnsureMinimumRows(MinRows)
	return b
}

// FromFlatRanks rebuilds a board from tiers and a flat rank-carrying item
// collection, as loaded from remote storage. Empty tier lists fall back to
// the starter catalog.
func FromFlatRanks(tiers []models.Tier, items []models.Item) *Board {
	if len(tiers) == 0 {
		tiers = models.StarterTiers(MinRows)
	}
	b := &Board{Tiers: tiers, hovered: -1}
	b.RegroupFromFlatRanks(items, len(tiers))
	b.EnsureMinimumRows(MinRows)
	b.EnsureTierRowParity()
	return b
}

// EnsureMinimumRows appends empty rows until the board has at least n.
// It never removes rows.
func (b *Board) EnsureMinimumRows(n int) {
	for len(b.Rows) < n {
		b.Rows = append(b.Rows, nil)
	}
}

// EnsureTierRowParity appends default tiers until every row has a backing
// tier.
func (b *Board) EnsureTierRowParity() {
	for len(b.Tiers) < len(b.Rows) {
		b.Tiers = append(b.Tiers, models.DefaultTierForPosition(len(b.Tiers)))
	}
}

// AddRow appends an empty row and gives it a backing tier.
func (b *Board) AddRow() {
	b.Rows = append(b.Rows, nil)
	b.EnsureTierRowParity()
}

// DeleteRow removes the row at index together with its tier. Rows holding
// items are never deleted; the call is then a no-op returning false. The
// hovered-row cache is clamped so it cannot point past the new end.
func (b *Board) DeleteRow(index int) bool {
	if index < 0 || index >= len(b.Rows) {
		return false
	}
	if len(b.Rows[index]) > 0 {
		return false
	}
	b.Rows = append(b.Rows[:index], b.Rows[index+1:]...)
	if index < len(b.Tiers) {
		b.Tiers = append(b.Tiers[:index], b.Tiers[index+1:]...)
	}
	if b.hovered >= len(b.Rows) {
		b.hovered = len(b.Rows) - 1
	}
	return true
}

// MoveItems pulls every item whose id is in ids out of the rows and the pool,
// preserving their prior relative order, and appends them to the 1-based
// target row with freshly encoded ranks. The target row is created if it does
// not exist yet.
func (b *Board) MoveItems(ids []string, targetRow int) {
	if targetRow < 1 || len(ids) == 0 {
		return
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var moving []models.Item
	for i := range b.Rows {
		b.Rows[i], moving = extract(b.Rows[i], want, moving)
	}
	b.Pool, moving = extract(b.Pool, want, moving)
	if len(moving) == 0 {
		return
	}

	b.EnsureMinimumRows(targetRow)
	b.EnsureTierRowParity()

	row := targetRow - 1
	posStart := len(b.Rows[row])
	for offset, it := range moving {
		it.Rank = rank.Encode(targetRow, posStart+offset+1)
		b.Rows[row] = append(b.Rows[row], it)
	}
	sortRow(b.Rows[row])
}

// DeleteItems removes every item with a matching id from every row. The pool
// is left alone.
func (b *Board) DeleteItems(ids []string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range b.Rows {
		b.Rows[i], _ = extract(b.Rows[i], want, nil)
	}
}

// AddToPool stages items in the unassigned pool.
func (b *Board) AddToPool(items ...models.Item) {
	b.Pool = append(b.Pool, items...)
}

// RegroupFromFlatRanks replaces the rows by bucketing a flat item collection
// on the integer part of each rank. Ranks pointing past tierCount clamp into
// the last row rather than erroring; each bucket is sorted ascending by rank.
func (b *Board) RegroupFromFlatRanks(items []models.Item, tierCount int) {
	if tierCount < 1 {
		tierCount = 1
	}
	rows := make([][]models.Item, tierCount)
	for _, it := range items {
		idx := rank.Row(it.Rank) - 1
		if idx < 0 {
			idx = 0
		}
		if idx > tierCount-1 {
			idx = tierCount - 1
		}
		rows[idx] = append(rows[idx], it)
	}
	for i := range rows {
		sortRow(rows[i])
	}
	b.Rows = rows
}

// FindItem returns the item with the given id and the 1-based row holding it.
// Row 0 means the pool; ok is false when the id is unknown.
func (b *Board) FindItem(id string) (item models.Item, row int, ok bool) {
	for i := range b.Rows {
		for _, it := range b.Rows[i] {
			if it.ID == id {
				return it, i + 1, true
			}
		}
	}
	for _, it := range b.Pool {
		if it.ID == id {
			return it, 0, true
		}
	}
	return models.Item{}, 0, false
}

// UpdateItem rewrites the stored copy of an item in place, wherever it
// resides. Rank and position are left untouched.
func (b *Board) UpdateItem(updated models.Item) bool {
	for i := range b.Rows {
		for j := range b.Rows[i] {
			if b.Rows[i][j].ID == updated.ID {
				updated.Rank = b.Rows[i][j].Rank
				b.Rows[i][j] = updated
				return true
			}
		}
	}
	for j := range b.Pool {
		if b.Pool[j].ID == updated.ID {
			updated.Rank = b.Pool[j].Rank
			b.Pool[j] = updated
			return true
		}
	}
	return false
}

// ItemCount reports how many items are placed in rows (the pool not
// included).
func (b *Board) ItemCount() int {
	n := 0
	for i := range b.Rows {
		n += len(b.Rows[i])
	}
	return n
}

// HoveredRow returns the cached hovered row index, or -1 when none.
func (b *Board) HoveredRow() int { return b.hovered }

// SetHoveredRow caches a hovered row index; out-of-range values clear it.
func (b *Board) SetHoveredRow(index int) {
	if index < 0 || index >= len(b.Rows) {
		b.hovered = -1
		return
	}
	b.hovered = index
}

// extract removes the items whose ids are in want from list, appending them
// to out in their original order.
func extract(list []models.Item, want map[string]bool, out []models.Item) (kept, moved []models.Item) {
	kept = list[:0]
	for _, it := range list {
		if want[it.ID] {
			out = append(out, it)
		} else {
			kept = append(kept, it)
		}
	}
	return kept, out
}

func sortRow(row []models.Item) {
	sort.SliceStable(row, func(i, j int) bool { return row[i].Rank < row[j].Rank })
}
