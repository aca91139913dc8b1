package board

import "github.com/kyanaldridge/Ranko-sub002/internal/models"

// Tier editing. Tiers backing rows that existed when the editor opened are
// locked: they can be renamed and reset but never deleted, so a non-empty row
// can never silently lose its tier.

// LockTiers marks every tier backing a currently present row as locked and
// returns the locked count.
func (b *Board) LockTiers() int {
	b.locked = len(b.Rows)
	return b.locked
}

// SetTierLock protects the first n tiers from deletion, clamped to the
// current tier count.
func (b *Board) SetTierLock(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(b.Tiers) {
		n = len(b.Tiers)
	}
	b.locked = n
}

// LockedCount reports how many leading tiers are protected from deletion.
func (b *Board) LockedCount() int { return b.locked }

// AppendTier adds the catalog default for the next position and pads the
// rows so the new tier has one.
func (b *Board) AppendTier() models.Tier {
	t := models.DefaultTierForPosition(len(b.Tiers))
	b.Tiers = append(b.Tiers, t)
	b.EnsureMinimumRows(len(b.Tiers))
	return t
}

// EditTier rewrites a tier's code and label in place, normalized to the
// display bounds. Out-of-range indexes are a no-op.
func (b *Board) EditTier(index int, code, label string) {
	if index < 0 || index >= len(b.Tiers) {
		return
	}
	b.Tiers[index].Code = models.NormalizeTierCode(code)
	b.Tiers[index].Label = models.NormalizeTierLabel(label)
}

// ResetTier overwrites a tier with its catalog default for that position.
// The tier keeps its identity so UI focus survives the reset.
func (b *Board) ResetTier(index int) {
	if index < 0 || index >= len(b.Tiers) {
		return
	}
	def := models.DefaultTierForPosition(index)
	def.ID = b.Tiers[index].ID
	b.Tiers[index] = def
}

// DeleteTier removes the tier at index together with its row. Locked tiers
// and tiers whose row holds items are never deleted; the call is then a
// no-op returning false.
func (b *Board) DeleteTier(index int) bool {
	if index < 0 || index >= len(b.Tiers) {
		return false
	}
	if index < b.locked {
		return false
	}
	if index < len(b.Rows) {
		return b.DeleteRow(index)
	}
	b.Tiers = append(b.Tiers[:index], b.Tiers[index+1:]...)
	return true
}
