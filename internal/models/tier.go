package models

import (
	"strings"

	"github.com/google/uuid"
)

// Tier display metadata bounds, applied by NormalizeTierCode/NormalizeTierLabel.
const (
	MaxTierCodeLen  = 3
	MaxTierLabelLen = 10
)

// Tier represents a single ranking bucket. Its position in the board's tier
// list is its row number (1-based when serialized, 0-based in memory).
type Tier struct {
	ID       string `json:"id"`
	Code     string `json:"code"`      // e.g. "S"
	Label    string `json:"label"`     // e.g. "Legendary"
	ColorHex int    `json:"color_hex"` // 0xRRGGBB
}

// Full catalog S…Z used to seed new tiers and to reset edited ones.
var tierCodes = []string{
	"S", "A", "B", "C", "D", "E", "F",
	"G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S2", "T", "U", "V", "W", "X", "Y", "Z",
}

var tierLabels = []string{
	"Legendary", "Excellent", "Solid", "Average", "Weak", "Poor", "Useless",
	"Decent", "Okay", "Meh", "Flawed", "Bad", "Trash", "Low", "Bottom",
	"Minor", "Subpar", "Rough", "Edge", "Spare", "Under", "Vague", "Weary", "Worn", "Xtra", "Yield", "Zero",
}

var tierColors = []int{
	0xC44536, 0xBF7B2F, 0xBFA254, 0x4DA35A, 0x3F7F74, 0x3F63A7, 0x6C46B3,
	0xA24A3A, 0xA46C33, 0xA89060, 0x3F9251, 0x3A6F69, 0x365A95, 0x5C45A6,
	0x8F3F33, 0x945F2E, 0x9F8458, 0x368647, 0x316B62, 0x2F568A, 0x523F98,
	0x7E362B, 0x86572A, 0x927C52, 0x2F7940, 0x2A6158, 0x274E80, 0x47388C,
}

// DefaultTierForPosition returns the catalog entry for a 0-based position as a
// fresh Tier record. Out-of-range positions clamp to the nearest entry, so it
// never fails.
func DefaultTierForPosition(idx int) Tier {
	i := idx
	if i < 0 {
		i = 0
	}
	if i > len(tierCodes)-1 {
		i = len(tierCodes) - 1
	}
	return Tier{
		ID:       uuid.New().String(),
		Code:     tierCodes[i],
		Label:    tierLabels[i],
		ColorHex: tierColors[i],
	}
}

// StarterTiers returns the first n catalog entries as fresh Tier records.
// Negative counts clamp to zero.
func StarterTiers(n int) []Tier {
	if n < 0 {
		n = 0
	}
	tiers := make([]Tier, 0, n)
	for i := 0; i < n; i++ {
		tiers = append(tiers, DefaultTierForPosition(i))
	}
	return tiers
}

// NormalizeTierCode uppercases and truncates a tier code to MaxTierCodeLen runes.
func NormalizeTierCode(code string) string {
	return truncateRunes(strings.ToUpper(code), MaxTierCodeLen)
}

// NormalizeTierLabel truncates a tier label to MaxTierLabelLen runes.
func NormalizeTierLabel(label string) string {
	return truncateRunes(label, MaxTierLabelLen)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
