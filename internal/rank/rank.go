// Package rank implements the decimal rank codec used to flatten a tiered
// item layout into a single sortable number per item: rank = row + position/10000.
// The integer part recovers the row, the fractional part the position within
// it, so an unordered remote store can rebuild both grouping and order from
// one scalar.
package rank

import "math"

// MaxPosition is the largest intra-row position the codec can represent.
// A position of 10000 or more would overflow into the next row's integer
// space and decode to the wrong row.
const MaxPosition = 9999

// Encode builds the decimal rank for a 1-based row and position.
// Inputs below 1 are clamped; positions above MaxPosition are clamped so the
// result never collides with the next row.
func Encode(row, position int) float64 {
	if row < 1 {
		row = 1
	}
	if position < 1 {
		position = 1
	}
	if position > MaxPosition {
		position = MaxPosition
	}
	return float64(row) + float64(position)/10000.0
}

// Decode splits a decimal rank back into (row, position). Position is
// clamped to >= 1 so items stored with a bare integer rank still land at the
// head of their row.
func Decode(rank float64) (row, position int) {
	row = int(math.Floor(rank))
	if row < 1 {
		row = 1
	}
	position = int(math.Round((rank - math.Floor(rank)) * 10000.0))
	if position < 1 {
		position = 1
	}
	return row, position
}

// Row returns just the 1-based row encoded in a rank.
func Row(rank float64) int {
	r, _ := Decode(rank)
	return r
}
