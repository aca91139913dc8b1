package document

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyanaldridge/Ranko-sub002/internal/board"
	"github.com/kyanaldridge/Ranko-sub002/internal/models"
)

func testMeta() Meta {
	return Meta{
		Details: models.ListDetails{
			ID:     "r1",
			Name:   "Best Albums",
			Type:   "tier",
			UserID: "u1",
		},
		Category: models.ListCategory{Name: "Music", Icon: "music.note", Colour: 0x446D7A},
	}
}

func testBoard() *board.Board {
	b := board.New()
	b.Rows[0] = []models.Item{
		{ID: "i1", Name: "one", Description: "first", Image: "https://img/1.jpg", Rank: 1.0001, Votes: 3},
		{ID: "i2", Name: "two", Rank: 1.0002},
	}
	b.Rows[2] = []models.Item{
		{ID: "i3", Name: "three", Rank: 3.0001, PlayCount: 9},
	}
	return b
}

func TestSerializeShape(t *testing.T) {
	now := time.Date(2025, 7, 3, 10, 30, 0, 0, time.UTC)
	doc := Serialize(testBoard(), testMeta(), now)

	// slot 0 of the tier array stays null
	require.Len(t, doc.Tiers, 4)
	assert.Nil(t, doc.Tiers[0])
	assert.Equal(t, 1, doc.Tiers[1].Index)
	assert.Equal(t, "S", doc.Tiers[1].Code)
	assert.Equal(t, "Solid", doc.Tiers[3].Label)

	require.Len(t, doc.Items, 3)
	i1 := doc.Items["i1"]
	assert.Equal(t, 1.0001, i1.ItemRank)
	assert.Equal(t, 1, i1.Row)
	assert.Equal(t, 1, i1.Position)
	i3 := doc.Items["i3"]
	assert.Equal(t, 3.0001, i3.ItemRank)
	assert.Equal(t, 3, i3.Row)

	// items without media get the shared placeholder
	assert.Equal(t, models.PlaceholderItemImage, doc.Items["i2"].ItemImage)

	assert.NotEmpty(t, doc.DateTime.Created)
	assert.Equal(t, doc.DateTime.Created, doc.DateTime.Updated)
	assert.Equal(t, []string{"ranko", "music"}, doc.Details.Tags)
}

func TestSerializeKeepsCreatedStamp(t *testing.T) {
	meta := testMeta()
	meta.DateTime.Created = "20240101000000"
	doc := Serialize(board.New(), meta, time.Now())

	assert.Equal(t, "20240101000000", doc.DateTime.Created)
	assert.NotEqual(t, doc.DateTime.Created, doc.DateTime.Updated)
}

func TestRoundTrip(t *testing.T) {
	doc := Serialize(testBoard(), testMeta(), time.Now())

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	b, meta := Rebuild(decoded)
	assert.Equal(t, "Best Albums", meta.Details.Name)
	assert.Equal(t, 0x446D7A, meta.Category.Colour)

	require.Len(t, b.Tiers, 3)
	assert.Equal(t, "S", b.Tiers[0].Code)
	assert.Equal(t, "Legendary", b.Tiers[0].Label)

	require.Len(t, b.Rows[0], 2)
	assert.Equal(t, "i1", b.Rows[0][0].ID)
	assert.Equal(t, "i2", b.Rows[0][1].ID)
	assert.Equal(t, "first", b.Rows[0][0].Description)
	assert.Equal(t, 3, b.Rows[0][0].Votes)
	require.Len(t, b.Rows[2], 1)
	assert.Equal(t, 9, b.Rows[2][0].PlayCount)
}

func TestDecodeMalformedTopLevel(t *testing.T) {
	_, err := Decode([]byte(`"not an object"`))
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)

	_, err = Decode([]byte(`{"Details": {}}`))
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Details.name", derr.Field)
}

func TestDecodeDefaultsMissingOptionalFields(t *testing.T) {
	doc, err := Decode([]byte(`{"Details": {"name": "bare"}}`))
	require.NoError(t, err)

	assert.Equal(t, "tier", doc.Details.Type)
	assert.Empty(t, doc.Details.Tags)
	assert.False(t, doc.Privacy.Private)
	assert.Equal(t, "active", doc.Privacy.Status)
	assert.Equal(t, 0xFFFFFF, doc.Category.Colour)
	assert.Empty(t, doc.Items)

	b, _ := Rebuild(doc)
	assert.Len(t, b.Tiers, 3)
	assert.Len(t, b.Rows, 3)
}

func TestDecodeTiersAsKeyedMap(t *testing.T) {
	raw := `{
		"Details": {"name": "x"},
		"Tiers": {
			"2": {"Index": 2, "Code": "A", "Label": "Excellent", "ColorHex": "0xBF7B2F"},
			"1": {"Index": 1, "Code": "S", "Label": "Legendary", "ColorHex": 12862774}
		}
	}`
	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	require.Len(t, doc.Tiers, 3)
	assert.Nil(t, doc.Tiers[0])
	assert.Equal(t, "S", doc.Tiers[1].Code)
	assert.Equal(t, 12862774, doc.Tiers[1].ColorHex)
	assert.Equal(t, 0xBF7B2F, doc.Tiers[2].ColorHex)
}

func TestDecodeItemCoercions(t *testing.T) {
	raw := `{
		"Details": {"name": "x"},
		"Tiers": [null, {"Index": 1, "Code": "S", "Label": "L", "ColorHex": 1}],
		"Items": {
			"a": {"ItemName": "a", "ItemRank": "2.0003", "ItemVotes": "7"},
			"b": {"ItemName": "b", "ItemRank": 1},
			"junk": {"ItemVotes": 4}
		}
	}`
	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, 2.0003, doc.Items["a"].ItemRank)
	assert.Equal(t, 7, doc.Items["a"].ItemVotes)
	assert.Equal(t, models.PlaceholderItemImage, doc.Items["a"].ItemImage)
	assert.Equal(t, 1.0, doc.Items["b"].ItemRank)
}

func TestRebuildPrefersExplicitRowPosition(t *testing.T) {
	doc := &Document{
		Details: models.ListDetails{Name: "x"},
		Tiers: []*TierRecord{nil,
			{Index: 1, Code: "S", Label: "L", ColorHex: 1},
			{Index: 2, Code: "A", Label: "E", ColorHex: 2},
		},
		Items: map[string]ItemRecord{
			// rank disagrees with the explicit placement; placement wins
			"a": {ItemName: "a", ItemRank: 1.0001, Row: 2, Position: 1},
		},
	}
	b, _ := Rebuild(doc)
	assert.Empty(t, b.Rows[0])
	require.Len(t, b.Rows[1], 1)
	assert.Equal(t, 2.0001, b.Rows[1][0].Rank)
}

func TestRebuildClampsOverflowingRank(t *testing.T) {
	doc := &Document{
		Details: models.ListDetails{Name: "x"},
		Tiers: []*TierRecord{nil,
			{Index: 1, Code: "S", Label: "L", ColorHex: 1},
			{Index: 2, Code: "A", Label: "E", ColorHex: 2},
		},
		Items: map[string]ItemRecord{
			"far": {ItemName: "far", ItemRank: 9.0001},
		},
	}
	b, _ := Rebuild(doc)
	require.Len(t, b.Rows[1], 1)
	assert.Equal(t, "far", b.Rows[1][0].ID)
}

func TestHexColourCoercion(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"#FFC800", 0xFFC800},
		{"0xFFC800", 0xFFC800},
		{"ffc800", 0xFFC800},
		{"FC8", 0xFFCC88},
		{"#FFC800FF", 0xFFC800},
		{"4484986", 4484986},
		{"not a hex", 0x123456},
		{"", 0x123456},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, hexColourOr(c.in, 0x123456), "input %q", c.in)
	}
	assert.Equal(t, 0xBFA254, hexColourOr(float64(0xBFA254), 0))
	assert.Equal(t, 0x123456, hexColourOr(nil, 0x123456))
}
