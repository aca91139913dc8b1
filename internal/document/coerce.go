package document

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/kyanaldridge/Ranko-sub002/internal/models"
)

// Decode parses raw document bytes into a typed Document. Remote writers are
// loose about types (numbers as strings, colours as ints or hex strings,
// tiers as an array or a 1-keyed map), so every field goes through the
// coercion helpers below. Only a top-level shape problem or a missing list
// name is an error; any missing nested field decodes to its default.
func Decode(data []byte) (*Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Field: "(root)", Reason: "not a JSON object"}
	}
	return DecodeMap(raw)
}

// DecodeMap is Decode for callers that already hold the untyped tree.
func DecodeMap(raw map[string]any) (*Document, error) {
	if raw == nil {
		return nil, &DecodeError{Field: "(root)", Reason: "document is absent"}
	}

	details := asMap(raw["Details"])
	name, ok := asString(details["name"])
	if !ok || name == "" {
		return nil, &DecodeError{Field: "Details.name", Reason: "missing or empty"}
	}

	doc := &Document{
		Details: models.ListDetails{
			ID:          stringOr(details["id"], ""),
			Name:        name,
			Description: stringOr(details["description"], ""),
			Type:        stringOr(details["type"], "tier"),
			UserID:      stringOr(details["user_id"], ""),
			Tags:        stringSlice(details["tags"]),
			Region:      stringOr(details["region"], ""),
			Language:    stringOr(details["language"], ""),
		},
		Items: map[string]ItemRecord{},
	}

	privacy := asMap(raw["Privacy"])
	doc.Privacy = models.ListPrivacy{
		Private:   boolOr(privacy["private"], false),
		Cloneable: boolOr(privacy["cloneable"], true),
		Comments:  boolOr(privacy["comments"], true),
		Likes:     boolOr(privacy["likes"], true),
		Shares:    boolOr(privacy["shares"], true),
		Saves:     boolOr(privacy["saves"], true),
		Status:    stringOr(privacy["status"], "active"),
	}

	category := asMap(raw["Category"])
	doc.Category = models.ListCategory{
		Name:   stringOr(category["name"], ""),
		Icon:   stringOr(category["icon"], ""),
		Colour: hexColourOr(category["colour"], 0xFFFFFF),
	}

	dt := asMap(raw["DateTime"])
	doc.DateTime = models.ListDateTime{
		Created: stringOr(dt["created"], ""),
		Updated: stringOr(dt["updated"], ""),
	}
	if doc.DateTime.Updated == "" {
		doc.DateTime.Updated = doc.DateTime.Created
	}

	stats := asMap(raw["Statistics"])
	doc.Statistics = models.ListStatistics{
		Views:  intOr(stats["views"], 0),
		Saves:  intOr(stats["saves"], 0),
		Shares: intOr(stats["shares"], 0),
		Clones: intOr(stats["clones"], 0),
	}

	doc.Tiers = decodeTiers(raw["Tiers"])

	for id, v := range asMap(raw["Items"]) {
		item := asMap(v)
		if item == nil {
			continue
		}
		itemName, ok := asString(item["ItemName"])
		if !ok {
			// an item node with no name is unusable, skip it rather than
			// failing the whole load
			continue
		}
		doc.Items[id] = ItemRecord{
			ItemName:        itemName,
			ItemDescription: stringOr(item["ItemDescription"], ""),
			ItemImage:       stringOr(item["ItemImage"], models.PlaceholderItemImage),
			ItemRank:        floatOr(item["ItemRank"], 0),
			ItemVotes:       intOr(item["ItemVotes"], 0),
			PlayCount:       intOr(item["PlayCount"], 0),
			Row:             intOr(item["Row"], 0),
			Position:        intOr(item["Position"], 0),
		}
	}

	return doc, nil
}

// decodeTiers accepts the two shapes writers produce: a JSON array whose
// slot 0 is null, or an object keyed "1", "2", ... Either way the result is
// the canonical null-headed array ordered by Index.
func decodeTiers(v any) []*TierRecord {
	var records []*TierRecord

	collect := func(m map[string]any) {
		idx, ok := asInt(m["Index"])
		if !ok || idx < 1 {
			return
		}
		records = append(records, &TierRecord{
			Index:    idx,
			Code:     stringOr(m["Code"], ""),
			Label:    stringOr(m["Label"], ""),
			ColorHex: hexColourOr(m["ColorHex"], 0xBFA254),
		})
	}

	switch t := v.(type) {
	case []any:
		for _, e := range t {
			if m := asMap(e); m != nil {
				collect(m)
			}
		}
	case map[string]any:
		for _, e := range t {
			if m := asMap(e); m != nil {
				collect(m)
			}
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Index < records[j].Index })

	out := make([]*TierRecord, len(records)+1)
	for i, r := range records {
		out[i+1] = r
	}
	return out
}

// --- coercion helpers ---

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func intOr(v any, def int) int {
	if i, ok := asInt(v); ok {
		return i
	}
	return def
}

func floatOr(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return def
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func boolOr(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func stringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// hexColourOr reads a 24-bit RGB colour written as an int, a decimal string,
// or a hex string in any of the "#FFC800", "0xFFC800", "FFC800", "FC8"
// spellings. Alpha bytes are stripped.
func hexColourOr(v any, def int) int {
	switch c := v.(type) {
	case float64:
		return int(c) & 0xFFFFFF
	case int:
		return c & 0xFFFFFF
	case string:
		return parseHexString(c, def)
	}
	return def
}

func parseHexString(s string, def int) int {
	raw := strings.TrimSpace(strings.ToLower(s))
	if raw == "" {
		return def
	}
	hexish := strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, "0x")
	raw = strings.TrimPrefix(raw, "#")
	raw = strings.TrimPrefix(raw, "0x")
	if !hexish {
		// decimal colour values come through as strings too
		if i, err := strconv.Atoi(raw); err == nil {
			return i & 0xFFFFFF
		}
	}
	if len(raw) == 3 { // shorthand RGB
		var b strings.Builder
		for _, r := range raw {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		raw = b.String()
	}
	if len(raw) == 8 { // strip alpha
		raw = raw[:6]
	}
	i, err := strconv.ParseInt(raw, 16, 64)
	if err != nil {
		return def
	}
	return int(i) & 0xFFFFFF
}
