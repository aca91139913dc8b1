package models

// ListDetails holds the descriptive metadata of a ranko list.
type ListDetails struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"` // "tier", "default", "group"
	UserID      string   `json:"user_id"`
	Tags        []string `json:"tags"`
	Region      string   `json:"region"`
	Language    string   `json:"language"`
}

// ListPrivacy holds the visibility and interaction switches of a list.
type ListPrivacy struct {
	Private   bool   `json:"private"`
	Cloneable bool   `json:"cloneable"`
	Comments  bool   `json:"comments"`
	Likes     bool   `json:"likes"`
	Shares    bool   `json:"shares"`
	Saves     bool   `json:"saves"`
	Status    string `json:"status"` // "active", "archived"
}

// ListCategory is the category a list is filed under.
type ListCategory struct {
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Colour int    `json:"colour"` // 0xRRGGBB
}

// ListDateTime holds created/updated stamps in yyyyMMddHHmmss form.
type ListDateTime struct {
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// ListStatistics are opaque counters, initialized to zero on publish.
type ListStatistics struct {
	Views  int `json:"views"`
	Saves  int `json:"saves"`
	Shares int `json:"shares"`
	Clones int `json:"clones"`
}

// ListSummary is a lightweight version for listings.
type ListSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	ItemCount int    `json:"item_count"`
	Updated   string `json:"updated"`
}
