package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kyanaldridge/Ranko-sub002/internal/board"
	"github.com/kyanaldridge/Ranko-sub002/internal/document"
	"github.com/kyanaldridge/Ranko-sub002/internal/models"
	"github.com/kyanaldridge/Ranko-sub002/internal/publish"
	"github.com/kyanaldridge/Ranko-sub002/internal/search"
	"github.com/kyanaldridge/Ranko-sub002/internal/storage"
)

// Seeds one demo tier list so a fresh database has something to render.
func main() {
	dbPath := flag.String("db", "./ranko.db", "SQLite database path")
	flag.Parse()

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	index, err := search.NewIndex(store.DB())
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}

	id := uuid.New().String()
	if err := seedDemoRanko(store, index, id); err != nil {
		log.Fatalf("Failed to seed demo ranko: %v", err)
	}
	log.Printf("🌱 Seeded demo ranko %s", id)
}

func seedDemoRanko(store *storage.Store, index *search.Index, id string) error {
	b := board.New()
	b.AddToPool(
		models.Item{ID: uuid.New().String(), Name: "OK Computer", Description: "Radiohead, 1997"},
		models.Item{ID: uuid.New().String(), Name: "Blonde", Description: "Frank Ocean, 2016"},
		models.Item{ID: uuid.New().String(), Name: "Nevermind", Description: "Nirvana, 1991"},
	)
	poolIDs := make([]string, 0, len(b.Pool))
	for _, it := range b.Pool {
		poolIDs = append(poolIDs, it.ID)
	}
	b.MoveItems(poolIDs[:2], 1)
	b.MoveItems(poolIDs[2:], 2)

	meta := document.Meta{
		Details: models.ListDetails{
			ID:       id,
			Name:     "Greatest Albums",
			Type:     "tier",
			Region:   "AUS",
			Language: "en",
		},
		Privacy: models.ListPrivacy{
			Cloneable: true, Comments: true, Likes: true, Shares: true, Saves: true,
			Status: "active",
		},
		Category: models.ListCategory{Name: "Music", Icon: "music.note", Colour: 0x446D7A},
	}

	doc := document.Serialize(b, meta, time.Now())
	p := publish.New(store, index, 0, nil)
	return p.Publish(context.Background(), id, doc)
}
