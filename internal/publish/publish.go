// Package publish pushes a finished ranko document to its destinations: the
// document store, the search index, and the owner's active-list mirror. The
// three writes are independent and run as a fan-out with a fixed per-call
// timeout; any failure fails the publish as a whole and the caller's
// in-memory state is left untouched.
package publish

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kyanaldridge/Ranko-sub002/internal/document"
	"github.com/kyanaldridge/Ranko-sub002/internal/search"
	"github.com/kyanaldridge/Ranko-sub002/internal/storage"
)

// DefaultTimeout bounds each destination write.
const DefaultTimeout = 10 * time.Second

// Publisher fans a document out to every destination.
type Publisher struct {
	store   *storage.Store
	index   *search.Index
	timeout time.Duration
	log     *zap.Logger
}

// New creates a Publisher. A zero timeout falls back to DefaultTimeout.
func New(store *storage.Store, index *search.Index, timeout time.Duration, log *zap.Logger) *Publisher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{store: store, index: index, timeout: timeout, log: log}
}

// Publish writes the document, its search record, and the user mirror entry
// concurrently and waits for all three. The first error wins; the losing
// branches are cancelled through the group context.
func (p *Publisher) Publish(ctx context.Context, id string, doc *document.Document) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.timed(ctx, "document store", func(ctx context.Context) error {
			return p.store.SaveDocument(ctx, id, doc)
		})
	})
	g.Go(func() error {
		return p.timed(ctx, "search index", func(ctx context.Context) error {
			return p.index.Save(ctx, search.RecordFromDocument(id, doc))
		})
	})
	g.Go(func() error {
		return p.timed(ctx, "user mirror", func(ctx context.Context) error {
			return p.store.SetUserRanko(ctx, doc.Details.UserID, id, doc.Category.Name)
		})
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("publish %s: %w", id, err)
	}
	p.log.Info("published ranko",
		zap.String("ranko_id", id),
		zap.Int("items", len(doc.Items)),
		zap.Int("tiers", len(doc.Tiers)-1))
	return nil
}

// Retract removes a ranko from every destination, images included.
func (p *Publisher) Retract(ctx context.Context, id, userID string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.timed(ctx, "document store", func(ctx context.Context) error {
			return p.store.DeleteDocument(ctx, id)
		})
	})
	g.Go(func() error {
		return p.timed(ctx, "search index", func(ctx context.Context) error {
			return p.index.Delete(ctx, id)
		})
	})
	g.Go(func() error {
		return p.timed(ctx, "user mirror", func(ctx context.Context) error {
			return p.store.DeleteUserRanko(ctx, userID, id)
		})
	})
	g.Go(func() error {
		return p.timed(ctx, "blob store", func(ctx context.Context) error {
			_, err := p.store.DeleteBlobPrefix(ctx, ItemImagePrefix(id))
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("retract %s: %w", id, err)
	}
	p.log.Info("retracted ranko", zap.String("ranko_id", id))
	return nil
}

// timed races one destination write against the per-call timeout.
func (p *Publisher) timed(ctx context.Context, dest string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("%s: %w", dest, err)
	}
	return nil
}

// ItemImagePrefix is the blob path prefix holding a ranko's item images.
func ItemImagePrefix(rankoID string) string {
	return "rankoPersonalImages/" + rankoID + "/"
}

// ItemImagePath is the blob path of one item's image.
func ItemImagePath(rankoID, itemID string) string {
	return ItemImagePrefix(rankoID) + itemID + ".jpg"
}
