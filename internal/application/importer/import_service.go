package importer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/feed"
)

// FeedFetcher downloads and parses a feed document from a URL
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*catalog.FeedDocument, error)
}

// ImportService runs a partner feed import: resolve the shop, take the
// per-shop lock, replace the catalog slice in one transaction.
type ImportService struct {
	shopRepo  catalog.ShopRepository
	store     catalog.FeedImportStore
	locker    catalog.ImportLocker
	fetcher   FeedFetcher
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	shopRepo catalog.ShopRepository,
	store catalog.FeedImportStore,
	locker catalog.ImportLocker,
	fetcher FeedFetcher,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		shopRepo:  shopRepo,
		store:     store,
		locker:    locker,
		fetcher:   fetcher,
		publisher: publisher,
		logger:    logger,
	}
}

// ImportFromURL downloads, validates and imports a feed for the partner
func (s *ImportService) ImportFromURL(ctx context.Context, userID uuid.UUID, url string) (*ImportResult, error) {
	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.importDocument(ctx, userID, doc, &url)
}

// ImportFromBytes validates and imports an uploaded feed for the partner
func (s *ImportService) ImportFromBytes(ctx context.Context, userID uuid.UUID, data []byte) (*ImportResult, error) {
	doc, err := feed.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return s.importDocument(ctx, userID, doc, nil)
}

func (s *ImportService) importDocument(ctx context.Context, userID uuid.UUID, doc *catalog.FeedDocument, sourceURL *string) (*ImportResult, error) {
	shop, err := s.resolveShop(ctx, userID, doc.Shop)
	if err != nil {
		return nil, err
	}

	token, err := s.locker.TryLock(ctx, shop.Name)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, shared.ErrImportInProgress
	}
	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), shop.Name, token); err != nil {
			s.logger.Error("Failed to release import lock",
				zap.String("shop", shop.Name), zap.Error(err))
		}
	}()

	stats, err := s.store.ImportFeed(ctx, shop, doc)
	if err != nil {
		return nil, err
	}

	if sourceURL != nil {
		if err := shop.SetURL(*sourceURL); err == nil {
			if err := s.shopRepo.Save(ctx, shop); err != nil {
				s.logger.Error("Failed to store feed URL",
					zap.String("shop", shop.Name), zap.Error(err))
			}
		}
	}

	s.logger.Info("Feed imported",
		zap.String("shop", shop.Name),
		zap.Int("categories", stats.Categories),
		zap.Int("goods", stats.Goods))

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, catalog.NewCatalogImportedEvent(shop, stats.Categories, stats.Goods))
	}

	return &ImportResult{
		Shop:       shop.Name,
		Categories: stats.Categories,
		Goods:      stats.Goods,
	}, nil
}

// resolveShop finds the shop named by the feed. A first import registers
// the shop for the partner; a name registered to someone else is a conflict.
func (s *ImportService) resolveShop(ctx context.Context, userID uuid.UUID, name string) (*catalog.Shop, error) {
	shop, err := s.shopRepo.FindByName(ctx, name)
	if err == nil {
		if !shop.IsOwnedBy(userID) {
			return nil, shared.NewDomainError("SHOP_CONFLICT", "Shop name is registered to another partner")
		}
		return shop, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	shop, err = catalog.NewShop(name, userID)
	if err != nil {
		return nil, err
	}
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, shop)
	return shop, nil
}

// publishDomainEvents publishes pending events from the shop aggregate
func (s *ImportService) publishDomainEvents(ctx context.Context, shop *catalog.Shop) {
	if s.publisher == nil {
		return
	}
	events := shop.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
	shop.ClearDomainEvents()
}
