package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/shelfmark/shelfmark/internal/books/dto"
	"github.com/shelfmark/shelfmark/internal/books/model"
	"github.com/shelfmark/shelfmark/internal/config"
	"github.com/shelfmark/shelfmark/internal/repo"
	"github.com/shelfmark/shelfmark/internal/worker"
)

// ExternalSource is the catalog consulted when neither the cache nor the
// authoritative store knows an ISBN. A nil book with a nil error means the
// catalog has no such volume.
type ExternalSource interface {
	LookupISBN(ctx context.Context, isbn string) (*model.Book, error)
}

// BookService serves lookups cache-aside: fast store first, then the
// authoritative store, then the external catalog, repopulating the earlier
// tiers asynchronously so the response is never blocked on a write.
type BookService interface {
	GetByISBN(ctx context.Context, isbn string) (model.Book, error)
	GetByCategory(ctx context.Context, category string) ([]model.Book, error)
	Search(ctx context.Context, q dto.SearchQuery) ([]model.Book, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	Create(ctx context.Context, d dto.CreateBookDTO) (model.Book, error)
}

func NewBookService(
	bookRepo repo.BookRepo,
	cache repo.Cache,
	external ExternalSource,
	w *worker.Worker,
	cfg *config.Config,
	log *zap.Logger,
) BookService {
	return &bookService{
		bookRepo: bookRepo,
		cache:    cache,
		external: external,
		worker:   w,
		cfg:      cfg,
		log:      log,
	}
}
