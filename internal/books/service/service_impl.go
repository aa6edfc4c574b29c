package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shelfmark/shelfmark/internal/books/dto"
	"github.com/shelfmark/shelfmark/internal/books/model"
	"github.com/shelfmark/shelfmark/internal/config"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
	"github.com/shelfmark/shelfmark/internal/repo"
	"github.com/shelfmark/shelfmark/internal/worker"
)

type bookService struct {
	bookRepo repo.BookRepo
	cache    repo.Cache
	external ExternalSource
	worker   *worker.Worker
	cfg      *config.Config
	log      *zap.Logger
}

func isbnKey(isbn string) string { return "book:" + isbn }

func categoryKey(category string) string {
	return "book:category:" + strings.ToLower(category)
}

// searchKey serializes the query so that equal queries from different
// requests share a cache entry. JSON keeps the mapping injective: field
// values containing separator characters cannot collide with another query.
func searchKey(q dto.SearchQuery) string {
	raw, _ := json.Marshal(q)
	return "book:search:" + string(raw)
}

func (s *bookService) GetByISBN(ctx context.Context, isbn string) (model.Book, error) {
	var cached model.Book
	if ok := s.cacheLookup(ctx, isbnKey(isbn), &cached); ok {
		return cached, nil
	}

	book, err := s.bookRepo.GetBookByISBN(ctx, isbn)
	if err == nil {
		s.deferCacheSet(isbnKey(isbn), book, s.cfg.BookCacheTTL)
		return book, nil
	}
	if !domainErrors.IsNotFound(err) {
		return model.Book{}, err
	}

	fetched, err := s.external.LookupISBN(ctx, isbn)
	if err != nil {
		// An unreachable catalog must not crash the lookup; the miss path
		// answers for it.
		s.log.Warn("external catalog lookup failed",
			zap.String("isbn", isbn),
			zap.Error(err),
		)
		return model.Book{}, domainErrors.ErrBookNotFound
	}
	if fetched == nil {
		return model.Book{}, domainErrors.ErrBookNotFound
	}

	book = *fetched
	s.deferBookCreate(book)
	s.deferCacheSet(isbnKey(isbn), book, s.cfg.BookCacheTTL)

	return book, nil
}

func (s *bookService) GetByCategory(ctx context.Context, category string) ([]model.Book, error) {
	key := categoryKey(category)

	var cached []model.Book
	if ok := s.cacheLookup(ctx, key, &cached); ok {
		return cached, nil
	}

	books, err := s.bookRepo.GetBooksByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, domainErrors.ErrCategoryNotFound
	}

	s.deferCacheSet(key, books, s.cfg.BookListCacheTTL)

	return books, nil
}

func (s *bookService) Search(ctx context.Context, q dto.SearchQuery) ([]model.Book, error) {
	if q.Empty() {
		return nil, domainErrors.ErrSearchQueryEmpty
	}

	key := searchKey(q)

	var cached []model.Book
	if ok := s.cacheLookup(ctx, key, &cached); ok {
		return cached, nil
	}

	books, err := s.bookRepo.SearchBooks(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, domainErrors.ErrBookNotFound
	}

	s.deferCacheSet(key, books, s.cfg.BookListCacheTTL)

	return books, nil
}

func (s *bookService) ListAll(ctx context.Context) ([]model.Book, error) {
	books, err := s.bookRepo.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, domainErrors.ErrBookNotFound
	}
	return books, nil
}

func (s *bookService) Create(ctx context.Context, d dto.CreateBookDTO) (model.Book, error) {
	if d.ISBN == "" || d.Title == "" {
		return model.Book{}, domainErrors.NewInvalidArgument("isbn and title are required")
	}

	book := model.Book{
		ISBN:            d.ISBN,
		Title:           d.Title,
		Language:        d.Language,
		PublicationDate: d.PublicationDate,
	}
	for _, name := range d.Authors {
		book.Authors = append(book.Authors, model.Author{Name: name})
	}
	for _, name := range d.Categories {
		book.Categories = append(book.Categories, model.Category{Name: name})
	}

	created, err := s.bookRepo.CreateBook(ctx, book)
	if err != nil {
		return model.Book{}, err
	}

	s.deferCacheSet(isbnKey(created.ISBN), created, s.cfg.BookCacheTTL)

	return created, nil
}

// cacheLookup deserializes a fast-store hit into out. A corrupt entry is
// treated as a miss.
func (s *bookService) cacheLookup(ctx context.Context, key string, out any) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !domainErrors.IsNotFound(err) {
			s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// deferCacheSet serializes now and schedules the write-through so the
// response is never blocked on the fast store.
func (s *bookService) deferCacheSet(key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("cache serialize failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.worker.Enqueue("cache-set "+key, func(ctx context.Context) error {
		return s.cache.Set(ctx, key, string(raw), ttl)
	})
}

// deferBookCreate persists an externally fetched book so future lookups hit
// the authoritative store instead of the catalog.
func (s *bookService) deferBookCreate(book model.Book) {
	s.worker.Enqueue("book-create "+book.ISBN, func(ctx context.Context) error {
		_, err := s.bookRepo.CreateBook(ctx, book)
		return err
	})
}
