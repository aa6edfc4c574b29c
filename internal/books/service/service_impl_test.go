package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelfmark/shelfmark/internal/books/dto"
	"github.com/shelfmark/shelfmark/internal/books/model"
	"github.com/shelfmark/shelfmark/internal/config"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
	"github.com/shelfmark/shelfmark/internal/worker"
)

type bookRepoStub struct {
	mu       sync.Mutex
	byISBN   map[string]model.Book
	byCat    map[string][]model.Book
	searches [][]model.Book
	gets     int
	creates  int
}

func (b *bookRepoStub) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.creates++
	b.byISBN[book.ISBN] = book
	return book, nil
}

func (b *bookRepoStub) GetBookByISBN(ctx context.Context, isbn string) (model.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gets++
	book, ok := b.byISBN[isbn]
	if !ok {
		return model.Book{}, domainErrors.ErrNotFound
	}
	return book, nil
}

func (b *bookRepoStub) GetBooksByCategory(ctx context.Context, category string) ([]model.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.byCat[category], nil
}

func (b *bookRepoStub) SearchBooks(ctx context.Context, q dto.SearchQuery) ([]model.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.searches) == 0 {
		return nil, nil
	}
	res := b.searches[0]
	b.searches = b.searches[1:]
	return res, nil
}

func (b *bookRepoStub) ListBooks(ctx context.Context) ([]model.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var all []model.Book
	for _, book := range b.byISBN {
		all = append(all, book)
	}
	return all, nil
}

type cacheStub struct {
	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (c *cacheStub) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return "", domainErrors.ErrNotFound
	}
	return v, nil
}

func (c *cacheStub) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *cacheStub) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

type externalStub struct {
	book *model.Book
	err  error
}

func (e *externalStub) LookupISBN(ctx context.Context, isbn string) (*model.Book, error) {
	return e.book, e.err
}

type fixture struct {
	svc    BookService
	repo   *bookRepoStub
	cache  *cacheStub
	ext    *externalStub
	worker *worker.Worker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := &bookRepoStub{byISBN: make(map[string]model.Book), byCat: make(map[string][]model.Book)}
	cache := newCacheStub()
	ext := &externalStub{}
	w := worker.New(zap.NewNop(), 16)
	cfg := &config.Config{BookCacheTTL: time.Hour, BookListCacheTTL: 20 * time.Minute}
	return &fixture{
		svc:    NewBookService(repo, cache, ext, w, cfg, zap.NewNop()),
		repo:   repo,
		cache:  cache,
		ext:    ext,
		worker: w,
	}
}

var leGuin = model.Book{
	ISBN:            "0704334801",
	Title:           "The Left Hand of Darkness",
	Language:        "en",
	PublicationDate: "1969",
	Authors:         []model.Author{{Name: "Ursula K. Le Guin"}},
	Categories:      []model.Category{{Name: "fiction"}},
}

func TestGetByISBN_CacheHitSkipsStores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cache.Set(ctx, "book:0704334801", `{"isbn":"0704334801","title":"cached"}`, time.Hour))

	book, err := f.svc.GetByISBN(ctx, "0704334801")
	require.NoError(t, err)
	require.Equal(t, "cached", book.Title)
	require.Zero(t, f.repo.gets, "authoritative store must not be touched on a cache hit")
}

func TestGetByISBN_DBHitRepopulatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.byISBN[leGuin.ISBN] = leGuin

	book, err := f.svc.GetByISBN(ctx, leGuin.ISBN)
	require.NoError(t, err)
	require.Equal(t, leGuin.Title, book.Title)

	// Drain the deferred write, then the cache must serve the next call.
	f.worker.Close()
	require.Contains(t, f.cache.entries, "book:0704334801")
	require.Equal(t, time.Hour, f.cache.ttls["book:0704334801"])

	again, err := f.svc.GetByISBN(ctx, leGuin.ISBN)
	require.NoError(t, err)
	require.Equal(t, leGuin.Title, again.Title)
	require.Equal(t, 1, f.repo.gets, "second lookup must be a cache hit")
}

func TestGetByISBN_ExternalHitPopulatesBothTiers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ext.book = &leGuin

	book, err := f.svc.GetByISBN(ctx, leGuin.ISBN)
	require.NoError(t, err)
	require.Equal(t, leGuin.Title, book.Title)

	f.worker.Close()
	require.Equal(t, 1, f.repo.creates, "external hit must create the authoritative row")
	require.Contains(t, f.cache.entries, "book:0704334801")
}

func TestGetByISBN_AllTiersMiss(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByISBN(context.Background(), "0000000000")
	require.True(t, domainErrors.IsBookNotFound(err))
}

func TestGetByISBN_ExternalFailureFallsThrough(t *testing.T) {
	f := newFixture(t)
	f.ext.err = errors.New("catalog unreachable")

	_, err := f.svc.GetByISBN(context.Background(), "0000000000")
	require.True(t, domainErrors.IsBookNotFound(err))
}

func TestGetByCategory_CaseNormalizedKeyAndTTL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.byCat["FICTION"] = []model.Book{leGuin}

	books, err := f.svc.GetByCategory(ctx, "FICTION")
	require.NoError(t, err)
	require.Len(t, books, 1)

	f.worker.Close()
	require.Contains(t, f.cache.entries, "book:category:fiction")
	require.Equal(t, 20*time.Minute, f.cache.ttls["book:category:fiction"])
}

func TestGetByCategory_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByCategory(context.Background(), "nope")
	require.True(t, domainErrors.IsCategoryNotFound(err))
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Search(context.Background(), dto.SearchQuery{})
	require.True(t, domainErrors.IsSearchQueryEmpty(err))
}

func TestSearch_ListCachedAsWholeUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.searches = [][]model.Book{{leGuin}}

	q := dto.SearchQuery{Author: "Ursula K. Le Guin", PublicationDate: "1969"}
	books, err := f.svc.Search(ctx, q)
	require.NoError(t, err)
	require.Len(t, books, 1)

	f.worker.Close()
	require.Contains(t, f.cache.entries, searchKey(q))

	// The repo search queue is exhausted; a repeated identical query must be
	// answered from the cache.
	again, err := f.svc.Search(ctx, q)
	require.NoError(t, err)
	require.Len(t, again, 1)
}

func TestSearch_DistinctQueriesDoNotShareCacheEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.searches = [][]model.Book{{leGuin}}

	// Field values containing separator-looking text must not collapse into
	// the same cache key as a different query.
	tricky := dto.SearchQuery{Title: "x|author=y"}
	plain := dto.SearchQuery{Title: "x", Author: "y|author="}
	require.NotEqual(t, searchKey(tricky), searchKey(plain))

	_, err := f.svc.Search(ctx, tricky)
	require.NoError(t, err)
	f.worker.Close()
	require.Contains(t, f.cache.entries, searchKey(tricky))

	// The repo search queue is exhausted, so the second query can only be
	// answered by the first one's cache entry. It must miss instead.
	_, err = f.svc.Search(ctx, plain)
	require.True(t, domainErrors.IsBookNotFound(err))
}

func TestSearch_NoResults(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Search(context.Background(), dto.SearchQuery{Title: "nothing"})
	require.True(t, domainErrors.IsBookNotFound(err))
}

func TestCreate_Validates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), dto.CreateBookDTO{})
	require.True(t, domainErrors.IsInvalidArgument(err))

	created, err := f.svc.Create(context.Background(), dto.CreateBookDTO{
		ISBN: "1", Title: "t", Authors: []string{"a"}, Categories: []string{"C"},
	})
	require.NoError(t, err)
	require.Equal(t, "1", created.ISBN)
	require.Equal(t, 1, f.repo.creates)
}
