package repo

import (
	"context"

	"github.com/shelfmark/shelfmark/internal/books/dto"
	"github.com/shelfmark/shelfmark/internal/books/model"
)

type BookRepo interface {
	CreateBook(ctx context.Context, b model.Book) (model.Book, error)

	GetBookByISBN(ctx context.Context, isbn string) (model.Book, error)

	GetBooksByCategory(ctx context.Context, category string) ([]model.Book, error)

	SearchBooks(ctx context.Context, q dto.SearchQuery) ([]model.Book, error)

	ListBooks(ctx context.Context) ([]model.Book, error)
}
