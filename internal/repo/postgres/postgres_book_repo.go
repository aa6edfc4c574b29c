package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/books/dto"
	"github.com/shelfmark/shelfmark/internal/books/model"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

type PostgresBookRepo struct {
	db *gorm.DB
}

func NewPostgresBookRepo(db *gorm.DB) *PostgresBookRepo {
	return &PostgresBookRepo{db: db}
}

func (p *PostgresBookRepo) CreateBook(ctx context.Context, b model.Book) (model.Book, error) {
	db := p.db.WithContext(ctx)

	// Authors and categories are shared rows, looked up by name before the
	// book row is inserted with its associations.
	for i := range b.Authors {
		author := model.Author{Name: b.Authors[i].Name}
		if err := db.Where("name = ?", author.Name).FirstOrCreate(&author).Error; err != nil {
			return model.Book{}, domainErrors.WrapInternal(err, "CreateBook author")
		}
		b.Authors[i] = author
	}
	for i := range b.Categories {
		category := model.Category{Name: strings.ToLower(b.Categories[i].Name)}
		if err := db.Where("name = ?", category.Name).FirstOrCreate(&category).Error; err != nil {
			return model.Book{}, domainErrors.WrapInternal(err, "CreateBook category")
		}
		b.Categories[i] = category
	}

	if err := db.Create(&b).Error; err != nil {
		return model.Book{}, domainErrors.WrapInternal(err, "CreateBook")
	}
	return b, nil
}

func (p *PostgresBookRepo) GetBookByISBN(ctx context.Context, isbn string) (model.Book, error) {
	var b model.Book
	res := p.db.WithContext(ctx).
		Preload("Authors").
		Preload("Categories").
		Where("isbn = ?", isbn).
		First(&b)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Book{}, domainErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Book{}, domainErrors.WrapInternal(err, "GetBookByISBN")
	}

	return b, nil
}

func (p *PostgresBookRepo) GetBooksByCategory(ctx context.Context, category string) ([]model.Book, error) {
	var books []model.Book
	res := p.db.WithContext(ctx).
		Preload("Authors").
		Preload("Categories").
		Joins("JOIN book_categories bc ON bc.book_id = books.id").
		Joins("JOIN categories c ON c.id = bc.category_id").
		Where("c.name = ?", strings.ToLower(category)).
		Distinct("books.*").
		Find(&books)
	if err := res.Error; err != nil {
		return nil, domainErrors.WrapInternal(err, "GetBooksByCategory")
	}

	return books, nil
}

func (p *PostgresBookRepo) SearchBooks(ctx context.Context, q dto.SearchQuery) ([]model.Book, error) {
	query := p.db.WithContext(ctx).
		Model(&model.Book{}).
		Preload("Authors").
		Preload("Categories")

	if q.Title != "" {
		query = query.Where("books.title = ?", q.Title)
	}
	if q.Author != "" {
		query = query.
			Joins("JOIN book_authors ba ON ba.book_id = books.id").
			Joins("JOIN authors a ON a.id = ba.author_id").
			Where("a.name = ?", q.Author)
	}
	if q.PublicationDate != "" {
		query = query.Where("books.publication_date = ?", q.PublicationDate)
	}
	if q.ISBN != "" {
		query = query.Where("books.isbn = ?", q.ISBN)
	}

	var books []model.Book
	if err := query.Distinct("books.*").Find(&books).Error; err != nil {
		return nil, domainErrors.WrapInternal(err, "SearchBooks")
	}

	return books, nil
}

func (p *PostgresBookRepo) ListBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	res := p.db.WithContext(ctx).
		Preload("Authors").
		Preload("Categories").
		Find(&books)
	if err := res.Error; err != nil {
		return nil, domainErrors.WrapInternal(err, "ListBooks")
	}

	return books, nil
}
