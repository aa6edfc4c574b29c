package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookservice "github.com/shelfmark/shelfmark/internal/books/service"

	"github.com/shelfmark/shelfmark/internal/books/dto"
	"github.com/shelfmark/shelfmark/internal/books/model"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

type bookHandler struct {
	svc bookservice.BookService
}

// validISBN10 checks the ISBN-10 checksum: positions weighted 10..1, the
// last symbol may be X for the value 10, total divisible by 11.
func validISBN10(isbn string) bool {
	if len(isbn) != 10 {
		return false
	}
	sum := 0
	for i, r := range isbn {
		var digit int
		switch {
		case r >= '0' && r <= '9':
			digit = int(r - '0')
		case (r == 'X' || r == 'x') && i == 9:
			digit = 10
		default:
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

func (h *bookHandler) getByISBN(c *gin.Context) {
	isbn := c.Param("isbn")
	if !validISBN10(isbn) {
		handleError(c, domainErrors.ErrInvalidISBN)
		return
	}

	book, err := h.svc.GetByISBN(c.Request.Context(), isbn)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *bookHandler) getByCategory(c *gin.Context) {
	books, err := h.svc.GetByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BookList{Books: books})
}

func (h *bookHandler) search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	books, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BookList{Books: books})
}

func (h *bookHandler) listAll(c *gin.Context) {
	books, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BookList{Books: books})
}

func (h *bookHandler) create(c *gin.Context) {
	var body dto.CreateBookDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	book, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}
