package model

import (
	"strings"

	"gorm.io/gorm"
)

type Book struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	ISBN            string     `gorm:"column:isbn;uniqueIndex;not null" json:"isbn"`
	Title           string     `gorm:"not null" json:"title"`
	Language        string     `json:"language"`
	PublicationDate string     `json:"publication_date"`
	Authors         []Author   `gorm:"many2many:book_authors" json:"authors"`
	Categories      []Category `gorm:"many2many:book_categories" json:"categories"`
}

func (Book) TableName() string { return "books" }

type Author struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"index;not null" json:"name"`
}

func (Author) TableName() string { return "authors" }

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"index;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }

// Category names are canonicalized at the model boundary so that lookups by
// category never have to care about case.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.ToLower(c.Name)
	return nil
}

type BookList struct {
	Books []Book `json:"books"`
}
