package dto

// SearchQuery is a multi-field book search. Set fields are ANDed together.
type SearchQuery struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationDate string `json:"publication_date"`
	ISBN            string `json:"isbn"`
}

func (q SearchQuery) Empty() bool {
	return q.Title == "" && q.Author == "" && q.PublicationDate == "" && q.ISBN == ""
}

type CreateBookDTO struct {
	ISBN            string   `json:"isbn"             validate:"required"`
	Title           string   `json:"title"            validate:"required"`
	Language        string   `json:"language"`
	PublicationDate string   `json:"publication_date"`
	Authors         []string `json:"authors"`
	Categories      []string `json:"categories"`
}
