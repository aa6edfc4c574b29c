package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shelfmark/shelfmark/internal/books/model"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

// Client looks up books in the Google Books volumes API. It is treated as an
// unreliable collaborator: absence and transport failure are reported
// separately so the caller can decide how to degrade.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Language      string   `json:"language"`
			PublishedDate string   `json:"publishedDate"`
			Authors       []string `json:"authors"`
			Categories    []string `json:"categories"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// LookupISBN returns (nil, nil) when the catalog has no such volume.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*model.Book, error) {
	endpoint := fmt.Sprintf("%s/books/v1/volumes?q=%s",
		c.baseURL, url.QueryEscape("isbn:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domainErrors.WrapInternal(err, "google books request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domainErrors.WrapInternal(err, "google books call")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainErrors.WrapInternal(
			fmt.Errorf("unexpected status %d", resp.StatusCode), "google books call")
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domainErrors.WrapInternal(err, "google books decode")
	}

	if body.TotalItems == 0 || len(body.Items) == 0 {
		return nil, nil
	}

	info := body.Items[0].VolumeInfo
	book := &model.Book{
		ISBN:            isbn,
		Title:           info.Title,
		Language:        info.Language,
		PublicationDate: info.PublishedDate,
	}
	for _, name := range info.Authors {
		book.Authors = append(book.Authors, model.Author{Name: name})
	}
	for _, name := range info.Categories {
		book.Categories = append(book.Categories, model.Category{Name: name})
	}

	return book, nil
}
