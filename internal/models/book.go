package models

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a book row in the database
// swagger:model Book
type Book struct {
	UID           uuid.UUID  `json:"uid" db:"uid"`                                                          // Unique book identifier
	Title         string     `json:"title" db:"title"`                                                      // Book title
	Author        string     `json:"author" db:"author"`                                                    // Author name
	Publisher     string     `json:"publisher" db:"publisher"`                                              // Publisher name
	PublishedDate Date       `json:"published_date" db:"published_date" swaggertype:"string" format:"date"` // Publication day
	PageCount     int        `json:"page_count" db:"page_count"`                                            // Number of pages
	Language      string     `json:"language" db:"language"`                                                // Language code or name
	UserUID       *uuid.UUID `json:"user_uid,omitempty" db:"user_uid"`                                      // Owning user, if any
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`                                            // Creation timestamp
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`                                            // Last update timestamp
}

// BookCreateRequest represents the JSON body for creating a book
// swagger:model BookCreateRequest
type BookCreateRequest struct {
	// required: true
	// example: The Go Programming Language
	Title string `json:"title"`

	// required: true
	// example: Alan Donovan
	Author string `json:"author"`

	// required: true
	// example: Addison-Wesley
	Publisher string `json:"publisher"`

	// required: true
	// example: 2015-10-26
	PublishedDate Date `json:"published_date" swaggertype:"string" format:"date"`

	// required: true
	// example: 380
	PageCount int `json:"page_count"`

	// required: true
	// example: en
	Language string `json:"language"`
}

// BookUpdateRequest represents the JSON body for updating a book.
// Omitted fields keep their stored value.
// swagger:model BookUpdateRequest
type BookUpdateRequest struct {
	Title     *string `json:"title,omitempty"`
	Author    *string `json:"author,omitempty"`
	Publisher *string `json:"publisher,omitempty"`
	PageCount *int    `json:"page_count,omitempty"`
	Language  *string `json:"language,omitempty"`
}

// Apply copies the provided fields onto book.
func (r BookUpdateRequest) Apply(book *Book) {
	if r.Title != nil {
		book.Title = *r.Title
	}
	if r.Author != nil {
		book.Author = *r.Author
	}
	if r.Publisher != nil {
		book.Publisher = *r.Publisher
	}
	if r.PageCount != nil {
		book.PageCount = *r.PageCount
	}
	if r.Language != nil {
		book.Language = *r.Language
	}
}
