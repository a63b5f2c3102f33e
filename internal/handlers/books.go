package handlers

//go:generate mockgen -source=books.go -destination=books_mock.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/jwt"
	"github.com/sbilibin2017/bookly/internal/models"
)

// BookUIDParam is the chi URL parameter holding the book uid.
const BookUIDParam = "book_uid"

// BookLister lists the catalog.
type BookLister interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
}

// BookCreator creates books.
type BookCreator interface {
	CreateBook(ctx context.Context, req models.BookCreateRequest, owner *uuid.UUID) (*models.Book, error)
}

// BookGetter fetches a single book.
type BookGetter interface {
	GetBook(ctx context.Context, uid uuid.UUID) (*models.Book, error)
}

// BookUpdater updates books.
type BookUpdater interface {
	UpdateBook(ctx context.Context, uid uuid.UUID, req models.BookUpdateRequest) (*models.Book, error)
}

// BookDeleter deletes books.
type BookDeleter interface {
	DeleteBook(ctx context.Context, uid uuid.UUID) (*models.Book, error)
}

// NewListBooksHandler returns an HTTP handler listing all books.
// @Summary List books
// @Description Return every book in the catalog, newest first
// @Tags books
// @Produce json
// @Success 200 {array} models.Book "Books"
// @Failure 401 {object} models.ErrorResponse "Invalid or missing access token"
// @Router /books/ [get]
// @Security BearerAuth
func NewListBooksHandler(svc BookLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := svc.ListBooks(r.Context())
		if err != nil {
			apperrors.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, books)
	}
}

// NewCreateBookHandler returns an HTTP handler creating a book owned by the caller.
// @Summary Create book
// @Description Add a book to the catalog. The authenticated user becomes its owner.
// @Tags books
// @Accept json
// @Produce json
// @Param request body models.BookCreateRequest true "Book"
// @Success 201 {object} models.Book "Created book"
// @Failure 401 {object} models.ErrorResponse "Invalid or missing access token"
// @Failure 422 {object} models.ErrorResponse "Invalid request body"
// @Router /books/ [post]
// @Security BearerAuth
func NewCreateBookHandler(svc BookCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.BookCreateRequest
		if err := decodeRequest(r, &req); err != nil {
			apperrors.Write(w, err)
			return
		}

		var owner *uuid.UUID
		if claims := jwt.ClaimsFromContext(r.Context()); claims != nil {
			uid := claims.User.UserUID
			owner = &uid
		}

		book, err := svc.CreateBook(r.Context(), req, owner)
		if err != nil {
			apperrors.Write(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, book)
	}
}

// NewGetBookHandler returns an HTTP handler fetching one book.
// @Summary Get book
// @Tags books
// @Produce json
// @Param book_uid path string true "Book UID"
// @Success 200 {object} models.Book "Book"
// @Failure 401 {object} models.ErrorResponse "Invalid or missing access token"
// @Failure 404 {object} models.ErrorResponse "Book not found"
// @Router /books/{book_uid} [get]
// @Security BearerAuth
func NewGetBookHandler(svc BookGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := bookUIDFromRequest(r)
		if err != nil {
			apperrors.Write(w, err)
			return
		}

		book, err := svc.GetBook(r.Context(), uid)
		if err != nil {
			apperrors.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}

// NewUpdateBookHandler returns an HTTP handler applying a partial update to a book.
// @Summary Update book
// @Description Overwrite the provided fields. published_date cannot be changed.
// @Tags books
// @Accept json
// @Produce json
// @Param book_uid path string true "Book UID"
// @Param request body models.BookUpdateRequest true "Fields to change"
// @Success 200 {object} models.Book "Updated book"
// @Failure 401 {object} models.ErrorResponse "Invalid or missing access token"
// @Failure 404 {object} models.ErrorResponse "Book not found"
// @Failure 422 {object} models.ErrorResponse "Invalid request body"
// @Router /books/{book_uid} [patch]
// @Security BearerAuth
func NewUpdateBookHandler(svc BookUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := bookUIDFromRequest(r)
		if err != nil {
			apperrors.Write(w, err)
			return
		}

		var req models.BookUpdateRequest
		if err := decodeRequest(r, &req); err != nil {
			apperrors.Write(w, err)
			return
		}

		book, err := svc.UpdateBook(r.Context(), uid, req)
		if err != nil {
			apperrors.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}

// NewDeleteBookHandler returns an HTTP handler deleting a book.
// @Summary Delete book
// @Tags books
// @Produce json
// @Param book_uid path string true "Book UID"
// @Success 200 {object} models.Book "Deleted book"
// @Failure 401 {object} models.ErrorResponse "Invalid or missing access token"
// @Failure 404 {object} models.ErrorResponse "Book not found"
// @Router /books/{book_uid} [delete]
// @Security BearerAuth
func NewDeleteBookHandler(svc BookDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := bookUIDFromRequest(r)
		if err != nil {
			apperrors.Write(w, err)
			return
		}

		book, err := svc.DeleteBook(r.Context(), uid)
		if err != nil {
			apperrors.Write(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}

// bookUIDFromRequest parses the book_uid URL parameter.
// A value that is not a uuid cannot name a book.
func bookUIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, BookUIDParam)
	uid, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", apperrors.ErrBookNotFound, raw)
	}
	return uid, nil
}
