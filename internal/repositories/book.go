package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/bookly/internal/logger"
	"github.com/sbilibin2017/bookly/internal/models"
)

const bookColumns = `uid, title, author, publisher, published_date, page_count, language, user_uid, created_at, updated_at`

// BookReadRepository handles book read operations
type BookReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewBookReadRepository(db *sqlx.DB, txGetter TxGetter) *BookReadRepository {
	return &BookReadRepository{db: db, txGetter: txGetter}
}

// List returns all books, newest first.
func (r *BookReadRepository) List(ctx context.Context) ([]models.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		ORDER BY created_at DESC
	`

	books := []models.Book{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &books, query)

	logger.Log.Infow(
		"query", oneLine(query),
		"result", len(books),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return books, nil
}

// GetByUID returns the book with the given uid, or nil when there is none.
func (r *BookReadRepository) GetByUID(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE uid = $1
	`

	return getBook(ctx, executor(ctx, r.db, r.txGetter), query, uid)
}

// BookWriteRepository handles book write operations
type BookWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewBookWriteRepository(db *sqlx.DB, txGetter TxGetter) *BookWriteRepository {
	return &BookWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new book and returns the stored row.
func (r *BookWriteRepository) Save(ctx context.Context, book *models.Book) (*models.Book, error) {
	query := `
		INSERT INTO books (uid, title, author, publisher, published_date, page_count, language, user_uid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + bookColumns

	return getBook(ctx, executor(ctx, r.db, r.txGetter), query,
		book.UID, book.Title, book.Author, book.Publisher,
		book.PublishedDate, book.PageCount, book.Language, book.UserUID,
	)
}

// Update overwrites the mutable fields of a book and bumps updated_at.
// It returns nil when the book does not exist.
func (r *BookWriteRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	query := `
		UPDATE books
		SET title = $2, author = $3, publisher = $4, page_count = $5, language = $6, updated_at = NOW()
		WHERE uid = $1
		RETURNING ` + bookColumns

	return getBook(ctx, executor(ctx, r.db, r.txGetter), query,
		book.UID, book.Title, book.Author, book.Publisher, book.PageCount, book.Language,
	)
}

// Delete removes a book and returns the deleted row, or nil when it did not exist.
func (r *BookWriteRepository) Delete(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	query := `
		DELETE FROM books
		WHERE uid = $1
		RETURNING ` + bookColumns

	return getBook(ctx, executor(ctx, r.db, r.txGetter), query, uid)
}

// getBook runs a query returning at most one book row. No rows yields nil, nil.
func getBook(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (*models.Book, error) {
	var book models.Book
	err := sqlx.GetContext(ctx, q, &book, query, args...)

	logger.Log.Infow(
		"query", oneLine(query),
		"args", args,
		"result", book.UID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}
