package services

//go:generate mockgen -source=book.go -destination=book_mock.go -package=services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/logger"
	"github.com/sbilibin2017/bookly/internal/middlewares"
	"github.com/sbilibin2017/bookly/internal/models"
	"github.com/segmentio/kafka-go"
)

// BookReader defines read-only operations for books.
type BookReader interface {
	List(ctx context.Context) ([]models.Book, error)
	GetByUID(ctx context.Context, uid uuid.UUID) (*models.Book, error)
}

// BookWriter defines write operations for books.
type BookWriter interface {
	Save(ctx context.Context, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) (*models.Book, error)
	Delete(ctx context.Context, uid uuid.UUID) (*models.Book, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// BookService handles catalog operations and Kafka publishing.
type BookService struct {
	reader      BookReader
	writer      BookWriter
	kafkaWriter KafkaWriter
}

// NewBookService creates a new BookService. kafkaWriter may be nil.
func NewBookService(reader BookReader, writer BookWriter, kafkaWriter KafkaWriter) *BookService {
	return &BookService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// ListBooks returns the whole catalog, newest first.
func (s *BookService) ListBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list books", "error", err)
		return nil, err
	}
	return books, nil
}

// CreateBook stores a new book owned by owner (nil for no owner).
func (s *BookService) CreateBook(ctx context.Context, req models.BookCreateRequest, owner *uuid.UUID) (*models.Book, error) {
	book, err := s.writer.Save(ctx, &models.Book{
		UID:           uuid.New(),
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Language:      req.Language,
		UserUID:       owner,
	})
	if err != nil {
		logger.Log.Errorw("failed to save book", "title", req.Title, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.BookCreated, book)
	return book, nil
}

// GetBook returns the book with uid or apperrors.ErrBookNotFound.
func (s *BookService) GetBook(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	book, err := s.reader.GetByUID(ctx, uid)
	if err != nil {
		logger.Log.Errorw("failed to get book", "book_uid", uid, "error", err)
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBookNotFound, uid)
	}
	return book, nil
}

// UpdateBook applies the provided fields to an existing book.
func (s *BookService) UpdateBook(ctx context.Context, uid uuid.UUID, req models.BookUpdateRequest) (*models.Book, error) {
	book, err := s.GetBook(ctx, uid)
	if err != nil {
		return nil, err
	}

	req.Apply(book)

	updated, err := s.writer.Update(ctx, book)
	if err != nil {
		logger.Log.Errorw("failed to update book", "book_uid", uid, "error", err)
		return nil, err
	}
	// deleted between the read and the write
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBookNotFound, uid)
	}

	s.publishEvent(ctx, models.BookUpdated, updated)
	return updated, nil
}

// DeleteBook removes a book and returns the removed record.
func (s *BookService) DeleteBook(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	book, err := s.writer.Delete(ctx, uid)
	if err != nil {
		logger.Log.Errorw("failed to delete book", "book_uid", uid, "error", err)
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBookNotFound, uid)
	}

	s.publishEvent(ctx, models.BookDeleted, book)
	return book, nil
}

// publishEvent publishes a book change to Kafka once the request transaction
// has been committed. Failures are logged only.
func (s *BookService) publishEvent(ctx context.Context, operation string, book *models.Book) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "book_uid", book.UID)
		return
	}

	event := models.BookEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		BookUID:   book.UID.String(),
		Operation: operation,
	}
	if book.UserUID != nil {
		event.UserUID = book.UserUID.String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal book event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.BookUID),
		Value: data,
	}

	middlewares.AfterCommit(ctx, func() {
		if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
			logger.Log.Errorw("Failed to publish book event to Kafka", "event_id", event.EventID, "error", err)
		} else {
			logger.Log.Infow("Book event published to Kafka", "event_id", event.EventID, "operation", operation)
		}
	})
}
