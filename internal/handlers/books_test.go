package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/jwt"
	"github.com/sbilibin2017/bookly/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBookUID(r *http.Request, uid string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(BookUIDParam, uid)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func sampleBook() *models.Book {
	return &models.Book{
		UID:           uuid.New(),
		Title:         "Dune",
		Author:        "Frank Herbert",
		Publisher:     "Chilton",
		PublishedDate: models.NewDate(1965, time.August, 1),
		PageCount:     412,
		Language:      "en",
	}
}

func TestListBooksHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockBookLister(ctrl)

	t.Run("success", func(t *testing.T) {
		books := []models.Book{*sampleBook(), *sampleBook()}
		mockSvc.EXPECT().ListBooks(gomock.Any()).Return(books, nil)

		w := httptest.NewRecorder()
		NewListBooksHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, "1965-08-01", got[0]["published_date"])
	})

	t.Run("empty catalog", func(t *testing.T) {
		mockSvc.EXPECT().ListBooks(gomock.Any()).Return([]models.Book{}, nil)

		w := httptest.NewRecorder()
		NewListBooksHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.EXPECT().ListBooks(gomock.Any()).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		NewListBooksHandler(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeError(t, w).Error)
	})
}

func TestCreateBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockBookCreator(ctrl)

	owner := uuid.New()
	claims := &jwt.Claims{User: jwt.UserIdentity{Email: "john@example.com", UserUID: owner}}
	validBody := `{"title":"Dune","author":"Frank Herbert","publisher":"Chilton","published_date":"1965-08-01","page_count":412,"language":"en"}`

	tests := []struct {
		name          string
		body          string
		mockSetup     func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "success",
			body: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().
					CreateBook(gomock.Any(), gomock.Any(), &owner).
					DoAndReturn(func(_ context.Context, req models.BookCreateRequest, o *uuid.UUID) (*models.Book, error) {
						assert.Equal(t, "Dune", req.Title)
						assert.Equal(t, "1965-08-01", req.PublishedDate.String())
						book := sampleBook()
						book.UserUID = o
						return book, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "invalid JSON",
			body:          "{invalid json}",
			mockSetup:     func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request body",
		},
		{
			name:          "bad date",
			body:          `{"title":"Dune","author":"F","publisher":"C","published_date":"08/01/1965","page_count":412,"language":"en"}`,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request body",
		},
		{
			name:          "missing fields",
			body:          `{"title":"Dune"}`,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request body",
		},
		{
			name:          "negative page count",
			body:          `{"title":"Dune","author":"F","publisher":"C","published_date":"1965-08-01","page_count":-1,"language":"en"}`,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request body",
		},
		{
			name:          "page count above integer column range",
			body:          `{"title":"Dune","author":"F","publisher":"C","published_date":"1965-08-01","page_count":3000000000,"language":"en"}`,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request body",
		},
		{
			name: "internal error",
			body: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().CreateBook(gomock.Any(), gomock.Any(), &owner).Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/books/", encodeBody(t, tt.body))
			req = req.WithContext(jwt.WithClaims(req.Context(), claims))
			w := httptest.NewRecorder()

			NewCreateBookHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
				return
			}

			var got map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, owner.String(), got["user_uid"])
		})
	}
}

func TestGetBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockBookGetter(ctrl)

	book := sampleBook()

	tests := []struct {
		name          string
		uid           string
		mockSetup     func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "success",
			uid:  book.UID.String(),
			mockSetup: func() {
				mockSvc.EXPECT().GetBook(gomock.Any(), book.UID).Return(book, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not found",
			uid:  book.UID.String(),
			mockSetup: func() {
				mockSvc.EXPECT().
					GetBook(gomock.Any(), book.UID).
					Return(nil, fmt.Errorf("%w: %s", apperrors.ErrBookNotFound, book.UID))
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Book not found",
		},
		{
			name:          "malformed uid",
			uid:           "not-a-uuid",
			mockSetup:     func() {},
			expectedCode:  http.StatusNotFound,
			expectedError: "Book not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := withBookUID(httptest.NewRequest(http.MethodGet, "/api/v1/books/"+tt.uid, nil), tt.uid)
			w := httptest.NewRecorder()

			NewGetBookHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
				return
			}
			var got models.Book
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, book.UID, got.UID)
			assert.Equal(t, book.Title, got.Title)
		})
	}
}

func TestUpdateBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockBookUpdater(ctrl)

	book := sampleBook()

	tests := []struct {
		name          string
		uid           string
		body          string
		mockSetup     func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "success",
			uid:  book.UID.String(),
			body: `{"title":"Dune Messiah","page_count":256}`,
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateBook(gomock.Any(), book.UID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, req models.BookUpdateRequest) (*models.Book, error) {
						require.NotNil(t, req.Title)
						assert.Equal(t, "Dune Messiah", *req.Title)
						require.NotNil(t, req.PageCount)
						assert.Equal(t, 256, *req.PageCount)
						assert.Nil(t, req.Author)
						updated := *book
						updated.Title = *req.Title
						return &updated, nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not found",
			uid:  book.UID.String(),
			body: `{"title":"X"}`,
			mockSetup: func() {
				mockSvc.EXPECT().UpdateBook(gomock.Any(), book.UID, gomock.Any()).Return(nil, apperrors.ErrBookNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Book not found",
		},
		{
			name:          "malformed uid",
			uid:           "123",
			body:          `{"title":"X"}`,
			mockSetup:     func() {},
			expectedCode:  http.StatusNotFound,
			expectedError: "Book not found",
		},
		{
			name:          "empty title",
			uid:           book.UID.String(),
			body:          `{"title":""}`,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request body",
		},
		{
			name:          "page count above integer column range",
			uid:           book.UID.String(),
			body:          `{"page_count":3000000000}`,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request body",
		},
		{
			name:          "invalid JSON",
			uid:           book.UID.String(),
			body:          `{"title":`,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := withBookUID(httptest.NewRequest(http.MethodPatch, "/api/v1/books/"+tt.uid, encodeBody(t, tt.body)), tt.uid)
			w := httptest.NewRecorder()

			NewUpdateBookHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
				return
			}
			var got models.Book
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, "Dune Messiah", got.Title)
		})
	}
}

func TestDeleteBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockBookDeleter(ctrl)

	book := sampleBook()

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().DeleteBook(gomock.Any(), book.UID).Return(book, nil)

		req := withBookUID(httptest.NewRequest(http.MethodDelete, "/", nil), book.UID.String())
		w := httptest.NewRecorder()
		NewDeleteBookHandler(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got models.Book
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, book.UID, got.UID)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.EXPECT().DeleteBook(gomock.Any(), book.UID).Return(nil, apperrors.ErrBookNotFound)

		req := withBookUID(httptest.NewRequest(http.MethodDelete, "/", nil), book.UID.String())
		w := httptest.NewRecorder()
		NewDeleteBookHandler(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", decodeError(t, w).Error)
	})
}
