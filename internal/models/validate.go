package models

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinPasswordLength is the shortest password accepted on signup.
const MinPasswordLength = 6

// Validate will validate the payload
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
		validation.Field(&r.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLength, 72)),
	)
}

// Validate will validate the payload
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Validate will validate the payload
func (r BookCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Publisher, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.PublishedDate, validation.By(requiredDate)),
		validation.Field(&r.PageCount, validation.Required, validation.Min(1), validation.Max(math.MaxInt32)),
		validation.Field(&r.Language, validation.Required, validation.Length(1, 50)),
	)
}

// Validate will validate the payload. Absent fields are not checked.
func (r BookUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Publisher, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.PageCount, validation.NilOrNotEmpty, validation.Min(1), validation.Max(math.MaxInt32)),
		validation.Field(&r.Language, validation.NilOrNotEmpty, validation.Length(1, 50)),
	)
}

func requiredDate(value interface{}) error {
	d, ok := value.(Date)
	if !ok || d.IsZero() {
		return errors.New("cannot be blank")
	}
	return nil
}
