package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"date only", `"2020-01-01"`, NewDate(2020, time.January, 1), false},
		{"rfc3339", `"2020-01-01T15:04:05Z"`, NewDate(2020, time.January, 1), false},
		{"garbage", `"first of january"`, Date{}, true},
		{"not a string", `20200101`, Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time))

			out, err := json.Marshal(d)
			require.NoError(t, err)
			assert.Equal(t, `"2020-01-01"`, string(out))
		})
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2021, time.March, 4, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2021-03-04", d.String())

	require.NoError(t, d.Scan("2022-05-06"))
	assert.Equal(t, "2022-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2023-07-08")))
	assert.Equal(t, "2023-07-08", d.String())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2020, time.January, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), v)
}

func TestBookUpdateRequest_Apply(t *testing.T) {
	book := Book{Title: "Old", Author: "A", Publisher: "P", PageCount: 10, Language: "en"}
	title := "New"
	pages := 250

	BookUpdateRequest{Title: &title, PageCount: &pages}.Apply(&book)

	assert.Equal(t, "New", book.Title)
	assert.Equal(t, 250, book.PageCount)
	assert.Equal(t, "A", book.Author)
	assert.Equal(t, "P", book.Publisher)
	assert.Equal(t, "en", book.Language)
}
