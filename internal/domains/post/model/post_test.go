package model

import (
	"fmt"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thriven-backend/internal/shared"
)

func TestPost_CanComment(t *testing.T) {
	for _, active := range []bool{true, false} {
		for _, closed := range []bool{true, false} {
			for _, authenticated := range []bool{true, false} {
				name := fmt.Sprintf("active=%v closed=%v auth=%v", active, closed, authenticated)
				t.Run(name, func(t *testing.T) {
					p := &Post{IsActive: active, CommentSectionClosed: closed}
					want := active && !closed && authenticated
					assert.Equal(t, want, p.CanComment(authenticated))
				})
			}
		}
	}
}

func TestPost_ImageRef(t *testing.T) {
	p := &Post{}
	assert.Equal(t, "book_images/default_book.jpg", p.ImageRef())

	key := "book_images/a/b/c.jpg"
	p.Image = &key
	assert.Equal(t, key, p.ImageRef())
}

func TestPost_VisibleTo(t *testing.T) {
	author := uuid.New()
	p := &Post{AuthorID: author, IsActive: false}
	assert.False(t, p.VisibleTo(shared.Anonymous))
	assert.False(t, p.VisibleTo(shared.Viewer{AccountID: uuid.New()}))
	assert.True(t, p.VisibleTo(shared.Viewer{AccountID: author}))

	p.IsActive = true
	assert.True(t, p.VisibleTo(shared.Anonymous))
}

func validPost() *Post {
	return &Post{
		Title:       "The Long Night",
		Genre:       GenreSciFi,
		AgeRating:   Age16,
		SkillLevel:  shared.SkillCasual,
		Description: strings.Repeat("a", 50),
		IsActive:    true,
	}
}

func TestPost_Validate(t *testing.T) {
	require.NoError(t, validPost().Validate())

	tests := []struct {
		name   string
		mutate func(p *Post)
		field  string
	}{
		{"title too short", func(p *Post) { p.Title = "Abcd" }, "title"},
		{"title too long", func(p *Post) { p.Title = strings.Repeat("t", 201) }, "title"},
		{"description too short", func(p *Post) { p.Description = strings.Repeat("d", 49) }, "description"},
		{"description too long", func(p *Post) { p.Description = strings.Repeat("d", 2001) }, "description"},
		{"unknown genre", func(p *Post) { p.Genre = "poetry" }, "genre"},
		{"unknown age rating", func(p *Post) { p.AgeRating = "12+" }, "age_rating"},
		{"missing skill level", func(p *Post) { p.SkillLevel = "" }, "skill_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPost()
			tt.mutate(p)
			var errs validation.Errors
			require.ErrorAs(t, p.Validate(), &errs)
			assert.Contains(t, errs, tt.field)
		})
	}

	p := validPost()
	p.Title = "Abcde"
	p.Description = strings.Repeat("d", 2000)
	assert.NoError(t, p.Validate())
}

func TestUpdatePostRequest_Apply(t *testing.T) {
	p := validPost()
	closed := true
	genre := GenreHorror
	UpdatePostRequest{CommentSectionClosed: &closed, Genre: &genre}.Apply(p)

	assert.True(t, p.CommentSectionClosed)
	assert.Equal(t, GenreHorror, p.Genre)
	assert.Equal(t, "The Long Night", p.Title)
}
