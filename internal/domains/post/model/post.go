package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"thriven-backend/internal/shared"
)

// DefaultPostImage is returned for posts without an uploaded cover
const DefaultPostImage = "book_images/default_book.jpg"

type Genre string

const (
	GenreAction   Genre = "action"
	GenreComedy   Genre = "comedy"
	GenreRomance  Genre = "romance"
	GenreHorror   Genre = "horror"
	GenreSciFi    Genre = "sci-fi"
	GenreFantasy  Genre = "fantasy"
	GenreMystery  Genre = "mystery"
	GenreThriller Genre = "thriller"
	GenreDrama    Genre = "drama"
)

var genres = []interface{}{
	GenreAction, GenreComedy, GenreRomance, GenreHorror, GenreSciFi,
	GenreFantasy, GenreMystery, GenreThriller, GenreDrama,
}

type AgeRating string

const (
	Age14 AgeRating = "14+"
	Age16 AgeRating = "16+"
	Age18 AgeRating = "18+"
)

var ageRatings = []interface{}{Age14, Age16, Age18}

// Post is a book idea submitted by an author
type Post struct {
	ID                   uuid.UUID         `json:"id"`
	AuthorID             uuid.UUID         `json:"author_id"`
	Title                string            `json:"title"`
	Genre                Genre             `json:"genre"`
	AgeRating            AgeRating         `json:"age_rating"`
	SkillLevel           shared.SkillLevel `json:"skill_level"`
	Image                *string           `json:"image,omitempty"`
	Description          string            `json:"description"`
	IsActive             bool              `json:"is_active"`
	CommentSectionClosed bool              `json:"comment_section_closed"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func (p *Post) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required, validation.RuneLength(5, 200)),
		validation.Field(&p.Genre, validation.Required, validation.In(genres...).Error("unknown genre")),
		validation.Field(&p.AgeRating, validation.Required, validation.In(ageRatings...).Error("must be one of 14+, 16+, 18+")),
		validation.Field(&p.SkillLevel, validation.Required, validation.In(shared.SkillLevels...).Error("must be one of beginner, casual, professional")),
		validation.Field(&p.Description, validation.Required, validation.RuneLength(50, 2000)),
	)
}

// ImageRef returns the stored cover or the default placeholder
func (p *Post) ImageRef() string {
	if p.Image == nil || *p.Image == "" {
		return DefaultPostImage
	}
	return *p.Image
}

// CanComment reports whether a new comment may be written by a caller
func (p *Post) CanComment(authenticated bool) bool {
	return p.IsActive && !p.CommentSectionClosed && authenticated
}

// VisibleTo hides inactive posts from everyone but their author
func (p *Post) VisibleTo(viewer shared.Viewer) bool {
	return p.IsActive || p.AuthorID == viewer.AccountID
}
