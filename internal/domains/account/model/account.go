package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"thriven-backend/internal/shared"
)

// DefaultProfileImage is returned for accounts that never uploaded a picture
const DefaultProfileImage = "profile_pics/default_avatar.png"

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9.@+_-]+$`)

// Pronoun is how an account wants to be referred to
type Pronoun string

const (
	PronounHe    Pronoun = "he"
	PronounShe   Pronoun = "she"
	PronounThey  Pronoun = "they"
	PronounOther Pronoun = "other"
)

var pronouns = []interface{}{PronounHe, PronounShe, PronounThey, PronounOther}

// Account is a registered reader and, when IsAuthor is set, a writer of posts
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"-"`

	// Profile
	Pronoun        Pronoun            `json:"pronoun"`
	DateOfBirth    *time.Time         `json:"date_of_birth,omitempty"`
	ProfileImage   *string            `json:"profile_image,omitempty"`
	IsAuthor       bool               `json:"is_author"`
	SkillLevel     *shared.SkillLevel `json:"skill_level,omitempty"`
	Biography      *string            `json:"biography,omitempty"`
	Website        *string            `json:"website,omitempty"`
	PublishedBooks string             `json:"published_books"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the write-time invariants of an account
func (a *Account) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(3, 150),
			validation.Match(usernamePattern).Error("may contain only letters, digits and . @ + - _"),
		),
		validation.Field(&a.Email, is.EmailFormat, validation.Length(0, 254)),
		validation.Field(&a.Pronoun, validation.Required, validation.In(pronouns...).Error("must be one of he, she, they, other")),
		validation.Field(&a.SkillLevel, validation.In(shared.SkillLevels...).Error("must be one of beginner, casual, professional")),
		validation.Field(&a.Biography, validation.RuneLength(10, 500)),
		validation.Field(&a.Website, is.URL, validation.Length(0, 200)),
		validation.Field(&a.PublishedBooks, validation.RuneLength(0, 2000)),
		validation.Field(&a.DateOfBirth, validation.By(notInFuture)),
	)
}

func notInFuture(value interface{}) error {
	dob, _ := value.(*time.Time)
	if dob != nil && dob.After(time.Now()) {
		return validation.NewError("validation_date_future", "must not be in the future")
	}
	return nil
}

// ProfileImageRef returns the stored picture or the default placeholder
func (a *Account) ProfileImageRef() string {
	if a.ProfileImage == nil || *a.ProfileImage == "" {
		return DefaultProfileImage
	}
	return *a.ProfileImage
}

// Age is the number of completed years between the date of birth and now.
// known is false when no date of birth is stored.
func (a *Account) Age(now time.Time) (years int, known bool) {
	if a.DateOfBirth == nil {
		return 0, false
	}
	return Age(*a.DateOfBirth, now), true
}

// Age counts whole years from dob to now, decrementing when the birthday has not come yet
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
