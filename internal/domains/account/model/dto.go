package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"thriven-backend/internal/shared"
)

// DateLayout is the wire format of dates of birth
const DateLayout = "2006-01-02"

// ========================================
// REQUEST DTOs
// ========================================

type RegisterRequest struct {
	Username       string             `json:"username" binding:"required"`
	Password       string             `json:"password" binding:"required"`
	Email          *string            `json:"email"`
	Pronoun        Pronoun            `json:"pronoun"`
	DateOfBirth    *string            `json:"date_of_birth"`
	IsAuthor       bool               `json:"is_author"`
	SkillLevel     *shared.SkillLevel `json:"skill_level"`
	Biography      *string            `json:"biography"`
	Website        *string            `json:"website"`
	PublishedBooks string             `json:"published_books"`
}

// Validate checks what cannot be checked on the Account itself
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.DateOfBirth, validation.Date(DateLayout).Error("must be a date formatted as YYYY-MM-DD")),
	)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateProfileRequest is a partial update: nil fields are left untouched
type UpdateProfileRequest struct {
	Email          *string            `json:"email"`
	Pronoun        *Pronoun           `json:"pronoun"`
	DateOfBirth    *string            `json:"date_of_birth"`
	IsAuthor       *bool              `json:"is_author"`
	SkillLevel     *shared.SkillLevel `json:"skill_level"`
	Biography      *string            `json:"biography"`
	Website        *string            `json:"website"`
	PublishedBooks *string            `json:"published_books"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DateOfBirth, validation.Date(DateLayout).Error("must be a date formatted as YYYY-MM-DD")),
	)
}

// Apply copies the set fields onto the account. Empty strings clear optional fields.
func (r UpdateProfileRequest) Apply(a *Account) error {
	if r.Email != nil {
		a.Email = optional(*r.Email)
	}
	if r.Pronoun != nil {
		a.Pronoun = *r.Pronoun
	}
	if r.DateOfBirth != nil {
		dob, err := ParseDate(*r.DateOfBirth)
		if err != nil {
			return err
		}
		a.DateOfBirth = dob
	}
	if r.IsAuthor != nil {
		a.IsAuthor = *r.IsAuthor
	}
	if r.SkillLevel != nil {
		if *r.SkillLevel == "" {
			a.SkillLevel = nil
		} else {
			level := *r.SkillLevel
			a.SkillLevel = &level
		}
	}
	if r.Biography != nil {
		a.Biography = optional(*r.Biography)
	}
	if r.Website != nil {
		a.Website = optional(*r.Website)
	}
	if r.PublishedBooks != nil {
		a.PublishedBooks = *r.PublishedBooks
	}
	return nil
}

// ParseDate parses an optional YYYY-MM-DD date; empty input yields nil
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, validation.Errors{"date_of_birth": validation.NewError("validation_date_invalid", "must be a date formatted as YYYY-MM-DD")}
	}
	return &t, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ========================================
// RESPONSE DTOs
// ========================================

// Profile is the public view of an account
type Profile struct {
	ID             uuid.UUID          `json:"id"`
	Username       string             `json:"username"`
	Email          *string            `json:"email,omitempty"`
	Pronoun        Pronoun            `json:"pronoun"`
	Age            *int               `json:"age,omitempty"`
	ProfileImage   string             `json:"profile_image"`
	IsAuthor       bool               `json:"is_author"`
	SkillLevel     *shared.SkillLevel `json:"skill_level,omitempty"`
	Biography      *string            `json:"biography,omitempty"`
	Website        *string            `json:"website,omitempty"`
	PublishedBooks string             `json:"published_books,omitempty"`
	FollowersCount int                `json:"followers_count"`
	FollowingCount int                `json:"following_count"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Summary is the compact view embedded in posts, comments and follow lists
type Summary struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profile_image"`
	IsAuthor     bool      `json:"is_author"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Account     *Profile  `json:"account"`
}

// ToProfile builds the public view. The email is only exposed to the account itself.
func (a *Account) ToProfile(now time.Time, followers, following int, self bool) *Profile {
	p := &Profile{
		ID:             a.ID,
		Username:       a.Username,
		Pronoun:        a.Pronoun,
		ProfileImage:   a.ProfileImageRef(),
		IsAuthor:       a.IsAuthor,
		SkillLevel:     a.SkillLevel,
		Biography:      a.Biography,
		Website:        a.Website,
		PublishedBooks: a.PublishedBooks,
		FollowersCount: followers,
		FollowingCount: following,
		CreatedAt:      a.CreatedAt,
	}
	if age, ok := a.Age(now); ok {
		p.Age = &age
	}
	if self {
		p.Email = a.Email
	}
	return p
}

func (a *Account) ToSummary() Summary {
	return Summary{
		ID:           a.ID,
		Username:     a.Username,
		ProfileImage: a.ProfileImageRef(),
		IsAuthor:     a.IsAuthor,
	}
}
