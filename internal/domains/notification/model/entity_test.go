package model

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNew_TruncatesLongMessages(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	n := New(uuid.New(), nil, strings.Repeat("é", 400), now)
	assert.Equal(t, MaxMessageLength, utf8.RuneCountInString(n.Message))
	assert.False(t, n.IsRead)
	assert.Equal(t, now, n.CreatedAt)
	assert.NoError(t, n.Validate())
}

func TestValidate(t *testing.T) {
	assert.Error(t, New(uuid.New(), nil, "", time.Now()).Validate())
	assert.Error(t, (&Notification{Message: "hello"}).Validate())

	postID := uuid.New()
	n := New(uuid.New(), &postID, "bob liked \"The Long Night\"", time.Now())
	assert.NoError(t, n.Validate())
	assert.Equal(t, &postID, n.PostID)
}
