package model

import (
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComment_EnforcePin(t *testing.T) {
	author := uuid.New()
	reader := uuid.New()

	byReader := &Comment{AccountID: reader, IsPinned: true}
	assert.True(t, byReader.EnforcePin(author))
	assert.False(t, byReader.IsPinned)

	byAuthor := &Comment{AccountID: author, IsPinned: true}
	assert.False(t, byAuthor.EnforcePin(author))
	assert.True(t, byAuthor.IsPinned)

	unpinned := &Comment{AccountID: reader}
	assert.False(t, unpinned.EnforcePin(author))
	assert.False(t, unpinned.IsPinned)
}

func TestPinned_Ordering(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	low := &Comment{ID: uuid.New(), IsPinned: true, Importance: ImportanceLow, CreatedAt: base}
	highLate := &Comment{ID: uuid.New(), IsPinned: true, Importance: ImportanceHigh, CreatedAt: base.Add(2 * time.Hour)}
	highEarly := &Comment{ID: uuid.New(), IsPinned: true, Importance: ImportanceHigh, CreatedAt: base.Add(time.Hour)}
	normal := &Comment{ID: uuid.New(), IsPinned: true, Importance: ImportanceNormal, CreatedAt: base}
	notPinned := &Comment{ID: uuid.New(), Importance: ImportanceCritical, CreatedAt: base}

	got := Pinned([]*Comment{low, highLate, highEarly, normal, notPinned})

	require.Len(t, got, 4)
	assert.Equal(t, []*Comment{highEarly, highLate, normal, low}, got)
}

func TestComment_Validate(t *testing.T) {
	c := &Comment{Text: "Ten chars!", Importance: ImportanceNormal}
	require.NoError(t, c.Validate())

	tests := []struct {
		name   string
		mutate func(c *Comment)
		field  string
	}{
		{"text too short", func(c *Comment) { c.Text = "too short" }, "text"},
		{"text too long", func(c *Comment) { c.Text = strings.Repeat("x", 1001) }, "text"},
		{"importance zero", func(c *Comment) { c.Importance = 0 }, "importance"},
		{"importance five", func(c *Comment) { c.Importance = 5 }, "importance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Comment{Text: "A perfectly fine comment", Importance: ImportanceHigh}
			tt.mutate(c)
			var errs validation.Errors
			require.ErrorAs(t, c.Validate(), &errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestImportance_String(t *testing.T) {
	assert.Equal(t, "low", ImportanceLow.String())
	assert.Equal(t, "critical", ImportanceCritical.String())
	assert.Equal(t, "unknown", Importance(9).String())
}
