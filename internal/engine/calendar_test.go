package engine_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func annBook(t *testing.T) *addressbook.Book {
	t.Helper()
	book := addressbook.NewBook()
	ann := addressbook.NewRecord("Ann")
	require.NoError(t, ann.AddBirthday("03.08.1990"))
	book.Add(ann)
	return book
}

func TestCalendarBuilder_Build(t *testing.T) {
	builder := &engine.CalendarBuilder{
		Clock: MockClock{CurrentTime: time.Date(2025, 7, 31, 10, 0, 0, 0, time.UTC)},
	}

	ics, greetings, err := builder.Build(context.Background(), annBook(t), 7, "-PT9H")
	require.NoError(t, err)

	require.Len(t, greetings, 1)
	assert.Equal(t, "04.08.2025", greetings[0].CongratulationDate)

	s := string(ics)
	assert.Contains(t, s, "BEGIN:VCALENDAR")
	assert.Contains(t, s, "SUMMARY:Congratulate Ann")
	assert.Contains(t, s, "DTSTART;VALUE=DATE:20250804")
	assert.Contains(t, s, "TRIGGER:-PT9H")
	assert.Contains(t, s, "03.08.1990")
}

func TestCalendarBuilder_StableUIDs(t *testing.T) {
	builder := &engine.CalendarBuilder{
		Clock: MockClock{CurrentTime: time.Date(2025, 7, 31, 10, 0, 0, 0, time.UTC)},
	}

	first, _, err := builder.Build(context.Background(), annBook(t), 7, "")
	require.NoError(t, err)
	second, _, err := builder.Build(context.Background(), annBook(t), 7, "")
	require.NoError(t, err)

	uid := func(ics []byte) string {
		for _, line := range strings.Split(string(ics), "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}
	assert.NotEmpty(t, uid(first))
	assert.Equal(t, uid(first), uid(second))
	assert.NotContains(t, string(first), "VALARM")
}

func TestCalendarBuilder_LocalizedSummary(t *testing.T) {
	builder := &engine.CalendarBuilder{
		Clock:         MockClock{CurrentTime: time.Date(2025, 7, 31, 10, 0, 0, 0, time.UTC)},
		FormatSummary: func(name string) string { return "Souhaiter un bon anniversaire à " + name },
	}

	ics, _, err := builder.Build(context.Background(), annBook(t), 7, "")
	require.NoError(t, err)
	assert.Contains(t, string(ics), "Souhaiter un bon anniversaire")
}

func TestCalendarBuilder_Empty(t *testing.T) {
	builder := &engine.CalendarBuilder{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	ics, greetings, err := builder.Build(context.Background(), annBook(t), 7, "")
	require.NoError(t, err)
	assert.Empty(t, greetings)
	assert.Equal(t, config.StubVCalendar, string(ics))
}

func TestCalendarBuilder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	builder := &engine.CalendarBuilder{
		Clock: MockClock{CurrentTime: time.Date(2025, 7, 31, 10, 0, 0, 0, time.UTC)},
	}
	_, _, err := builder.Build(ctx, annBook(t), 7, "")
	assert.ErrorIs(t, err, context.Canceled)
}
