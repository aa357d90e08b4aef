package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// CalendarBuilder turns the upcoming birthdays of a Book into an iCalendar feed.
type CalendarBuilder struct {
	Clock addressbook.Clock

	// FormatSummary lets the caller inject a localized event title.
	FormatSummary func(name string) string
}

// Build renders one all-day event per congratulation date within horizonDays.
// reminderTrigger is an ISO8601 duration relative to the event start
// (e.g. "-PT9H"); an empty trigger disables alarms.
// An empty result is still a valid VCALENDAR.
func (c *CalendarBuilder) Build(ctx context.Context, book *addressbook.Book, horizonDays int, reminderTrigger string) ([]byte, []addressbook.Greeting, error) {
	start := time.Now()
	now := c.now()
	greetings := book.UpcomingBirthdays(now, horizonDays)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, g := range greetings {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		event := c.createEvent(book, g, reminderTrigger)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		c.logSuccess(0, horizonDays, start)
		return []byte(config.StubVCalendar), greetings, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	c.logSuccess(len(greetings), horizonDays, start)
	return buf.Bytes(), greetings, nil
}

func (c *CalendarBuilder) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func (c *CalendarBuilder) createEvent(book *addressbook.Book, g addressbook.Greeting, reminderTrigger string) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(g))

	summary := fmt.Sprintf(config.FormatEventSummary, g.Name)
	if c.FormatSummary != nil {
		summary = c.FormatSummary(g.Name)
	}
	event.Props.SetText(config.PropSummary, summary)

	if r, ok := book.Find(g.Name); ok {
		if b, ok := r.Birthday(); ok {
			event.Props.SetText(config.PropDescription, fmt.Sprintf(config.FormatEventDesc, g.Name, b.Value()))
		}
	}

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(g.Date)
	event.Props.Set(dtStartProp)

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	return event
}

// eventUID is stable across rebuilds for the same contact and date.
func eventUID(g addressbook.Greeting) string {
	input := fmt.Sprintf(config.FormatHashInput, g.Name, g.CongratulationDate, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), g.Date.Format(config.DateFormatFullBasic), config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the value directly to avoid a VALUE=TEXT parameter.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func (c *CalendarBuilder) logSuccess(events, horizonDays int, start time.Time) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyHorizon, horizonDays,
		config.LogKeyUpcoming, events,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}
