package addressbook

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// DefaultHorizonDays is the look-ahead window used when none is configured.
const DefaultHorizonDays = config.DefaultHorizonDays

// Greeting is a contact to congratulate and the day to do it.
type Greeting struct {
	Name               string    `json:"name"`
	CongratulationDate string    `json:"congratulation_date"`
	Date               time.Time `json:"-"`
}

// UpcomingBirthdays lists the contacts whose next birthday falls within
// [today, today+horizonDays]. Weekend occurrences are moved to the following
// Monday; the moved date is reported even when it leaves the window.
// Records without a usable birthday are skipped.
func (b *Book) UpcomingBirthdays(today time.Time, horizonDays int) []Greeting {
	start := startOfDay(today)
	limit := start.AddDate(0, 0, horizonDays)

	var out []Greeting
	for _, r := range b.Records() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		birthDate, err := bday.Date()
		if err != nil {
			slog.Debug(config.MsgSkippedBday,
				config.LogKeyComponent, config.CompBook,
				config.LogKeyName, r.Name().Value(),
				config.LogKeyError, err)
			continue
		}

		next := nextOccurrence(start, birthDate)
		if next.After(limit) {
			continue
		}

		congrats := AdjustForWeekend(next)
		out = append(out, Greeting{
			Name:               r.Name().Value(),
			CongratulationDate: FormatDate(congrats),
			Date:               congrats,
		})
	}
	return out
}

// AdjustForWeekend moves a Saturday or Sunday to the next Monday and leaves
// weekdays untouched.
func AdjustForWeekend(date time.Time) time.Time {
	if mondayIndex(date.Weekday()) >= 5 {
		return nextWeekday(date, time.Monday)
	}
	return date
}

// FormatDate renders date as DD.MM.YYYY.
func FormatDate(date time.Time) string {
	return date.Format(config.DateFormatBirthday)
}

// nextOccurrence projects the month and day of birthDate onto the year of
// today, rolling over to next year when that day has already passed.
// time.Date normalises Feb 29 to Mar 1 in non-leap years.
func nextOccurrence(today, birthDate time.Time) time.Time {
	loc := today.Location()
	candidate := time.Date(today.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}

// nextWeekday returns the first target weekday strictly after date.
func nextWeekday(date time.Time, target time.Weekday) time.Time {
	daysAhead := mondayIndex(target) - mondayIndex(date.Weekday())
	if daysAhead <= 0 {
		daysAhead += 7
	}
	return date.AddDate(0, 0, daysAhead)
}

// mondayIndex numbers weekdays Monday=0 through Sunday=6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
