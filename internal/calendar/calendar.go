package calendar

import (
	"fmt"
	"time"

	"marketbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Callback uniques understood by the calendar widget.
const (
	UniqueNav    = "cal_nav"
	UniqueDay    = "cal_day"
	UniqueIgnore = "cal_ignore"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

var weekdayNames = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// MonthPayload encodes a month for navigation callbacks.
func MonthPayload(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
}

// ParseMonth decodes a navigation payload back into a month.
func ParseMonth(payload string) (int, time.Month, error) {
	t, err := time.Parse(monthLayout, payload)
	if err != nil {
		return 0, 0, fmt.Errorf("calendar: bad month payload %q: %w", payload, err)
	}
	return t.Year(), t.Month(), nil
}

// DayPayload encodes a selected day.
func DayPayload(day time.Time) string {
	return day.Format(dayLayout)
}

// ParseDay decodes a day-selection payload. The result is midnight local time.
func ParseDay(payload string) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, payload, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: bad day payload %q: %w", payload, err)
	}
	return t, nil
}

// Month builds the inline keyboard for one month: a navigation header,
// a weekday row and a Monday-first day grid padded with blanks.
func Month(year int, month time.Month) *tele.ReplyMarkup {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	header := []keyboard.InlineBtn{
		{Text: "<", Unique: UniqueNav, Data: MonthPayload(prev.Year(), prev.Month())},
		{Text: first.Format("Jan 2006"), Unique: UniqueIgnore, Data: "-"},
		{Text: ">", Unique: UniqueNav, Data: MonthPayload(next.Year(), next.Month())},
	}

	weekdays := make([]keyboard.InlineBtn, len(weekdayNames))
	for i, name := range weekdayNames {
		weekdays[i] = keyboard.InlineBtn{Text: name, Unique: UniqueIgnore, Data: "-"}
	}

	daysInMonth := next.AddDate(0, 0, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	cells := make([]keyboard.InlineBtn, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, keyboard.InlineBtn{Text: " ", Unique: UniqueIgnore, Data: "-"})
	}
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		cells = append(cells, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%d", d),
			Unique: UniqueDay,
			Data:   DayPayload(day),
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, keyboard.InlineBtn{Text: " ", Unique: UniqueIgnore, Data: "-"})
	}

	markup := keyboard.InlineButtonsRows(header, weekdays)
	grid := keyboard.InlineButtonsNPerRow(cells, 7)
	markup.InlineKeyboard = append(markup.InlineKeyboard, grid.InlineKeyboard...)
	return markup
}
