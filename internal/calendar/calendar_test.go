package calendar

import (
	"testing"
	"time"
)

func TestMonthGridShape(t *testing.T) {
	// June 2025 starts on Sunday, so Monday-first layout pads six blanks.
	markup := Month(2025, time.June)
	rows := markup.InlineKeyboard

	if len(rows) < 4 {
		t.Fatalf("keyboard has %d rows, want header, weekdays and a grid", len(rows))
	}
	if len(rows[0]) != 3 {
		t.Fatalf("header row has %d buttons, want 3", len(rows[0]))
	}
	if rows[0][1].Text != "Jun 2025" {
		t.Fatalf("header title = %q, want Jun 2025", rows[0][1].Text)
	}
	if len(rows[1]) != 7 {
		t.Fatalf("weekday row has %d buttons, want 7", len(rows[1]))
	}
	for i, row := range rows[2:] {
		if len(row) != 7 {
			t.Fatalf("grid row %d has %d buttons, want 7", i, len(row))
		}
	}

	// First grid row: six blanks then "1".
	first := rows[2]
	for i := 0; i < 6; i++ {
		if first[i].Text != " " {
			t.Fatalf("cell %d = %q, want blank", i, first[i].Text)
		}
	}
	if first[6].Text != "1" {
		t.Fatalf("first day cell = %q, want 1", first[6].Text)
	}
}

func TestMonthDayCount(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		markup := Month(tc.year, tc.month)
		count := 0
		for _, row := range markup.InlineKeyboard[2:] {
			for _, btn := range row {
				if btn.Text != " " {
					count++
				}
			}
		}
		if count != tc.days {
			t.Errorf("%d-%02d: %d day cells, want %d", tc.year, tc.month, count, tc.days)
		}
	}
}

func TestMonthPayloadRoundTrip(t *testing.T) {
	p := MonthPayload(2025, time.January)
	if p != "2025-01" {
		t.Fatalf("payload = %q, want 2025-01", p)
	}
	year, month, err := ParseMonth(p)
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if year != 2025 || month != time.January {
		t.Fatalf("parsed %d-%v, want 2025-January", year, month)
	}

	if _, _, err := ParseMonth("garbage"); err == nil {
		t.Fatal("ParseMonth should reject malformed payload")
	}
}

func TestDayPayloadRoundTrip(t *testing.T) {
	day := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.Local)
	p := DayPayload(day)
	if p != "2025-03-09" {
		t.Fatalf("payload = %q, want 2025-03-09", p)
	}
	parsed, err := ParseDay(p)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if !parsed.Equal(day) {
		t.Fatalf("parsed %v, want %v", parsed, day)
	}

	if _, err := ParseDay("2025-3-9"); err == nil {
		t.Fatal("ParseDay should reject non-canonical payload")
	}
}

func TestMonthNavigationWrapsYear(t *testing.T) {
	markup := Month(2025, time.January)
	header := markup.InlineKeyboard[0]

	// Button data carries the telebot \f<unique>|<payload> encoding.
	wantPrev := "2024-12"
	wantNext := "2025-02"
	if got := header[0].Data; got[len(got)-len(wantPrev):] != wantPrev {
		t.Fatalf("prev payload = %q, want suffix %q", got, wantPrev)
	}
	if got := header[2].Data; got[len(got)-len(wantNext):] != wantNext {
		t.Fatalf("next payload = %q, want suffix %q", got, wantNext)
	}
}
