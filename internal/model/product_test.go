package model

import (
	"testing"
	"time"
)

func TestNewExpiryDateNormalizesToMidnight(t *testing.T) {
	day := time.Date(2025, time.August, 30, 18, 45, 12, 0, time.Local)
	e := NewExpiryDate(day)

	if e.Human != "2025-08-30" {
		t.Errorf("human = %q, want 2025-08-30", e.Human)
	}
	want := time.Date(2025, time.August, 30, 0, 0, 0, 0, time.Local).UnixMilli()
	if e.ISO != want {
		t.Errorf("iso = %d, want %d", e.ISO, want)
	}
}

func TestExpiryDateDue(t *testing.T) {
	now := time.Date(2025, time.August, 30, 12, 0, 0, 0, time.Local)

	past := NewExpiryDate(now.AddDate(0, 0, -1))
	today := NewExpiryDate(now)
	future := NewExpiryDate(now.AddDate(0, 0, 1))

	if !past.Due(now) {
		t.Error("yesterday should be due")
	}
	if !today.Due(now) {
		t.Error("today (midnight already passed) should be due")
	}
	if future.Due(now) {
		t.Error("tomorrow should not be due")
	}
}

func TestProductDisplayFallbacks(t *testing.T) {
	var p Product
	if got := p.DisplayName(); got != "unknown product" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := p.DisplayExpiry(); got != "date unknown" {
		t.Errorf("DisplayExpiry = %q", got)
	}

	name := ""
	p.Name = &name
	if got := p.DisplayName(); got != "" {
		t.Errorf("empty name should display empty, got %q", got)
	}
}
