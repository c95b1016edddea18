package calendar

import (
	"testing"
	"time"
)

func TestParseLocalDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "padded", in: "05/03/2025", want: Date{2025, time.March, 5}},
		{name: "unpadded", in: "5/3/2025", want: Date{2025, time.March, 5}},
		{name: "day month order", in: "01/02/2025", want: Date{2025, time.February, 1}},
		{name: "overflow rolls over", in: "32/01/2025", want: Date{2025, time.February, 1}},
		{name: "garbage", in: "yesterday", wantErr: true},
		{name: "iso rejected parts", in: "2025-03-05", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocalDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLocalDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseLocalDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseISODate(t *testing.T) {
	got, err := ParseISODate("2025-03-05")
	if err != nil {
		t.Fatalf("ParseISODate() error = %v", err)
	}
	if want := (Date{2025, time.March, 5}); !got.Equal(want) {
		t.Errorf("ParseISODate() = %v, want %v", got, want)
	}
	if _, err = ParseISODate("05/03/2025"); err == nil {
		t.Error("ParseISODate() accepted a locale-formatted date")
	}
}

func TestWithinPeriod(t *testing.T) {
	// Wednesday
	now := Date{2025, time.March, 5}
	if now.Weekday() != time.Wednesday {
		t.Fatalf("fixture: %v is not a Wednesday", now)
	}

	tests := []struct {
		name   string
		date   string
		period Period
		custom string
		want   bool
	}{
		{name: "today matches today", date: "05/03/2025", period: PeriodToday, want: true},
		{name: "yesterday is not today", date: "04/03/2025", period: PeriodToday, want: false},

		{name: "today matches this week", date: "05/03/2025", period: PeriodThisWeek, want: true},
		{name: "sunday start of week", date: "02/03/2025", period: PeriodThisWeek, want: true},
		{name: "saturday before is out", date: "01/03/2025", period: PeriodThisWeek, want: false},
		{name: "future never matches week", date: "06/03/2025", period: PeriodThisWeek, want: false},

		{name: "today matches this month", date: "05/03/2025", period: PeriodThisMonth, want: true},
		{name: "same month earlier day", date: "31/03/2025", period: PeriodThisMonth, want: true},
		{name: "same month last year", date: "05/03/2024", period: PeriodThisMonth, want: false},
		{name: "previous month", date: "28/02/2025", period: PeriodThisMonth, want: false},

		{name: "semester trailing window", date: "10/09/2024", period: PeriodSemester, want: true},
		{name: "semester too old", date: "01/09/2024", period: PeriodSemester, want: false},
		{name: "future never matches semester", date: "01/04/2025", period: PeriodSemester, want: false},

		{name: "custom date hit", date: "01/01/2025", period: PeriodCustomDate, custom: "2025-01-01", want: true},
		{name: "custom date miss", date: "02/01/2025", period: PeriodCustomDate, custom: "2025-01-01", want: false},
		{name: "custom date absent matches", date: "02/01/2025", period: PeriodCustomDate, want: true},
		{name: "custom date malformed fails open", date: "02/01/2025", period: PeriodCustomDate, custom: "bogus", want: true},

		{name: "full year matches anything", date: "01/01/1999", period: PeriodFullYear, want: true},
		{name: "unknown period matches", date: "01/01/1999", period: Period("Bebas"), want: true},

		{name: "malformed record date fails open", date: "not-a-date", period: PeriodToday, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinPeriod(tt.date, tt.period, now, tt.custom); got != tt.want {
				t.Errorf("WithinPeriod(%q, %q) = %v, want %v", tt.date, tt.period, got, tt.want)
			}
		})
	}
}

// Today's date must always match "today", "this week" and "this month".
func TestWithinPeriodReflexive(t *testing.T) {
	for _, now := range []Date{
		{2025, time.March, 2},  // Sunday (week start)
		{2025, time.March, 5},  // mid-week
		{2025, time.March, 8},  // Saturday
		{2024, time.February, 29},
	} {
		d := now.String()
		for _, p := range []Period{PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodSemester, PeriodFullYear} {
			if !WithinPeriod(d, p, now, "") {
				t.Errorf("WithinPeriod(%q, %q) = false on its own day", d, p)
			}
		}
	}
}
