package calendar

// Period is a named reporting time range.
type Period string

const (
	PeriodToday      Period = "Hari Ini"
	PeriodThisWeek   Period = "Minggu Ini"
	PeriodThisMonth  Period = "Bulan Ini"
	PeriodSemester   Period = "Semester"
	PeriodCustomDate Period = "Pilih Tanggal"
	PeriodFullYear   Period = "Semua"
)

// semesterWindowDays approximates "this semester" as a trailing window.
// True academic boundaries are not consulted.
const semesterWindowDays = 180

var AllPeriods = []Period{
	PeriodToday,
	PeriodThisWeek,
	PeriodThisMonth,
	PeriodSemester,
	PeriodCustomDate,
	PeriodFullYear,
}

// WithinPeriod reports whether the stored record date matches the period
// relative to now. custom is the ISO-formatted custom-date input, consulted
// only for PeriodCustomDate.
//
// Unparseable record dates match every period: the resolver fails open so a
// malformed date never hides its record from reports. (Visibility scoping is
// the opposite policy; see roster.Scope.)
func WithinPeriod(dateStr string, period Period, now Date, custom string) bool {
	d, err := ParseLocalDate(dateStr)
	if err != nil {
		return true
	}
	return Within(d, period, now, custom)
}

// Within is WithinPeriod over an already-normalized date.
// "This week" and "this semester" are trailing windows inclusive of today;
// future dates never match them.
func Within(d Date, period Period, now Date, custom string) bool {
	switch period {
	case PeriodToday:
		return d.Equal(now)
	case PeriodThisWeek:
		diff := now.DaysSince(d)
		return diff >= 0 && diff <= int(now.Weekday())
	case PeriodThisMonth:
		return d.Year == now.Year && d.Month == now.Month
	case PeriodSemester:
		diff := now.DaysSince(d)
		return diff >= 0 && diff <= semesterWindowDays
	case PeriodCustomDate:
		if custom == "" {
			return true
		}
		target, err := ParseISODate(custom)
		if err != nil {
			return true
		}
		return d.Equal(target)
	default:
		// full year and unknown periods match everything
		return true
	}
}
