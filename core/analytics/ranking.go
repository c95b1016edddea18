package analytics

import (
	"sort"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
)

// Grouping selects whether rankings tally per student or per formal class.
type Grouping string

const (
	GroupStudent Grouping = "person"
	GroupClass   Grouping = "group"
)

const DefaultTopN = 5

// Entry is one leaderboard row. For student grouping, Label carries the
// student name and Detail the class; for class grouping, Label is the class.
type Entry struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
	Value  int    `json:"value"`
}

// TopAttendance ranks by count of one attendance status.
func TopAttendance(agg Aggregate, status attendance.Status, n int, grouping Grouping) []Entry {
	acc := newAccumulator(agg, grouping)
	for _, rec := range agg.Attendance {
		if rec.Status == status {
			acc.add(rec.StudentID, 1)
		}
	}
	return acc.top(n)
}

// TopConduct ranks by summed points of one report polarity. Violations and
// achievements are always ranked separately; their points never offset each
// other.
func TopConduct(agg Aggregate, polarity conduct.Polarity, n int, grouping Grouping) []Entry {
	acc := newAccumulator(agg, grouping)
	for _, rep := range agg.Reports {
		if rep.Type == polarity {
			acc.add(rep.StudentID, rep.Points)
		}
	}
	return acc.top(n)
}

type accumulator struct {
	agg      Aggregate
	grouping Grouping
	values   map[string]int
	entries  map[string]Entry
	order    []string // keys in first-seen order
}

func newAccumulator(agg Aggregate, grouping Grouping) *accumulator {
	return &accumulator{
		agg:      agg,
		grouping: grouping,
		values:   make(map[string]int),
		entries:  make(map[string]Entry),
	}
}

func (acc *accumulator) add(studentID string, value int) {
	s, ok := acc.agg.student(studentID)
	if !ok {
		return
	}
	key, label, detail := s.ID, s.Name, s.FormalClass
	if acc.grouping == GroupClass {
		key, label, detail = s.FormalClass, s.FormalClass, ""
	}
	if _, seen := acc.entries[key]; !seen {
		acc.entries[key] = Entry{Key: key, Label: label, Detail: detail}
		acc.order = append(acc.order, key)
	}
	acc.values[key] += value
}

// top returns at most n entries, descending by value. Ties keep the order
// the tallied records were encountered in. Zero-valued entries never appear
// on a leaderboard.
func (acc *accumulator) top(n int) []Entry {
	if n <= 0 {
		n = DefaultTopN
	}
	out := make([]Entry, 0, len(acc.order))
	for _, key := range acc.order {
		value := acc.values[key]
		if value == 0 {
			continue
		}
		entry := acc.entries[key]
		entry.Value = value
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
