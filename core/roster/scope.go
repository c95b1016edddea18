package roster

import (
	"strings"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

// Scope describes the viewpoint a roster query is made from. Zero value is an
// empty scope that matches nothing.
type Scope struct {
	Role         string
	OperatorName string
	// AssignedClasses lists the formal classes a Musyrif supervises.
	AssignedClasses []string
}

// Dimensions are ad-hoc narrowing filters. Empty fields match everything;
// set fields are combined with AND.
type Dimensions struct {
	Class  string
	Level  Level
	Gender Gender
}

func (d Dimensions) match(s Student) bool {
	if d.Class != "" && s.FormalClass != d.Class && !s.inSessionClass(d.Class) {
		return false
	}
	if d.Level != "" && s.Level != d.Level {
		return false
	}
	if d.Gender != "" && s.Gender != d.Gender {
		return false
	}
	return true
}

func (s Student) inSessionClass(class string) bool {
	for _, c := range s.SessionClasses {
		if c == class {
			return true
		}
	}
	return false
}

// fullVisibilityRoles see the whole roster unconditionally. Any role outside
// the switch below gets nothing, never everything.
var fullVisibilityRoles = map[string]bool{
	operator.RoleIdaroh:   true,
	operator.RolePengasuh: true,
}

// FilterStudents returns the students visible under scope, narrowed by dims.
// Visibility fails closed: a role with no defined branch sees nothing.
func FilterStudents(scope Scope, students []Student, schedules []Schedule, dims Dimensions) []Student {
	allowed := func(Student) bool { return false }

	switch {
	case fullVisibilityRoles[scope.Role]:
		allowed = func(Student) bool { return true }

	case scope.Role == operator.RoleMusyrif:
		assigned := make(map[string]bool, len(scope.AssignedClasses))
		for _, c := range scope.AssignedClasses {
			assigned[c] = true
		}
		allowed = func(s Student) bool { return assigned[s.FormalClass] }

	case scope.Role == operator.RoleGuru:
		taught := TaughtClasses(scope.OperatorName, schedules)
		allowed = func(s Student) bool {
			if taught[s.FormalClass] {
				return true
			}
			for _, c := range s.SessionClasses {
				if taught[c] {
					return true
				}
			}
			return false
		}
	}

	scoped := make([]Student, 0, len(students))
	for _, s := range students {
		if allowed(s) && dims.match(s) {
			scoped = append(scoped, s)
		}
	}
	return scoped
}

// TaughtClasses derives the set of classes a teacher is scheduled for.
// Schedule rows carry free-text teacher names, so the match is a
// case-insensitive substring check against the operator's display name.
// Short names can therefore over-match ("Ust. Ahmad" vs "Ust. Ahmadi");
// there is no teacher id in the schedule data to do better with.
func TaughtClasses(operatorName string, schedules []Schedule) map[string]bool {
	taught := make(map[string]bool)
	name := strings.ToLower(strings.TrimSpace(operatorName))
	if name == "" {
		return taught
	}
	for _, sch := range schedules {
		if strings.Contains(strings.ToLower(sch.TeacherName), name) {
			taught[sch.Class] = true
		}
	}
	return taught
}

// AllowedIDSet is a convenience for event filtering by student id.
func AllowedIDSet(students []Student) map[string]bool {
	ids := make(map[string]bool, len(students))
	for _, s := range students {
		ids[s.ID] = true
	}
	return ids
}

// ClassList returns the sorted-free distinct formal classes of students.
func ClassList(students []Student) []string {
	seen := make(map[string]bool)
	var classes []string
	for _, s := range students {
		if !seen[s.FormalClass] {
			seen[s.FormalClass] = true
			classes = append(classes, s.FormalClass)
		}
	}
	return classes
}
