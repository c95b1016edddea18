package document

import (
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
)

// Profile is the operator snapshot embedded in the document; it mirrors the
// backup-file shape, so it carries no credentials or timestamps.
type Profile struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Classes  []string `json:"classes,omitempty"`
}

// ProfileOf strips an operator down to the embeddable snapshot.
func ProfileOf(op operator.Operator) Profile {
	return Profile{
		ID:       op.ID,
		FullName: op.FullName,
		Phone:    op.Phone,
		Email:    op.Email,
		Role:     op.Role,
		Classes:  op.Classes,
	}
}

// Semester labels as they appear on printed reports.
const (
	SemesterGanjil = "I (Ganjil)"
	SemesterGenap  = "II (Genap)"
)

// AcademicConfig holds the school-year settings that gate recording.
type AcademicConfig struct {
	SchoolYear      string                      `json:"schoolYear"`
	Semester        string                      `json:"semester"`
	IsHoliday       bool                        `json:"isHoliday"`
	SessionHolidays map[roster.SessionKind]bool `json:"sessionHolidays,omitempty"`
}

// Document is the single authoritative data blob. Its JSON field names are
// the backup-file contract; older backups missing newer fields are filled
// from defaults at load time.
type Document struct {
	Profile              *Profile                    `json:"profile"`
	Attendance           []attendance.Record         `json:"attendance"`
	TeacherAttendance    []attendance.TeacherSession `json:"teacherAttendance"`
	Reports              []conduct.Report            `json:"reports"`
	Students             []roster.Student            `json:"students"`
	Teachers             []roster.Teacher            `json:"teachers"`
	Schedules            []roster.Schedule           `json:"schedules"`
	Orsam                []roster.OrgMember          `json:"orsam"`
	Orklas               []roster.OrgMember          `json:"orklas"`
	ViolationTemplates   []conduct.Template          `json:"violationTemplates"`
	AchievementTemplates []conduct.Template          `json:"achievementTemplates"`
	AcademicConfig       AcademicConfig              `json:"academicConfig"`
	LastSynced           string                      `json:"lastSynced,omitempty"`
}

// SyncStatus is the sync bookkeeping kept beside the document, never inside
// the pushed blob.
type SyncStatus struct {
	Pending    bool   `json:"pending"`
	Timestamp  string `json:"timestamp,omitempty"` // RFC 3339
	IsNewLocal bool   `json:"isNewLocal"`
	AutoSync   bool   `json:"autoSync"`
}

func DefaultSyncStatus() SyncStatus {
	return SyncStatus{AutoSync: true}
}

// Defaults is the document a fresh install starts from: empty event logs,
// the stock master data and rule catalogs, and the current year's academic
// config.
func Defaults() Document {
	return Document{
		Attendance:        []attendance.Record{},
		TeacherAttendance: []attendance.TeacherSession{},
		Reports:           []conduct.Report{},
		Students: []roster.Student{
			{
				ID: "1", NIS: "2024001", Name: "Ahmad Fauzi", FormalClass: "11 IPA",
				Level: roster.LevelMA, Gender: roster.GenderPutra,
				SessionClasses: map[roster.SessionKind]string{
					roster.SessionMadrasah:  "11 IPA",
					roster.SessionQuran:     "Halaqah Ulya (A)",
					roster.SessionHadis:     "Bulughul Maram Pagi",
					roster.SessionKitab:     "Fathul Qarib",
					roster.SessionPeminatan: "Kelas IPA Murni",
				},
			},
			{
				ID: "2", NIS: "2024002", Name: "Zaidan Al-Khairi", FormalClass: "7A",
				Level: roster.LevelMTs, Gender: roster.GenderPutra,
				SessionClasses: map[roster.SessionKind]string{
					roster.SessionMadrasah: "7A",
					roster.SessionQuran:    "Halaqah Wustho (B)",
					roster.SessionHadis:    "Arbain Nawawi",
					roster.SessionKitab:    "Ta'lim Muta'allim",
				},
			},
			{
				ID: "3", NIS: "2024003", Name: "Siti Maryam", FormalClass: "10 IPS",
				Level: roster.LevelMA, Gender: roster.GenderPutri,
				SessionClasses: map[roster.SessionKind]string{
					roster.SessionMadrasah: "10 IPS",
					roster.SessionQuran:    "Halaqah Ulya (C)",
					roster.SessionHadis:    "Bulughul Maram Pagi",
					roster.SessionKitab:    "Riyadhus Shalihin",
				},
			},
		},
		Teachers: []roster.Teacher{
			{
				ID: "t1", Name: "Ust. Abdul Malik, M.Pd", Subject: "Biologi / Hadis",
				Phone: "08123456789", Email: "malik@mahasina.id", Gender: roster.GenderPutra,
				IsWaliKelas: true, WaliKelasFor: "11 IPA",
				TeachingClasses: []string{"11 IPA", "Bulughul Maram Pagi"},
			},
		},
		Schedules: []roster.Schedule{
			{
				ID: "j1", Class: "Halaqah Ulya (A)", Level: roster.LevelMA, Gender: roster.GenderPutra,
				Day: "Senin", Time: "05:00 - 06:00", Subject: "Tahfidz Al-Quran",
				TeacherName: "Ust. Hamzah", SessionKind: roster.SessionQuran,
			},
			{
				ID: "j2", Class: "11 IPA", Level: roster.LevelMA, Gender: roster.GenderPutra,
				Day: "Senin", Time: "07:30 - 09:00", Subject: "Biologi",
				TeacherName: "Ust. Abdul Malik", SessionKind: roster.SessionMadrasah,
			},
			{
				ID: "j3", Class: "Bulughul Maram Pagi", Level: roster.LevelMA, Gender: roster.GenderPutra,
				Day: "Senin", Time: "14:00 - 15:30", Subject: "Hadis Tematik",
				TeacherName: "Ust. Abdul Malik", SessionKind: roster.SessionHadis,
			},
		},
		Orsam:  []roster.OrgMember{},
		Orklas: []roster.OrgMember{},
		ViolationTemplates: []conduct.Template{
			{Label: "Terlambat Shalat Berjamaah", Points: 5, Category: conduct.CategoryIbadah},
			{Label: "Tidak Membawa Kitab", Points: 3, Category: conduct.CategoryKedisiplinan},
			{Label: "Tugas Sekolah Tidak Dikerjakan", Points: 10, Category: conduct.CategoryAkademik},
			{Label: "Rambut Gondrong / Tidak Rapi", Points: 10, Category: conduct.CategoryAkhlak},
			{Label: "Keluar Area Ponpes Tanpa Izin", Points: 50, Category: conduct.CategoryKedisiplinan},
			{Label: "Membuang Sampah Sembarangan", Points: 5, Category: conduct.CategoryKebersihan},
			{Label: "Berkelahi / Keributan", Points: 75, Category: conduct.CategoryAkhlak},
		},
		AchievementTemplates: []conduct.Template{
			{Label: "Setoran Tahfidz > 1 Juz", Points: 50, Category: conduct.CategoryIbadah},
			{Label: "Juara Lomba Akademik", Points: 75, Category: conduct.CategoryAkademik},
			{Label: "Nilai Ujian Sempurna (100)", Points: 30, Category: conduct.CategoryAkademik},
			{Label: "Membantu Kebersihan Tanpa Disuruh", Points: 10, Category: conduct.CategoryKebersihan},
		},
		AcademicConfig: AcademicConfig{
			SchoolYear: "2025/2026",
			Semester:   SemesterGenap,
		},
	}
}

// withDefaults fills fields an older backup may lack. The merge is shallow:
// event logs fall back only when absent, while master data and the rule
// catalogs are reseeded even when present but emptied out.
func withDefaults(doc Document) Document {
	def := Defaults()
	if doc.Attendance == nil {
		doc.Attendance = def.Attendance
	}
	if doc.TeacherAttendance == nil {
		doc.TeacherAttendance = def.TeacherAttendance
	}
	if doc.Reports == nil {
		doc.Reports = def.Reports
	}
	if len(doc.Students) == 0 {
		doc.Students = def.Students
	}
	if len(doc.Teachers) == 0 {
		doc.Teachers = def.Teachers
	}
	if len(doc.Schedules) == 0 {
		doc.Schedules = def.Schedules
	}
	if doc.Orsam == nil {
		doc.Orsam = def.Orsam
	}
	if doc.Orklas == nil {
		doc.Orklas = def.Orklas
	}
	if len(doc.ViolationTemplates) == 0 {
		doc.ViolationTemplates = def.ViolationTemplates
	}
	if len(doc.AchievementTemplates) == 0 {
		doc.AchievementTemplates = def.AchievementTemplates
	}
	if doc.AcademicConfig.SchoolYear == "" && doc.AcademicConfig.Semester == "" {
		doc.AcademicConfig = def.AcademicConfig
	}
	return doc
}
