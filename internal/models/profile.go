package models

import "time"

// Strength grades one dimension of a profile (academics, exams, SOP).
type Strength string

// Strength values.
const (
	StrengthStrong  Strength = "strong"
	StrengthAverage Strength = "average"
	StrengthWeak    Strength = "weak"
)

// Profile holds the academic background, study goals, budget, and exam
// readiness collected during onboarding. GPA is always stored on a 4.0
// scale; conversion from other scales happens once at write time.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	// Academic background
	EducationLevel string   `gorm:"size:128" json:"education_level"`
	Degree         string   `gorm:"size:128" json:"degree"`
	Major          string   `gorm:"size:128" json:"major"`
	GraduationYear int      `json:"graduation_year"`
	GPA            *float64 `json:"gpa"`
	Age            *int     `json:"age"`

	// Study goals
	IntendedDegree     string `gorm:"size:128" json:"intended_degree"`
	FieldOfStudy       string `gorm:"size:128" json:"field_of_study"`
	TargetIntakeYear   int    `json:"target_intake_year"`
	PreferredCountries string `gorm:"size:512" json:"preferred_countries"`

	// Budget
	BudgetMin   float64 `json:"budget_min"`
	BudgetMax   float64 `json:"budget_max"`
	FundingPlan string  `gorm:"size:128" json:"funding_plan"`

	// Exams & readiness
	IELTSScore *float64 `gorm:"column:ielts_score" json:"ielts_score"`
	TOEFLScore *int     `gorm:"column:toefl_score" json:"toefl_score"`
	GREScore   *int     `gorm:"column:gre_score" json:"gre_score"`
	GMATScore  *int     `gorm:"column:gmat_score" json:"gmat_score"`
	SOPStatus  string   `gorm:"column:sop_status;size:64" json:"sop_status"`

	// Derived strengths, recomputed on every profile write.
	AcademicStrength Strength `gorm:"size:16;default:average" json:"academic_strength"`
	ExamStrength     Strength `gorm:"size:16;default:weak" json:"exam_strength"`
	SOPStrength      Strength `gorm:"column:sop_strength;size:16;default:weak" json:"sop_strength"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
