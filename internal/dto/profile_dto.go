package dto

// ProfileCreateRequest carries the full onboarding payload. GPA arrives on
// the scale named by GPAScale and is normalized to 4.0 exactly once, at
// write time.
type ProfileCreateRequest struct {
	EducationLevel     string   `json:"education_level" validate:"required"`
	Degree             string   `json:"degree" validate:"required"`
	Major              string   `json:"major" validate:"required"`
	GraduationYear     int      `json:"graduation_year" validate:"required,gte=1950,lte=2100"`
	GPA                *float64 `json:"gpa" validate:"omitempty,gte=0"`
	GPAScale           string   `json:"gpa_scale" validate:"omitempty,oneof=4.0 10.0"`
	Age                *int     `json:"age" validate:"omitempty,gte=14,lte=100"`
	IntendedDegree     string   `json:"intended_degree" validate:"required"`
	FieldOfStudy       string   `json:"field_of_study" validate:"required"`
	TargetIntakeYear   int      `json:"target_intake_year" validate:"required,gte=2020,lte=2100"`
	PreferredCountries string   `json:"preferred_countries" validate:"required"`
	BudgetMin          float64  `json:"budget_min" validate:"gte=0"`
	BudgetMax          float64  `json:"budget_max" validate:"gtefield=BudgetMin"`
	FundingPlan        string   `json:"funding_plan" validate:"required"`
	IELTSScore         *float64 `json:"ielts_score" validate:"omitempty,gte=0,lte=9"`
	TOEFLScore         *int     `json:"toefl_score" validate:"omitempty,gte=0,lte=120"`
	GREScore           *int     `json:"gre_score" validate:"omitempty,gte=260,lte=340"`
	GMATScore          *int     `json:"gmat_score" validate:"omitempty,gte=200,lte=805"`
	SOPStatus          string   `json:"sop_status" validate:"required"`
}

// ProfileUpdateRequest carries a partial profile edit. Nil fields are left
// untouched. A GPA sent without a scale is assumed already normalized.
type ProfileUpdateRequest struct {
	EducationLevel     *string  `json:"education_level"`
	Degree             *string  `json:"degree"`
	Major              *string  `json:"major"`
	GraduationYear     *int     `json:"graduation_year" validate:"omitempty,gte=1950,lte=2100"`
	GPA                *float64 `json:"gpa" validate:"omitempty,gte=0"`
	GPAScale           string   `json:"gpa_scale" validate:"omitempty,oneof=4.0 10.0"`
	Age                *int     `json:"age" validate:"omitempty,gte=14,lte=100"`
	IntendedDegree     *string  `json:"intended_degree"`
	FieldOfStudy       *string  `json:"field_of_study"`
	TargetIntakeYear   *int     `json:"target_intake_year" validate:"omitempty,gte=2020,lte=2100"`
	PreferredCountries *string  `json:"preferred_countries"`
	BudgetMin          *float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax          *float64 `json:"budget_max" validate:"omitempty,gte=0"`
	FundingPlan        *string  `json:"funding_plan"`
	IELTSScore         *float64 `json:"ielts_score" validate:"omitempty,gte=0,lte=9"`
	TOEFLScore         *int     `json:"toefl_score" validate:"omitempty,gte=0,lte=120"`
	GREScore           *int     `json:"gre_score" validate:"omitempty,gte=260,lte=340"`
	GMATScore          *int     `json:"gmat_score" validate:"omitempty,gte=200,lte=805"`
	SOPStatus          *string  `json:"sop_status"`
}

// ProfileStrengthResponse summarises the derived strength grades.
type ProfileStrengthResponse struct {
	Academic string `json:"academic"`
	Exam     string `json:"exam"`
	SOP      string `json:"sop"`
}
