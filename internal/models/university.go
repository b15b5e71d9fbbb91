package models

import (
	"time"

	"gorm.io/datatypes"
)

// University describes an institution in the local catalog. Results coming
// from the external directory have no ID until they are imported.
type University struct {
	ID      uint   `gorm:"primaryKey" json:"id,omitempty"`
	Name    string `gorm:"size:255;not null;index" json:"name"`
	Country string `gorm:"size:128;not null;index" json:"country"`
	City    string `gorm:"size:128" json:"city"`
	Ranking *int   `json:"ranking"`

	Programs datatypes.JSON `gorm:"type:json" json:"programs"`

	// Admission requirements
	MinGPA   *float64 `gorm:"column:min_gpa" json:"min_gpa"`
	MinIELTS *float64 `gorm:"column:min_ielts" json:"min_ielts"`
	MinTOEFL *int     `gorm:"column:min_toefl" json:"min_toefl"`
	MinGRE   *int     `gorm:"column:min_gre" json:"min_gre"`
	MinGMAT  *int     `gorm:"column:min_gmat" json:"min_gmat"`

	// Costs (annual, USD)
	TuitionFeeMin    float64 `json:"tuition_fee_min"`
	TuitionFeeMax    float64 `json:"tuition_fee_max"`
	LivingCostYearly float64 `json:"living_cost_yearly"`

	AcceptanceRate float64 `json:"acceptance_rate"`
	Description    string  `gorm:"type:text" json:"description"`
	Website        string  `gorm:"size:512" json:"website"`

	ScholarshipAvailable bool   `gorm:"not null;default:false" json:"scholarship_available"`
	ScholarshipDetails   string `gorm:"type:text" json:"scholarship_details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Imported reports whether the university has been assigned an identity in
// the local catalog. Shortlist entries may only reference imported records.
func (u University) Imported() bool {
	return u.ID != 0
}
