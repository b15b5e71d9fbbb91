package dto

import (
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/models"
)

// UniversityImportRequest carries an external search result being promoted
// into the local catalog. It deliberately has no ID field.
type UniversityImportRequest struct {
	Name                 string   `json:"name" validate:"required,min=2,max=255"`
	Country              string   `json:"country" validate:"required"`
	City                 string   `json:"city"`
	Ranking              *int     `json:"ranking" validate:"omitempty,gte=1"`
	Programs             []string `json:"programs"`
	MinGPA               *float64 `json:"min_gpa" validate:"omitempty,gte=0,lte=4"`
	MinIELTS             *float64 `json:"min_ielts" validate:"omitempty,gte=0,lte=9"`
	MinTOEFL             *int     `json:"min_toefl" validate:"omitempty,gte=0,lte=120"`
	MinGRE               *int     `json:"min_gre" validate:"omitempty,gte=260,lte=340"`
	MinGMAT              *int     `json:"min_gmat" validate:"omitempty,gte=200,lte=805"`
	TuitionFeeMin        float64  `json:"tuition_fee_min" validate:"gte=0"`
	TuitionFeeMax        float64  `json:"tuition_fee_max" validate:"gte=0"`
	LivingCostYearly     float64  `json:"living_cost_yearly" validate:"gte=0"`
	AcceptanceRate       float64  `json:"acceptance_rate" validate:"gte=0,lte=100"`
	Description          string   `json:"description"`
	Website              string   `json:"website" validate:"omitempty,url"`
	ScholarshipAvailable bool     `json:"scholarship_available"`
	ScholarshipDetails   string   `json:"scholarship_details"`
}

// ExternalUniversity is a directory search hit that has not been imported
// yet, hence no ID.
type ExternalUniversity struct {
	Name     string   `json:"name"`
	Country  string   `json:"country"`
	Website  string   `json:"website,omitempty"`
	Domains  []string `json:"domains,omitempty"`
	Imported bool     `json:"imported"`
}

// Recommendation pairs a catalog university with its fit assessment.
type Recommendation struct {
	University models.University `json:"university"`
	FitScore   int               `json:"fit_score"`
	RiskLevel  match.Risk        `json:"risk_level"`
	Category   models.Category   `json:"category"`
	Reasoning  string            `json:"reasoning"`
}
