package match

import "github.com/uniadvisor/counsel-api/internal/models"

// SOP readiness labels accepted from the onboarding form.
const (
	SOPReady = "Ready"
	SOPDraft = "Draft"
)

// AcademicStrength grades the GPA dimension of a profile.
func AcademicStrength(gpa *float64) models.Strength {
	if gpa == nil {
		return models.StrengthAverage
	}
	switch {
	case *gpa >= 3.5:
		return models.StrengthStrong
	case *gpa >= 3.0:
		return models.StrengthAverage
	default:
		return models.StrengthWeak
	}
}

// ExamStrength grades English proficiency readiness.
func ExamStrength(ielts *float64, toefl *int) models.Strength {
	if ielts == nil && toefl == nil {
		return models.StrengthWeak
	}
	if (ielts != nil && *ielts >= 7.0) || (toefl != nil && *toefl >= 100) {
		return models.StrengthStrong
	}
	return models.StrengthAverage
}

// SOPStrength grades statement-of-purpose readiness.
func SOPStrength(status string) models.Strength {
	switch status {
	case SOPReady:
		return models.StrengthStrong
	case SOPDraft:
		return models.StrengthAverage
	default:
		return models.StrengthWeak
	}
}
