// Package match holds the pure decision logic shared by every surface of
// the counsellor: fit/risk classification, journey stage resolution, and
// the guidance gate. Nothing in this package performs I/O or can fail.
package match

import (
	"fmt"
	"math"

	"github.com/uniadvisor/counsel-api/internal/models"
)

// Risk is the coarse admission-difficulty bucket attached to a
// classification.
type Risk string

// Risk values.
const (
	RiskSafe   Risk = "SAFE"
	RiskTarget Risk = "TARGET"
	RiskReach  Risk = "REACH"
)

// Band is the Low/Medium/High vocabulary used on shortlist cards. It is a
// distinct taxonomy from Risk and is derived from the fit score, not from
// the GPA difference.
type Band string

// Band values.
const (
	BandLow    Band = "Low"
	BandMedium Band = "Medium"
	BandHigh   Band = "High"
)

// DefaultMinGPA is assumed when a university does not publish a GPA
// requirement.
const DefaultMinGPA = 3.0

// Fallback assessment used when the profile carries no GPA.
const (
	fallbackFitScore = 85
	// FallbackBand labels the no-data assessment. Neither Risk value fits
	// an unknown profile, so the Band vocabulary is used instead.
	FallbackBand = BandMedium
)

// Threshold maps a minimum GPA difference to a fit score and risk bucket.
type Threshold struct {
	MinDiff  float64
	FitScore int
	Risk     Risk
}

// DefaultThresholds is evaluated top-down, first match wins. The
// -0.2..0 bucket is classified TARGET here; flipping it to REACH is a
// one-line edit of this table.
var DefaultThresholds = []Threshold{
	{MinDiff: 0.5, FitScore: 98, Risk: RiskSafe},
	{MinDiff: 0, FitScore: 90, Risk: RiskTarget},
	{MinDiff: -0.2, FitScore: 75, Risk: RiskTarget},
	{MinDiff: math.Inf(-1), FitScore: 60, Risk: RiskReach},
}

// Assessment is the result of classifying a profile against a university.
type Assessment struct {
	FitScore  int    `json:"fit_score"`
	Risk      Risk   `json:"risk_level"`
	Reasoning string `json:"reasoning"`
}

// Classifier evaluates profiles against universities using a threshold
// table. The zero value is not usable; use NewClassifier.
type Classifier struct {
	thresholds []Threshold
}

// NewClassifier builds a classifier. A nil or empty table falls back to
// DefaultThresholds.
func NewClassifier(thresholds []Threshold) Classifier {
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds
	}
	return Classifier{thresholds: thresholds}
}

// Classify computes the fit assessment for one profile/university pair.
// It is deterministic: the result depends only on profile.GPA and
// university.MinGPA.
func (c Classifier) Classify(profile models.Profile, university models.University) Assessment {
	if profile.GPA == nil {
		return Assessment{
			FitScore:  fallbackFitScore,
			Risk:      Risk(FallbackBand),
			Reasoning: "We don't have your GPA yet, so this is a provisional medium-confidence match. Complete your profile for a precise assessment.",
		}
	}

	minGPA := DefaultMinGPA
	if university.MinGPA != nil {
		minGPA = *university.MinGPA
	}

	diff := *profile.GPA - minGPA
	for _, t := range c.thresholds {
		if diff >= t.MinDiff {
			return Assessment{
				FitScore:  t.FitScore,
				Risk:      t.Risk,
				Reasoning: reasoning(*profile.GPA, minGPA, t.Risk),
			}
		}
	}

	// Unreachable with a table whose last entry is -Inf; kept so a
	// misconfigured table still yields a sane answer.
	last := c.thresholds[len(c.thresholds)-1]
	return Assessment{FitScore: last.FitScore, Risk: last.Risk, Reasoning: reasoning(*profile.GPA, minGPA, last.Risk)}
}

// Classify applies the default threshold table.
func Classify(profile models.Profile, university models.University) Assessment {
	return NewClassifier(nil).Classify(profile, university)
}

// BandFor maps a fit score onto the Low/Medium/High vocabulary.
func BandFor(fitScore int) Band {
	switch {
	case fitScore >= 75:
		return BandLow
	case fitScore >= 50:
		return BandMedium
	default:
		return BandHigh
	}
}

// CategoryFor maps a risk bucket onto the dream/target/safe shortlist
// categories used for recommendation grouping.
func CategoryFor(risk Risk) models.Category {
	switch risk {
	case RiskSafe:
		return models.CategorySafe
	case RiskReach:
		return models.CategoryDream
	default:
		return models.CategoryTarget
	}
}

func reasoning(gpa, minGPA float64, risk Risk) string {
	switch risk {
	case RiskSafe:
		return fmt.Sprintf("Your GPA of %.2f comfortably clears the %.2f requirement, making this a strong admit for your profile.", gpa, minGPA)
	case RiskReach:
		return fmt.Sprintf("Your GPA of %.2f sits well below the %.2f requirement, so treat this as a reach and strengthen the rest of your application.", gpa, minGPA)
	default:
		if gpa >= minGPA {
			return fmt.Sprintf("Your GPA of %.2f meets the %.2f requirement; with solid test scores this is a realistic target.", gpa, minGPA)
		}
		return fmt.Sprintf("Your GPA of %.2f is slightly below the %.2f requirement; a strong SOP and test scores can still make this a viable target.", gpa, minGPA)
	}
}
