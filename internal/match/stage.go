package match

import "github.com/uniadvisor/counsel-api/internal/models"

// Stage is the derived phase of a student's journey. It is computed from
// profile and shortlist state on every read and is never stored, so it
// cannot drift from the data it summarises.
type Stage string

// Journey stages, in order.
const (
	StageBuildingProfile         Stage = "building_profile"
	StageDiscoveringUniversities Stage = "discovering_universities"
	StageFinalizingUniversities  Stage = "finalizing_universities"
	StagePreparingApplications   Stage = "preparing_applications"
)

// Progress returns the fixed display percentage for the stage.
func (s Stage) Progress() int {
	switch s {
	case StagePreparingApplications:
		return 100
	case StageFinalizingUniversities:
		return 75
	case StageDiscoveringUniversities:
		return 50
	default:
		return 25
	}
}

// ResolveStage derives the current stage. Rules are evaluated top-down,
// first match wins: a locked entry always dominates, regardless of how
// many universities are shortlisted.
func ResolveStage(onboardingCompleted bool, shortlistCount int, hasLocked bool) Stage {
	switch {
	case hasLocked:
		return StagePreparingApplications
	case shortlistCount > 0:
		return StageFinalizingUniversities
	case onboardingCompleted:
		return StageDiscoveringUniversities
	default:
		return StageBuildingProfile
	}
}

// StageFor resolves the stage from a user's persisted state.
func StageFor(user models.User, entries []models.ShortlistEntry) Stage {
	return ResolveStage(user.OnboardingCompleted, len(entries), hasLockedEntry(entries))
}
