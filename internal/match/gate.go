package match

import "github.com/uniadvisor/counsel-api/internal/models"

// GuidanceUnlocked reports whether application guidance may be shown.
// Guidance is tied to a committed university: it opens only once a
// shortlist entry is locked, and task data must not be exposed before
// then.
func GuidanceUnlocked(entries []models.ShortlistEntry) bool {
	return hasLockedEntry(entries)
}

// LockedEntry returns the locked shortlist entry, if any.
func LockedEntry(entries []models.ShortlistEntry) (models.ShortlistEntry, bool) {
	for _, entry := range entries {
		if entry.IsLocked {
			return entry, true
		}
	}
	return models.ShortlistEntry{}, false
}

func hasLockedEntry(entries []models.ShortlistEntry) bool {
	_, ok := LockedEntry(entries)
	return ok
}
