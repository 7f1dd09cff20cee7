package domain

import "time"

// FindConflicts returns every active session whose (buffer-expanded) time
// range intersects the candidate range. The session with id excludeID is
// skipped so an updated session never conflicts with itself; inactive
// sessions never block a candidate. A linear scan is fine at per-event
// session counts.
func FindConflicts(candidate TimeRange, sessions []*Session, excludeID string, buffer time.Duration) []*Session {
	var conflicts []*Session
	for _, s := range sessions {
		if !s.IsActive {
			continue
		}
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if candidate.Overlaps(s.Window(), buffer) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}
