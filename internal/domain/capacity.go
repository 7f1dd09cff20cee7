package domain

// AvailableCapacity returns the event's remaining room given a snapshot of its
// registrations. A registration whose id equals excludeID is left out of the
// sum, so a registration being updated does not count its own prior
// contribution. The result can be non-positive; callers must treat that as
// "no room".
func AvailableCapacity(event *Event, regs []*Registration, excludeID string) int {
	registered := 0
	for _, reg := range regs {
		if excludeID != "" && reg.ID == excludeID {
			continue
		}
		registered += reg.NumberOfParticipants
	}
	return event.Capacity - registered
}

// CanAccommodate reports whether the event has room for requested additional
// participants, given a snapshot of its registrations. Pure over the supplied
// snapshot; the caller is responsible for reading fresh state before commit.
func CanAccommodate(event *Event, regs []*Registration, requested int, excludeID string) bool {
	return requested <= AvailableCapacity(event, regs, excludeID)
}
