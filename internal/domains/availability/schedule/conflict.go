package schedule

// InScope reports whether other competes with candidate for the same
// equipment.
func (r Rules) InScope(candidate, other BookingInterval) bool {
	return r.Scope == ScopeGlobal || candidate.PackageID == other.PackageID
}

// FindConflicts returns the existing intervals whose buffered range overlaps
// the candidate, in input order. Inactive records and the candidate's own
// record never count.
func (r Rules) FindConflicts(candidate BookingInterval, existing []BookingInterval) []BookingInterval {
	var conflicts []BookingInterval

	for _, other := range existing {
		if !IsActive(other.Ref.Source, other.Status) {
			continue
		}

		if candidate.SameRecord(other) || !r.InScope(candidate, other) {
			continue
		}

		if candidate.Overlaps(other) {
			conflicts = append(conflicts, other)
		}
	}

	return conflicts
}

// CheckCandidate wraps FindConflicts into an error for write paths.
func (r Rules) CheckCandidate(candidate BookingInterval, existing []BookingInterval) error {
	if conflicts := r.FindConflicts(candidate, existing); len(conflicts) > 0 {
		return NewConflictError(conflicts)
	}

	return nil
}

// RemainingExtensionHours is how many more hours the booking may be
// extended before hitting the configured cap.
func (r Rules) RemainingExtensionHours(target BookingInterval) int {
	return max(r.MaxExtensionHours-target.ExtensionHours, 0)
}

// ExtensionConflicts validates an extension request and returns what the
// extended interval would collide with.
func (r Rules) ExtensionConflicts(target BookingInterval, hours int, existing []BookingInterval) ([]BookingInterval, error) {
	if hours < 1 || hours > r.RemainingExtensionHours(target) {
		return nil, ErrInvalidExtension
	}

	return r.FindConflicts(target.Extend(hours), existing), nil
}

// PotentialExtensionHours is the largest whole-hour extension that keeps the
// booking clear of every other active interval.
func (r Rules) PotentialExtensionHours(target BookingInterval, existing []BookingInterval) int {
	for hours := r.RemainingExtensionHours(target); hours > 0; hours-- {
		if len(r.FindConflicts(target.Extend(hours), existing)) == 0 {
			return hours
		}
	}

	return 0
}
