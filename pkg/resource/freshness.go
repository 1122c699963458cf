package resource

import "time"

// freshAt is the staleness clock: a pure computation of the freshness verdict
// from cache state, an optional time-to-live and the current time.
//
// Rules, in order:
//   - no cached value: stale.
//   - manual-stale flag set: stale.
//   - nil ttl: fresh regardless of age.
//   - otherwise fresh iff elapsed < ttl. The boundary counts as stale, so a
//     zero ttl expires a value at the instant of its fetch.
//
// Elapsed time saturates at zero: a system clock stepped backwards reports
// the value fresh rather than panicking or going negative.
func freshAt(hasValue, markedStale bool, fetchedAt time.Time, ttl *time.Duration, now time.Time) bool {
	if !hasValue || markedStale {
		return false
	}
	if ttl == nil {
		return true
	}
	elapsed := now.Sub(fetchedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed < *ttl
}
