// Package anniversary holds the date arithmetic for upcoming film
// anniversaries. All functions are pure: the reference date is passed
// in, never read from the clock.
package anniversary

import "time"

// Next returns the next date on or after today that shares release's
// month and day. If today is the anniversary itself, today is returned.
// Feb 29 releases normalize to Mar 1 in non-leap years, which is how
// time.Date already behaves.
func Next(release, today time.Time) time.Time {
	today = truncate(today)
	next := time.Date(today.Year(), release.Month(), release.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, release.Month(), release.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

// NextMilestone returns the next multiple-of-5-year anniversary of
// release on or after today, together with the number of elapsed years
// it celebrates. The returned date is never in the past and the year
// count is always a non-negative multiple of 5.
func NextMilestone(release, today time.Time) (time.Time, int) {
	today = truncate(today)

	years := today.Year() - release.Year()
	if years < 0 {
		years = 0
	}
	if rem := years % 5; rem != 0 {
		years += 5 - rem
	}

	date := milestoneDate(release, years)
	if date.Before(today) {
		years += 5
		date = milestoneDate(release, years)
	}
	return date, years
}

func milestoneDate(release time.Time, years int) time.Time {
	return time.Date(release.Year()+years, release.Month(), release.Day(), 0, 0, 0, 0, time.UTC)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
