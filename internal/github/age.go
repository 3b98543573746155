package github

import "time"

// Age is an elapsed-time split used for the fetch card "Uptime" line.
type Age struct {
	Years  int
	Months int
	Days   int
}

// CalcAge returns the calendar time elapsed since the given birthday.
func CalcAge(day, month, year int) Age {
	return ageAt(day, month, year, time.Now())
}

// ageAt counts whole calendar months from the birthday to now, then the
// leftover days from the month-anchor date. The anchor clamps to the month
// end, so a day-31 birthday measured in February does not overshoot.
func ageAt(day, month, year int, now time.Time) Age {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	months := (today.Year()-year)*12 + int(today.Month()) - month
	if today.Day() < day {
		months--
	}
	anchorYear := year + (month-1+months)/12
	anchorMonth := time.Month((month-1+months)%12 + 1)
	anchorDay := day
	if last := daysIn(anchorYear, anchorMonth); anchorDay > last {
		anchorDay = last
	}
	anchor := time.Date(anchorYear, anchorMonth, anchorDay, 0, 0, 0, 0, time.UTC)
	return Age{
		Years:  months / 12,
		Months: months % 12,
		Days:   int(today.Sub(anchor).Hours() / 24),
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
