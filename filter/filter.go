package filter

import (
	"fmt"
	"strings"
	"time"

	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
)

// All is the token that disables a month or day restriction
const All = "all"

// Criteria is a validated month and day-of-week selection. Build it with ParseCriteria.
// + Month: 1 = January ... 12 = December, 0 means every month
// + Day: full English day name, empty means every day
type Criteria struct {
	Month int
	Day   string
}

// ParseCriteria validates the month and day tokens typed by a user. Both are case-insensitive
// full names, or "all". Fails with ErrInvalidMonth or ErrInvalidDay.
func ParseCriteria(month string, day string) (Criteria, error) {
	monthNumber, err := ParseMonth(month)
	if err != nil {
		return Criteria{}, err
	}

	dayName, err := ParseDay(day)
	if err != nil {
		return Criteria{}, err
	}

	return Criteria{Month: monthNumber, Day: dayName}, nil
}

// ParseMonth returns the number of a month name, 0 for "all"
func ParseMonth(month string) (int, error) {
	normalized := strings.ToLower(strings.TrimSpace(month))
	if normalized == All {
		return 0, nil
	}
	for number := time.January; number <= time.December; number++ {
		if strings.ToLower(number.String()) == normalized {
			return int(number), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", dataErrors.ErrInvalidMonth, month)
}

// ParseDay returns the canonical name of a day of week, empty for "all"
func ParseDay(day string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(day))
	if normalized == All {
		return "", nil
	}
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		if strings.ToLower(weekday.String()) == normalized {
			return weekday.String(), nil
		}
	}
	return "", fmt.Errorf("%w: %q", dataErrors.ErrInvalidDay, day)
}

// IsRestrictive returns true if the criteria excludes any trip
func (c Criteria) IsRestrictive() bool {
	return c.Month != 0 || c.Day != ""
}

// MonthName returns the lowercase month name, or "all"
func (c Criteria) MonthName() string {
	if c.Month == 0 {
		return All
	}
	return strings.ToLower(time.Month(c.Month).String())
}

// DayName returns the lowercase day name, or "all"
func (c Criteria) DayName() string {
	if c.Day == "" {
		return All
	}
	return strings.ToLower(c.Day)
}

func (c Criteria) String() string {
	return fmt.Sprintf("month: %s, day: %s", c.MonthName(), c.DayName())
}

// Matches returns true if a trip satisfies both the month and the day restriction
func (c Criteria) Matches(record *trip.Record) bool {
	if c.Month != 0 && record.Month != c.Month {
		return false
	}
	if c.Day != "" && record.DayOfWeek != c.Day {
		return false
	}
	return true
}

// Apply returns the trips of view that match the criteria, in the same order. The view is
// returned as is when the criteria has no restriction. No match gives an empty view.
func Apply(view trip.View, criteria Criteria) trip.View {
	if !criteria.IsRestrictive() {
		return view
	}
	return view.Select(criteria.Matches)
}

// Filter validates month and day and applies them to every trip of collection
func Filter(collection *trip.Collection, month string, day string) (trip.View, error) {
	criteria, err := ParseCriteria(month, day)
	if err != nil {
		return trip.View{}, err
	}
	return Apply(collection.View(), criteria), nil
}
