package stats

import (
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/trip"
)

// BirthYearStats earliest, most recent and most common year of birth
type BirthYearStats struct {
	Earliest   int       `json:"earliest"`
	MostRecent int       `json:"most_recent"`
	MostCommon Mode[int] `json:"most_common"`
}

// UserStats bikeshare users of a view
// + UserTypes: trips per user type, most frequent first. Trips without user type are not counted
// + Genders: trips per gender over the trips that have one, most frequent first
// + BirthYears: nil when no trip has a birth year
type UserStats struct {
	UserTypes  []CategoryCount `json:"user_types"`
	Genders    []CategoryCount `json:"genders"`
	BirthYears *BirthYearStats `json:"birth_years,omitempty"`
}

// User returns the counts per user type and gender, and the birth year stats of the view
func User(view trip.View) (UserStats, error) {
	if err := checkNotEmpty(view); err != nil {
		return UserStats{}, err
	}

	userTypes := tripcounter.NewOrderedTripCounter[string]()
	genders := tripcounter.NewOrderedTripCounter[string]()
	birthYears := tripcounter.NewOrderedTripCounter[int]()
	view.Each(func(record *trip.Record) {
		if record.UserType != "" {
			userTypes.UpdateCounter(record.UserType)
		}
		if record.HasGender() {
			genders.UpdateCounter(record.Gender)
		}
		if birthYear, ok := record.GetBirthYear(); ok {
			birthYears.UpdateCounter(birthYear)
		}
	})

	userStats := UserStats{
		UserTypes: toCategoryCounts(userTypes),
		Genders:   toCategoryCounts(genders),
	}

	mostCommon, ok := birthYears.Mode()
	if ok {
		earliest, _ := birthYears.Min()
		mostRecent, _ := birthYears.Max()
		userStats.BirthYears = &BirthYearStats{
			Earliest:   earliest,
			MostRecent: mostRecent,
			MostCommon: mostCommon,
		}
	}

	return userStats, nil
}
