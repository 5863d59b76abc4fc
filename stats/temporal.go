package stats

import (
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/trip"
)

const hoursPerDay = 24

// TemporalStats most frequent times of travel
// + Month: most common month number and its trips
// + DayOfWeek: most common day name and its trips
// + Hour: most common start hour and its trips
// + TripsPerHour: amount of trips started at each hour of the day
type TemporalStats struct {
	Month        Mode[int]        `json:"month"`
	DayOfWeek    Mode[string]     `json:"day_of_week"`
	Hour         Mode[int]        `json:"hour"`
	TripsPerHour [hoursPerDay]int `json:"trips_per_hour"`
}

// Temporal returns the most frequent month, day of week and start hour of the view
func Temporal(view trip.View) (TemporalStats, error) {
	if err := checkNotEmpty(view); err != nil {
		return TemporalStats{}, err
	}

	months := tripcounter.NewOrderedTripCounter[int]()
	days := tripcounter.NewOrderedTripCounter[string]()
	hours := tripcounter.NewOrderedTripCounter[int]()
	view.Each(func(record *trip.Record) {
		months.UpdateCounter(record.Month)
		days.UpdateCounter(record.DayOfWeek)
		hours.UpdateCounter(record.Hour)
	})

	var temporalStats TemporalStats
	temporalStats.Month, _ = months.Mode()
	temporalStats.DayOfWeek, _ = days.Mode()
	temporalStats.Hour, _ = hours.Mode()
	for hour := 0; hour < hoursPerDay; hour++ {
		temporalStats.TripsPerHour[hour] = hours.GetCounter(hour)
	}

	return temporalStats, nil
}
