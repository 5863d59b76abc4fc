package stats

import (
	"bikeshare/domain/business/durationaccumulator"
	"bikeshare/domain/entities/trip"
)

// DurationStats total and average trip duration, all values in seconds
type DurationStats struct {
	Trips    int     `json:"trips"`
	Total    int64   `json:"total"`
	Mean     float64 `json:"mean"`
	Shortest int64   `json:"shortest"`
	Longest  int64   `json:"longest"`
}

// Duration returns the total and mean duration of the trips of the view
func Duration(view trip.View) (DurationStats, error) {
	if err := checkNotEmpty(view); err != nil {
		return DurationStats{}, err
	}

	accumulator := durationaccumulator.NewDurationAccumulator()
	view.Each(func(record *trip.Record) {
		accumulator.UpdateAccumulator(record.Duration)
	})

	mean, err := accumulator.GetAverageDuration()
	if err != nil {
		return DurationStats{}, err
	}

	return DurationStats{
		Trips:    accumulator.Counter,
		Total:    accumulator.TotalDuration,
		Mean:     mean,
		Shortest: accumulator.Shortest,
		Longest:  accumulator.Longest,
	}, nil
}
