package durationaccumulator

import (
	dataErrors "bikeshare/domain/errors"
)

// DurationAccumulator struct that collects data about the duration of a set of trips
// + Counter: counts the amount of trips collected
// + TotalDuration: sum of durations in seconds. 64 bits so large cities cannot overflow it
// + Shortest: duration of the shortest trip collected
// + Longest: duration of the longest trip collected
type DurationAccumulator struct {
	Counter       int   `json:"counter"`
	TotalDuration int64 `json:"total_duration"`
	Shortest      int64 `json:"shortest"`
	Longest       int64 `json:"longest"`
}

func NewDurationAccumulator() *DurationAccumulator {
	return &DurationAccumulator{}
}

func (da *DurationAccumulator) UpdateAccumulator(duration int64) {
	if da.Counter == 0 || duration < da.Shortest {
		da.Shortest = duration
	}
	if da.Counter == 0 || duration > da.Longest {
		da.Longest = duration
	}
	da.Counter += 1
	da.TotalDuration += duration
}

// GetAverageDuration returns the mean duration in seconds. Fails with ErrEmptyAggregation
// if no trip was collected.
func (da *DurationAccumulator) GetAverageDuration() (float64, error) {
	if da.Counter == 0 {
		return 0, dataErrors.ErrEmptyAggregation
	}
	return float64(da.TotalDuration) / float64(da.Counter), nil
}
