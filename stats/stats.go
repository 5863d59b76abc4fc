// Package stats computes the descriptive statistics of a filtered set of trips.
//
// Every function makes a single pass over the view and returns ErrEmptyAggregation when the
// view has no trips, so callers can render a "no results" state instead of zeros.
// Modes break ties by the lowest value: numeric order for months, hours and birth years,
// lexical order for day and station names, and (start, end) order for routes.
package stats

import (
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
)

// Mode is the most frequent value of a statistic and its amount of trips
type Mode[K comparable] = tripcounter.Mode[K]

// CategoryCount is the amount of trips of a category, e.g. a user type
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func checkNotEmpty(view trip.View) error {
	if view.Len() == 0 {
		return dataErrors.ErrEmptyAggregation
	}
	return nil
}

func toCategoryCounts(counter *tripcounter.TripCounter[string]) []CategoryCount {
	ranking := counter.Ranking()
	categories := make([]CategoryCount, 0, len(ranking))
	for _, keyCount := range ranking {
		categories = append(categories, CategoryCount{Category: keyCount.Key, Count: keyCount.Count})
	}
	return categories
}
