package analysis

import (
	"time"

	"bikeshare/domain/entities"
	"bikeshare/domain/entities/trip"
	"bikeshare/stats"
)

// Report contains the four stat groups of the trips of a city that matched a month and a day.
// Groups are nil when Empty is true.
// + Month, Day: lowercase names of the filters applied, "all" when not restricted
// + Trips: amount of trips that matched
// + AvailableMonths: months of the city with trips, so callers can explain an empty report
// + Timings: time spent on each group
type Report struct {
	Metadata        entities.Metadata    `json:"metadata"`
	Month           string               `json:"month"`
	Day             string               `json:"day"`
	Trips           int                  `json:"trips"`
	Empty           bool                 `json:"empty"`
	AvailableMonths []int                `json:"available_months"`
	Temporal        *stats.TemporalStats `json:"temporal,omitempty"`
	Station         *stats.StationStats  `json:"station,omitempty"`
	Duration        *stats.DurationStats `json:"duration,omitempty"`
	User            *stats.UserStats     `json:"user,omitempty"`
	Timings         Timings              `json:"-"`
}

type Timings struct {
	Temporal time.Duration
	Station  time.Duration
	Duration time.Duration
	User     time.Duration
}

// TripPage is a page of raw trips
// + Offset: position in the selection of the first trip of the page
// + Count: page size requested
// + Total: amount of trips of the selection
// + NextOffset: offset of the following page, nil on the last one
type TripPage struct {
	Metadata   entities.Metadata `json:"metadata"`
	Offset     int               `json:"offset"`
	Count      int               `json:"count"`
	Total      int               `json:"total"`
	NextOffset *int              `json:"next_offset"`
	Trips      []trip.Record     `json:"trips"`
}
