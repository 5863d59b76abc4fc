package trip

import (
	"time"
)

// TripData struct that contains the raw trip data as read from a city source
// + StartTime: date and time in which the trip begins
// + EndTime: date and time in which the trip ends. Zero when the source has no end time
// + Duration: duration of the trip in seconds
// + StartStation: name of the station in which the trip begins
// + EndStation: name of the station in which the trip ends
// + UserType: rider category, e.g. Subscriber or Customer. Empty when unknown
// + Gender: rider gender. Empty when absent
// + BirthYear: rider birth year. Nil when absent
type TripData struct {
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Duration     int64     `json:"duration"`
	StartStation string    `json:"start_station"`
	EndStation   string    `json:"end_station"`
	UserType     string    `json:"user_type,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	BirthYear    *int      `json:"birth_year,omitempty"`
}

// Record is a TripData plus the calendar fields derived from its start time.
// Derived fields are only set by NewRecord, so they are computed once per trip.
// + Index: position of the trip in the source, starting at 0
// + Month: 1 = January ... 12 = December
// + DayOfWeek: full English name, e.g. Monday
// + Hour: start hour, 0 to 23
type Record struct {
	TripData
	Index     int    `json:"index"`
	Month     int    `json:"month"`
	DayOfWeek string `json:"day_of_week"`
	Hour      int    `json:"hour"`
}

func NewRecord(index int, data TripData) Record {
	return Record{
		TripData:  data,
		Index:     index,
		Month:     int(data.StartTime.Month()),
		DayOfWeek: data.StartTime.Weekday().String(),
		Hour:      data.StartTime.Hour(),
	}
}

// HasGender returns true if the source had a gender for the trip
func (r Record) HasGender() bool {
	return r.Gender != ""
}

// GetBirthYear returns the rider birth year and whether it was present
func (r Record) GetBirthYear() (int, bool) {
	if r.BirthYear == nil {
		return 0, false
	}
	return *r.BirthYear, true
}
