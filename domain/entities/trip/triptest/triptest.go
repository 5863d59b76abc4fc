// Package triptest builds trip collections for tests.
package triptest

import (
	"testing"
	"time"

	"bikeshare/domain/entities/trip"
)

const dateLayout = "2006-01-02 15:04:05"

// Trip describes a trip with plain values. A zero BirthYear means the rider has none.
type Trip struct {
	Start     string
	Duration  int64
	From      string
	To        string
	UserType  string
	Gender    string
	BirthYear int
}

// NewCollection builds a collection with trips in the given order
func NewCollection(tb testing.TB, city string, trips ...Trip) *trip.Collection {
	tb.Helper()

	records := make([]trip.Record, 0, len(trips))
	for idx, tripValues := range trips {
		startTime, err := time.Parse(dateLayout, tripValues.Start)
		if err != nil {
			tb.Fatalf("invalid start time %q: %v", tripValues.Start, err)
		}

		data := trip.TripData{
			StartTime:    startTime,
			EndTime:      startTime.Add(time.Duration(tripValues.Duration) * time.Second),
			Duration:     tripValues.Duration,
			StartStation: tripValues.From,
			EndStation:   tripValues.To,
			UserType:     tripValues.UserType,
			Gender:       tripValues.Gender,
		}
		if tripValues.BirthYear != 0 {
			birthYear := tripValues.BirthYear
			data.BirthYear = &birthYear
		}
		records = append(records, trip.NewRecord(idx, data))
	}

	return trip.NewCollection(city, records)
}

const (
	Canal    = "Canal St & Adams St"
	Clinton  = "Clinton St & Madison St"
	Streeter = "Streeter Dr & Grand Ave"
	Lake     = "Lake Shore Dr & Monroe St"
)

// ChicagoTrips are the ten trips of the chicago fixture:
// six in January (four on Monday), two in February, one in March and one in June.
var ChicagoTrips = []Trip{
	{"2017-01-02 08:05:00", 900, Canal, Clinton, "Subscriber", "Male", 1985},
	{"2017-01-02 08:30:00", 600, Canal, Clinton, "Subscriber", "Female", 1990},
	{"2017-01-03 17:10:00", 1200, Clinton, Canal, "Subscriber", "Male", 1985},
	{"2017-01-07 08:15:00", 3600, Streeter, Lake, "Customer", "", 0},
	{"2017-01-09 12:00:00", 300, Canal, Streeter, "Subscriber", "Female", 1972},
	{"2017-01-16 08:45:00", 900, Canal, Clinton, "Customer", "", 0},
	{"2017-02-06 08:05:00", 1200, Streeter, Canal, "Subscriber", "Male", 1999},
	{"2017-02-14 18:00:00", 1800, Lake, Streeter, "Customer", "", 0},
	{"2017-03-01 07:55:00", 900, Canal, Clinton, "Subscriber", "Female", 1990},
	{"2017-06-30 23:59:00", 660, Clinton, Canal, "Dependent", "Male", 2001},
}

// Chicago returns the chicago fixture as a collection
func Chicago(tb testing.TB) *trip.Collection {
	tb.Helper()
	return NewCollection(tb, "chicago", ChicagoTrips...)
}
