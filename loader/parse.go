package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"bikeshare/config"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
)

const (
	absentColumn = -1

	maxDuration  = 1 << 53
	minBirthYear = 1
	maxBirthYear = 9999
)

// tripColumns contains the index of each field in a source header, absentColumn if missing
type tripColumns struct {
	StartTime    int
	EndTime      int
	Duration     int
	StartStation int
	EndStation   int
	UserType     int
	Gender       int
	BirthYear    int
	names        config.ColumnsConfig
}

// newTripColumns finds the configured columns in header. Fails with ErrMissingColumn if
// start time, trip duration, start station or end station are not there.
func newTripColumns(header []string, names config.ColumnsConfig) (tripColumns, error) {
	find := func(name string) int {
		if name == "" {
			return absentColumn
		}
		for idx, column := range header {
			if strings.EqualFold(strings.TrimSpace(column), name) {
				return idx
			}
		}
		return absentColumn
	}

	columns := tripColumns{
		StartTime:    find(names.StartTime),
		EndTime:      find(names.EndTime),
		Duration:     find(names.Duration),
		StartStation: find(names.StartStation),
		EndStation:   find(names.EndStation),
		UserType:     find(names.UserType),
		Gender:       find(names.Gender),
		BirthYear:    find(names.BirthYear),
		names:        names,
	}

	required := []struct {
		name  string
		index int
	}{
		{names.StartTime, columns.StartTime},
		{names.Duration, columns.Duration},
		{names.StartStation, columns.StartStation},
		{names.EndStation, columns.EndStation},
	}
	var missing []string
	for _, column := range required {
		if column.index == absentColumn {
			missing = append(missing, column.name)
		}
	}
	if len(missing) > 0 {
		return tripColumns{}, fmt.Errorf("%w: %s", dataErrors.ErrMissingColumn, strings.Join(missing, ", "))
	}

	return columns, nil
}

type rowParser struct {
	columns     tripColumns
	dateLayouts []string
}

// parse builds the TripData of a row. rowNumber is only used to build the ParseError.
func (rp rowParser) parse(rowNumber int, row []string) (trip.TripData, error) {
	value := func(index int) string {
		if index == absentColumn || index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	startTimeStr := value(rp.columns.StartTime)
	startTime, err := rp.parseTime(startTimeStr)
	if err != nil {
		return trip.TripData{}, dataErrors.NewParseError(rowNumber, rp.columns.names.StartTime, startTimeStr, err)
	}

	var endTime time.Time
	if endTimeStr := value(rp.columns.EndTime); endTimeStr != "" {
		endTime, err = rp.parseTime(endTimeStr)
		if err != nil {
			return trip.TripData{}, dataErrors.NewParseError(rowNumber, rp.columns.names.EndTime, endTimeStr, err)
		}
	}

	durationStr := value(rp.columns.Duration)
	duration, err := parseDuration(durationStr)
	if err != nil {
		return trip.TripData{}, dataErrors.NewParseError(rowNumber, rp.columns.names.Duration, durationStr, err)
	}

	var birthYear *int
	if birthYearStr := value(rp.columns.BirthYear); birthYearStr != "" {
		year, err := parseBirthYear(birthYearStr)
		if err != nil {
			return trip.TripData{}, dataErrors.NewParseError(rowNumber, rp.columns.names.BirthYear, birthYearStr, err)
		}
		birthYear = &year
	}

	return trip.TripData{
		StartTime:    startTime,
		EndTime:      endTime,
		Duration:     duration,
		StartStation: value(rp.columns.StartStation),
		EndStation:   value(rp.columns.EndStation),
		UserType:     value(rp.columns.UserType),
		Gender:       value(rp.columns.Gender),
		BirthYear:    birthYear,
	}, nil
}

func (rp rowParser) parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", dataErrors.ErrInvalidDate)
	}
	for _, layout := range rp.dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, dataErrors.ErrInvalidDate
}

// parseDuration accepts integer or decimal seconds, e.g. 1039 or 1266.248, rounded to the second
func parseDuration(value string) (int64, error) {
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, dataErrors.ErrInvalidDuration
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: negative duration", dataErrors.ErrInvalidDuration)
	}
	if seconds > maxDuration {
		return 0, fmt.Errorf("%w: duration out of range", dataErrors.ErrInvalidDuration)
	}
	return int64(math.Round(seconds)), nil
}

// parseBirthYear accepts 1992 and 1992.0, the latter is how pandas-exported files store it
func parseBirthYear(value string) (int, error) {
	year, err := strconv.ParseFloat(value, 64)
	if err != nil || year != math.Trunc(year) || math.IsInf(year, 0) {
		return 0, dataErrors.ErrInvalidBirthYear
	}
	if year < minBirthYear || year > maxBirthYear {
		return 0, fmt.Errorf("%w: year out of range", dataErrors.ErrInvalidBirthYear)
	}
	return int(year), nil
}
