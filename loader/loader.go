package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"bikeshare/config"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
)

const loaderStr = "loader"

// Loader reads the trips of the configured cities
type Loader struct {
	config config.LoaderConfig
}

func NewLoader(loaderConfig config.LoaderConfig) *Loader {
	return &Loader{
		config: loaderConfig,
	}
}

func (l *Loader) getLogMessage(method string, city string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[%s][city: %s][method: %s][status: ERROR] %s: %s", loaderStr, city, method, message, err.Error())
	}
	return fmt.Sprintf("[%s][city: %s][method: %s][status: OK] %s", loaderStr, city, method, message)
}

// Cities returns the city ids that can be loaded
func (l *Loader) Cities() []string {
	return l.config.CityIDs()
}

// Load reads every trip of a city and derives the calendar fields of each one.
// Fails with a DataSourceError if the city is unknown or its source cannot be read or lacks
// a required column, and with a ParseError if any row has an invalid value. In both cases
// no trip is returned.
func (l *Loader) Load(ctx context.Context, cityID string) (*trip.Collection, error) {
	city, cityConfig, ok := l.config.GetCity(cityID)
	if !ok {
		return nil, dataErrors.NewDataSourceError(cityID, dataErrors.ErrUnknownCity)
	}

	start := time.Now()
	sourcePath := l.config.ResolvePath(cityConfig.Source)
	log.Debug(l.getLogMessage("Load", city, fmt.Sprintf("reading trips from %s", sourcePath), nil))

	source, err := openSource(ctx, sourcePath, cityConfig)
	if err != nil {
		log.Error(l.getLogMessage("Load", city, "error opening source", err))
		return nil, dataErrors.NewDataSourceError(sourcePath, err)
	}
	defer func() {
		if err := source.Close(); err != nil {
			log.Error(l.getLogMessage("Load", city, "error closing source", err))
		}
	}()

	records, err := l.readRecords(source, sourcePath)
	if err != nil {
		log.Error(l.getLogMessage("Load", city, "error reading trips", err))
		return nil, err
	}

	log.Info(l.getLogMessage("Load", city, fmt.Sprintf("%v trips loaded in %v", len(records), time.Since(start)), nil))
	return trip.NewCollection(city, records), nil
}

func (l *Loader) readRecords(source rowSource, sourcePath string) ([]trip.Record, error) {
	columns, err := newTripColumns(source.Header(), l.config.Columns)
	if err != nil {
		return nil, dataErrors.NewDataSourceError(sourcePath, err)
	}

	parser := rowParser{
		columns:     columns,
		dateLayouts: l.config.DateLayouts,
	}

	var records []trip.Record
	for rowNumber := 1; ; rowNumber++ {
		row, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dataErrors.NewDataSourceError(sourcePath, fmt.Errorf("error reading row %v: %w", rowNumber, err))
		}

		tripData, err := parser.parse(rowNumber, row)
		if err != nil {
			return nil, err
		}
		records = append(records, trip.NewRecord(rowNumber-1, tripData))
	}

	return records, nil
}

// LoadStations returns the station directory of a city, nil if the city has none configured
func (l *Loader) LoadStations(cityID string) (*station.Directory, error) {
	city, cityConfig, ok := l.config.GetCity(cityID)
	if !ok {
		return nil, dataErrors.NewDataSourceError(cityID, dataErrors.ErrUnknownCity)
	}
	if cityConfig.Stations == "" {
		return nil, nil
	}

	stationsPath := l.config.ResolvePath(cityConfig.Stations)
	directory, err := station.LoadDirectory(stationsPath)
	if err != nil {
		log.Error(l.getLogMessage("LoadStations", city, "error loading stations", err))
		return nil, dataErrors.NewDataSourceError(stationsPath, err)
	}

	log.Debug(l.getLogMessage("LoadStations", city, fmt.Sprintf("%v stations loaded", directory.Len()), nil))
	return directory, nil
}
