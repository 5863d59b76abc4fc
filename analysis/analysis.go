package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"bikeshare/browser"
	"bikeshare/domain/entities"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
	"bikeshare/filter"
	"bikeshare/stats"
)

const (
	analysisStr = "analysis"

	ReportType   = "report"
	TripPageType = "trips-page"
)

// TripLoader reads the trips and stations of a city
type TripLoader interface {
	Cities() []string
	Load(ctx context.Context, cityID string) (*trip.Collection, error)
	LoadStations(cityID string) (*station.Directory, error)
}

// ReportPublisher sends every computed report to an external consumer
type ReportPublisher interface {
	PublishReport(ctx context.Context, city string, report any) error
}

type Option func(*Service)

// WithLegacyRouteKey computes the most common route as (start, start)
func WithLegacyRouteKey() Option {
	return func(s *Service) {
		s.legacyRouteKey = true
	}
}

// WithCollectionCache keeps every loaded city in memory, so it is read from its source only once
func WithCollectionCache() Option {
	return func(s *Service) {
		s.cacheCollections = true
	}
}

// WithProducer sets the producer written in the metadata of reports and pages
func WithProducer(producer string) Option {
	return func(s *Service) {
		s.producer = producer
	}
}

// WithPublisher publishes every report built by Analyze or Report
func WithPublisher(publisher ReportPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// Service runs the analysis of a city: load, filter, aggregate and browse.
// It is safe for concurrent use; every call works on its own view.
type Service struct {
	loader           TripLoader
	legacyRouteKey   bool
	cacheCollections bool
	producer         string
	publisher        ReportPublisher

	mutex    sync.Mutex
	datasets map[string]*dataset
}

type dataset struct {
	collection *trip.Collection
	stations   *station.Directory
}

func NewService(loader TripLoader, options ...Option) *Service {
	service := &Service{
		loader:   loader,
		producer: analysisStr,
		datasets: make(map[string]*dataset),
	}
	for _, option := range options {
		option(service)
	}
	return service
}

func (s *Service) getLogMessage(method string, city string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[%s][city: %s][method: %s][status: ERROR] %s: %s", analysisStr, city, method, message, err.Error())
	}
	return fmt.Sprintf("[%s][city: %s][method: %s][status: OK] %s", analysisStr, city, method, message)
}

// Cities returns the ids of the cities that can be analyzed
func (s *Service) Cities() []string {
	return s.loader.Cities()
}

// Selection is the filtered view of a city together with what is needed to aggregate it
// + City: id of the city
// + Criteria: month and day applied to the city trips
// + View: trips that matched the criteria, in source order
// + AvailableMonths: months with at least one trip in the city, ascending
type Selection struct {
	City            string
	Criteria        filter.Criteria
	View            trip.View
	AvailableMonths []int
	stations        *station.Directory
}

// Select loads a city, or takes it from the cache, and applies criteria to its trips
func (s *Service) Select(ctx context.Context, cityID string, criteria filter.Criteria) (Selection, error) {
	cityData, err := s.open(ctx, cityID)
	if err != nil {
		return Selection{}, err
	}

	collection := cityData.collection
	return Selection{
		City:            collection.City(),
		Criteria:        criteria,
		View:            filter.Apply(collection.View(), criteria),
		AvailableMonths: collection.Months(),
		stations:        cityData.stations,
	}, nil
}

func (s *Service) open(ctx context.Context, cityID string) (*dataset, error) {
	if s.cacheCollections {
		s.mutex.Lock()
		cached, ok := s.datasets[cityID]
		s.mutex.Unlock()
		if ok {
			return cached, nil
		}
	}

	collection, err := s.loader.Load(ctx, cityID)
	if err != nil {
		return nil, err
	}

	stations, err := s.loader.LoadStations(cityID)
	if err != nil {
		// route distances are optional, the analysis goes on without them
		log.Warn(s.getLogMessage("open", cityID, "error loading stations", err))
		stations = nil
	}

	cityData := &dataset{collection: collection, stations: stations}
	if s.cacheCollections {
		s.mutex.Lock()
		s.datasets[cityID] = cityData
		s.mutex.Unlock()
	}
	return cityData, nil
}

// Analyze selects the trips of a city and builds their report
func (s *Service) Analyze(ctx context.Context, cityID string, criteria filter.Criteria) (*Report, error) {
	selection, err := s.Select(ctx, cityID, criteria)
	if err != nil {
		return nil, err
	}
	return s.Report(ctx, selection)
}

// Report computes the four stat groups of a selection. A selection without trips gives an
// Empty report with no groups.
func (s *Service) Report(ctx context.Context, selection Selection) (*Report, error) {
	report := &Report{
		Metadata:        entities.NewMetadata(selection.City, ReportType, s.producer, selection.Criteria.String()),
		Month:           selection.Criteria.MonthName(),
		Day:             selection.Criteria.DayName(),
		Trips:           selection.View.Len(),
		AvailableMonths: selection.AvailableMonths,
	}

	if selection.View.Len() == 0 {
		report.Empty = true
		log.Info(s.getLogMessage("Report", selection.City, fmt.Sprintf("no trips for %s", selection.Criteria), nil))
		s.publish(ctx, report)
		return report, nil
	}

	stationOptions := []stats.StationOption{stats.WithStationDirectory(selection.stations)}
	if s.legacyRouteKey {
		stationOptions = append(stationOptions, stats.WithLegacyRouteKey())
	}

	var err error
	report.Timings.Temporal, err = timed(func() error {
		temporalStats, err := stats.Temporal(selection.View)
		report.Temporal = keep(temporalStats, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	report.Timings.Station, err = timed(func() error {
		stationStats, err := stats.Station(selection.View, stationOptions...)
		report.Station = keep(stationStats, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	report.Timings.Duration, err = timed(func() error {
		durationStats, err := stats.Duration(selection.View)
		report.Duration = keep(durationStats, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	report.Timings.User, err = timed(func() error {
		userStats, err := stats.User(selection.View)
		report.User = keep(userStats, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info(s.getLogMessage("Report", selection.City, fmt.Sprintf("report of %v trips built for %s", report.Trips, selection.Criteria), nil))
	s.publish(ctx, report)
	return report, nil
}

// publish failures never fail the analysis
func (s *Service) publish(ctx context.Context, report *Report) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReport(ctx, report.Metadata.GetCity(), report); err != nil {
		log.Error(s.getLogMessage("publish", report.Metadata.GetCity(), "error publishing report", err))
	}
}

// Page returns count raw trips of a selection starting at offset
func (s *Service) Page(selection Selection, offset int, count int) TripPage {
	if count <= 0 {
		count = browser.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	trips := browser.Page(selection.View, offset, count)
	tripPage := TripPage{
		Metadata: entities.NewMetadata(selection.City, TripPageType, s.producer, selection.Criteria.String()),
		Offset:   offset,
		Count:    count,
		Total:    selection.View.Len(),
		Trips:    trips,
	}
	if next := offset + len(trips); next < tripPage.Total {
		tripPage.NextOffset = &next
	}
	return tripPage
}

// timed runs fn and returns how long it took
func timed(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

// keep returns a pointer to value, nil if the aggregation had no trips
func keep[T any](value T, err error) *T {
	if err != nil {
		return nil
	}
	return &value
}
