package stats

import (
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/station"
	"bikeshare/domain/entities/trip"
)

const routeSeparator = "--"

// Route is an ordered pair of stations
type Route struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r Route) String() string {
	return r.Start + routeSeparator + r.End
}

func routeLess(a Route, b Route) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// StationStats most popular stations and trip
// + StartStation: most common start station and its trips
// + EndStation: most common end station and its trips
// + Route: most common (start station, end station) pair and its trips
// + RouteDistance: kilometers between the stations of Route. Nil when a station has no known location
type StationStats struct {
	StartStation  Mode[string] `json:"start_station"`
	EndStation    Mode[string] `json:"end_station"`
	Route         Mode[Route]  `json:"route"`
	RouteDistance *float64     `json:"route_distance_km,omitempty"`
}

type stationOptions struct {
	legacyRouteKey bool
	directory      *station.Directory
}

type StationOption func(*stationOptions)

// WithLegacyRouteKey keys routes by (start station, start station), the way the first version
// of the tool computed the most common trip. Only meant to reproduce its old output.
func WithLegacyRouteKey() StationOption {
	return func(o *stationOptions) {
		o.legacyRouteKey = true
	}
}

// WithStationDirectory sets the station locations used to compute RouteDistance
func WithStationDirectory(directory *station.Directory) StationOption {
	return func(o *stationOptions) {
		o.directory = directory
	}
}

// Station returns the most common start station, end station and route of the view.
// Trips with a blank station name are not counted for that station, nor for the route.
func Station(view trip.View, options ...StationOption) (StationStats, error) {
	if err := checkNotEmpty(view); err != nil {
		return StationStats{}, err
	}

	cfg := &stationOptions{}
	for _, option := range options {
		option(cfg)
	}

	startStations := tripcounter.NewOrderedTripCounter[string]()
	endStations := tripcounter.NewOrderedTripCounter[string]()
	routes := tripcounter.NewTripCounter[Route](routeLess)
	view.Each(func(record *trip.Record) {
		if record.StartStation != "" {
			startStations.UpdateCounter(record.StartStation)
		}
		if record.EndStation != "" {
			endStations.UpdateCounter(record.EndStation)
		}

		route := Route{Start: record.StartStation, End: record.EndStation}
		if cfg.legacyRouteKey {
			route.End = record.StartStation
		}
		if route.Start != "" && route.End != "" {
			routes.UpdateCounter(route)
		}
	})

	var stationStats StationStats
	stationStats.StartStation, _ = startStations.Mode()
	stationStats.EndStation, _ = endStations.Mode()
	routeMode, hasRoute := routes.Mode()
	stationStats.Route = routeMode

	if cfg.directory != nil && hasRoute {
		route := stationStats.Route.Value
		if distance, ok := cfg.directory.Distance(route.Start, route.End); ok {
			stationStats.RouteDistance = &distance
		}
	}

	return stationStats, nil
}
