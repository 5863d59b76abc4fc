package station

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/umahmood/haversine"
)

const (
	nameColumn      = "name"
	latitudeColumn  = "latitude"
	longitudeColumn = "longitude"
)

// StationData struct that contains the location of a station
type StationData struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Directory indexes the stations of a city by name
type Directory struct {
	stations map[string]StationData
}

func NewDirectory(stations []StationData) *Directory {
	byName := make(map[string]StationData, len(stations))
	for _, stationData := range stations {
		byName[stationData.Name] = stationData
	}
	return &Directory{stations: byName}
}

// LoadDirectory reads a stations file with a name,latitude,longitude header
func LoadDirectory(filepath string) (*Directory, error) {
	stationsFile, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("error opening stations file: %w", err)
	}
	defer stationsFile.Close()

	return ReadDirectory(stationsFile)
}

// ReadDirectory reads stations in CSV format. Columns can be in any order, extra columns are ignored
func ReadDirectory(reader io.Reader) (*Directory, error) {
	csvReader := csv.NewReader(reader)
	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading stations header: %w", err)
	}

	indexes := make(map[string]int)
	for idx, column := range header {
		indexes[strings.ToLower(strings.TrimSpace(column))] = idx
	}
	for _, required := range []string{nameColumn, latitudeColumn, longitudeColumn} {
		if _, ok := indexes[required]; !ok {
			return nil, fmt.Errorf("stations file has no %s column", required)
		}
	}

	var stations []StationData
	for line := 2; ; line++ {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading stations line %v: %w", line, err)
		}

		latitude, err := strconv.ParseFloat(strings.TrimSpace(row[indexes[latitudeColumn]]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in stations line %v: %w", line, err)
		}

		longitude, err := strconv.ParseFloat(strings.TrimSpace(row[indexes[longitudeColumn]]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in stations line %v: %w", line, err)
		}

		stations = append(stations, StationData{
			Name:      strings.TrimSpace(row[indexes[nameColumn]]),
			Latitude:  latitude,
			Longitude: longitude,
		})
	}

	return NewDirectory(stations), nil
}

func (d *Directory) Len() int {
	return len(d.stations)
}

func (d *Directory) Get(name string) (StationData, bool) {
	stationData, ok := d.stations[name]
	return stationData, ok
}

// Distance returns the distance in kilometers between two stations. The bool is false
// if any of them is not in the directory.
func (d *Directory) Distance(startStation string, endStation string) (float64, bool) {
	start, ok := d.Get(startStation)
	if !ok {
		return 0, false
	}

	end, ok := d.Get(endStation)
	if !ok {
		return 0, false
	}

	return calculateDistance(start.Latitude, start.Longitude, end.Latitude, end.Longitude), true
}

// calculateDistance returns the distance between two stations using haversine formula
func calculateDistance(latStartStation float64, longStartStation float64, latEndStation float64, longEndStation float64) float64 {
	station1 := haversine.Coord{Lat: latStartStation, Lon: longStartStation}
	station2 := haversine.Coord{Lat: latEndStation, Lon: longEndStation}

	_, km := haversine.Distance(station1, station2)
	return km
}
