package loader

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"bikeshare/config"
	dataErrors "bikeshare/domain/errors"
)

func newTestLoader(t *testing.T, dataDir string) *Loader {
	t.Helper()
	loaderConfig := config.Default().Loader
	loaderConfig.DataDir = dataDir
	return NewLoader(loaderConfig)
}

// writeCity writes content as the chicago source of a new data dir and returns a loader for it
func writeCity(t *testing.T, content string) *Loader {
	t.Helper()
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "chicago.csv"), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}
	return newTestLoader(t, dataDir)
}

const chicagoHeader = "Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year\n"

func TestLoad_Chicago(t *testing.T) {
	loader := newTestLoader(t, "testdata")

	collection, err := loader.Load(context.Background(), "chicago")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if collection.City() != "chicago" {
		t.Errorf("Expected city chicago, got %s", collection.City())
	}
	if collection.Len() != 10 {
		t.Fatalf("Expected 10 trips, got %d", collection.Len())
	}

	records := collection.View().Records()
	for idx, record := range records {
		if record.Index != idx {
			t.Errorf("Expected trip %d to keep its source position, got index %d", idx, record.Index)
		}
	}

	first := records[0]
	if first.Month != 1 || first.DayOfWeek != "Monday" || first.Hour != 8 {
		t.Errorf("Unexpected derived fields: month=%d day=%s hour=%d", first.Month, first.DayOfWeek, first.Hour)
	}
	if first.Duration != 900 {
		t.Errorf("Expected duration 900, got %d", first.Duration)
	}
	if first.StartStation != "Canal St & Adams St" || first.EndStation != "Clinton St & Madison St" {
		t.Errorf("Unexpected stations: %s -> %s", first.StartStation, first.EndStation)
	}
	if year, ok := first.GetBirthYear(); !ok || year != 1985 {
		t.Errorf("Expected birth year 1985, got %d (present=%v)", year, ok)
	}
	if first.EndTime.IsZero() {
		t.Error("Expected end time to be parsed")
	}

	customer := records[3]
	if customer.HasGender() {
		t.Errorf("Expected no gender, got %q", customer.Gender)
	}
	if _, ok := customer.GetBirthYear(); ok {
		t.Error("Expected no birth year")
	}

	last := records[9]
	if last.DayOfWeek != "Friday" || last.Hour != 23 {
		t.Errorf("Unexpected derived fields for last trip: day=%s hour=%d", last.DayOfWeek, last.Hour)
	}
}

func TestLoad_NormalizesCityID(t *testing.T) {
	loader := newTestLoader(t, "testdata")

	collection, err := loader.Load(context.Background(), "  New York City ")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if collection.City() != "new york city" {
		t.Errorf("Expected city new york city, got %s", collection.City())
	}
	if collection.Len() != 3 {
		t.Errorf("Expected 3 trips, got %d", collection.Len())
	}
}

func TestLoad_WithoutOptionalColumns(t *testing.T) {
	loader := newTestLoader(t, "testdata")

	collection, err := loader.Load(context.Background(), "washington")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantDurations := []int64{489, 403, 637}
	for idx, record := range collection.View().Records() {
		if record.Duration != wantDurations[idx] {
			t.Errorf("Trip %d: expected duration %d, got %d", idx, wantDurations[idx], record.Duration)
		}
		if record.HasGender() {
			t.Errorf("Trip %d: expected no gender", idx)
		}
		if _, ok := record.GetBirthYear(); ok {
			t.Errorf("Trip %d: expected no birth year", idx)
		}
	}
}

func TestLoad_MonthsComeFromData(t *testing.T) {
	loader := writeCity(t, chicagoHeader+
		"2017-12-24 10:00:00,2017-12-24 10:10:00,600,A,B,Subscriber,Male,1980\n"+
		"2017-09-01 10:00:00,2017-09-01 10:10:00,600,A,B,Subscriber,Male,1980\n")

	collection, err := loader.Load(context.Background(), "chicago")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := collection.Months(); !reflect.DeepEqual(got, []int{9, 12}) {
		t.Errorf("Expected months [9 12], got %v", got)
	}
}

func TestLoad_DataSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		loader  func(t *testing.T) *Loader
		city    string
		wantErr error
	}{
		{
			name:    "UnknownCity",
			loader:  func(t *testing.T) *Loader { return newTestLoader(t, "testdata") },
			city:    "paris",
			wantErr: dataErrors.ErrUnknownCity,
		},
		{
			name:    "MissingFile",
			loader:  func(t *testing.T) *Loader { return newTestLoader(t, t.TempDir()) },
			city:    "chicago",
			wantErr: os.ErrNotExist,
		},
		{
			name: "MissingRequiredColumn",
			loader: func(t *testing.T) *Loader {
				return writeCity(t, "Start Time,Trip Duration,End Station\n2017-01-01 00:00:00,10,A\n")
			},
			city:    "chicago",
			wantErr: dataErrors.ErrMissingColumn,
		},
		{
			name:    "EmptyFile",
			loader:  func(t *testing.T) *Loader { return writeCity(t, "") },
			city:    "chicago",
			wantErr: dataErrors.ErrDataSource,
		},
		{
			name: "MalformedRow",
			loader: func(t *testing.T) *Loader {
				return writeCity(t, chicagoHeader+"2017-01-02 08:05:00,2017-01-02 08:20:00,900,A,B,Subscriber,Male,1985,extra\n")
			},
			city:    "chicago",
			wantErr: dataErrors.ErrDataSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection, err := tt.loader(t).Load(context.Background(), tt.city)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if collection != nil {
				t.Error("Expected no collection on error")
			}
			if !errors.Is(err, dataErrors.ErrDataSource) {
				t.Errorf("Expected a data source error, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}

			var dataSourceErr *dataErrors.DataSourceError
			if !errors.As(err, &dataSourceErr) {
				t.Errorf("Expected a *DataSourceError, got %T", err)
			}
		})
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		row        string
		wantErr    error
		wantColumn string
	}{
		{"InvalidStartTime", "not a date,2017-01-02 08:20:00,900,A,B,Subscriber,Male,1985", dataErrors.ErrInvalidDate, "Start Time"},
		{"EmptyStartTime", ",2017-01-02 08:20:00,900,A,B,Subscriber,Male,1985", dataErrors.ErrInvalidDate, "Start Time"},
		{"InvalidEndTime", "2017-01-02 08:05:00,yesterday,900,A,B,Subscriber,Male,1985", dataErrors.ErrInvalidDate, "End Time"},
		{"NegativeDuration", "2017-01-02 08:05:00,2017-01-02 08:20:00,-5,A,B,Subscriber,Male,1985", dataErrors.ErrInvalidDuration, "Trip Duration"},
		{"TextDuration", "2017-01-02 08:05:00,2017-01-02 08:20:00,long,A,B,Subscriber,Male,1985", dataErrors.ErrInvalidDuration, "Trip Duration"},
		{"FractionalBirthYear", "2017-01-02 08:05:00,2017-01-02 08:20:00,900,A,B,Subscriber,Male,1985.5", dataErrors.ErrInvalidBirthYear, "Birth Year"},
		{"HugeBirthYear", "2017-01-02 08:05:00,2017-01-02 08:20:00,900,A,B,Subscriber,Male,1e20", dataErrors.ErrInvalidBirthYear, "Birth Year"},
		{"ZeroBirthYear", "2017-01-02 08:05:00,2017-01-02 08:20:00,900,A,B,Subscriber,Male,0", dataErrors.ErrInvalidBirthYear, "Birth Year"},
		{"HugeDuration", "2017-01-02 08:05:00,2017-01-02 08:20:00,1e30,A,B,Subscriber,Male,1985", dataErrors.ErrInvalidDuration, "Trip Duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validRow := "2017-01-02 08:05:00,2017-01-02 08:20:00,900,A,B,Subscriber,Male,1985\n"
			loader := writeCity(t, chicagoHeader+validRow+tt.row+"\n"+validRow)

			collection, err := loader.Load(context.Background(), "chicago")
			if collection != nil {
				t.Fatal("Expected the whole load to be rejected")
			}
			if !errors.Is(err, dataErrors.ErrParse) {
				t.Fatalf("Expected a parse error, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}

			var parseErr *dataErrors.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected a *ParseError, got %T", err)
			}
			if parseErr.Row != 2 {
				t.Errorf("Expected row 2, got %d", parseErr.Row)
			}
			if parseErr.Column != tt.wantColumn {
				t.Errorf("Expected column %s, got %s", tt.wantColumn, parseErr.Column)
			}
		})
	}
}

func TestLoad_BlankStationsAreKept(t *testing.T) {
	loader := writeCity(t, chicagoHeader+
		"2017-01-02 08:05:00,2017-01-02 08:20:00,900,,,Subscriber,Male,1985\n"+
		"2017-01-02 09:05:00,2017-01-02 09:20:00,600,A,B,Subscriber,Female,1990\n")

	collection, err := loader.Load(context.Background(), "chicago")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if collection.Len() != 2 {
		t.Fatalf("Expected 2 trips, got %d", collection.Len())
	}

	first := collection.View().At(0)
	if first.StartStation != "" || first.EndStation != "" {
		t.Errorf("Expected blank stations, got %q and %q", first.StartStation, first.EndStation)
	}
}

func TestLoad_SQLite(t *testing.T) {
	dataDir := t.TempDir()
	dbPath := filepath.Join(dataDir, "bikeshare.db")

	db, err := sql.Open(sqliteDriver, dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE "chicago trips" (
		"Start Time" TEXT,
		"End Time" TEXT,
		"Trip Duration" INTEGER,
		"Start Station" TEXT,
		"End Station" TEXT,
		"User Type" TEXT,
		"Gender" TEXT,
		"Birth Year" REAL
	)`)
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	rows := [][]any{
		{"2017-01-02 08:05:00", "2017-01-02 08:20:00", 900, "Canal St & Adams St", "Clinton St & Madison St", "Subscriber", "Male", 1985.0},
		{"2017-01-07 08:15:00", "2017-01-07 09:15:00", 3600, "Streeter Dr & Grand Ave", "Lake Shore Dr & Monroe St", "Customer", nil, nil},
	}
	for _, row := range rows {
		_, err = db.Exec(`INSERT INTO "chicago trips" VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, row...)
		if err != nil {
			t.Fatalf("Failed to insert trip: %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	loaderConfig := config.Default().Loader
	loaderConfig.DataDir = dataDir
	loaderConfig.Cities = map[string]config.CityConfig{
		"chicago": {Source: "bikeshare.db", Format: config.FormatSQLite, Table: "chicago trips"},
	}

	collection, err := NewLoader(loaderConfig).Load(context.Background(), "chicago")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if collection.Len() != 2 {
		t.Fatalf("Expected 2 trips, got %d", collection.Len())
	}

	first := collection.View().At(0)
	if first.Duration != 900 || first.DayOfWeek != "Monday" || first.Hour != 8 {
		t.Errorf("Unexpected first trip: %+v", first)
	}
	if year, ok := first.GetBirthYear(); !ok || year != 1985 {
		t.Errorf("Expected birth year 1985, got %d (present=%v)", year, ok)
	}

	second := collection.View().At(1)
	if second.HasGender() {
		t.Errorf("Expected NULL gender to be absent, got %q", second.Gender)
	}
	if _, ok := second.GetBirthYear(); ok {
		t.Error("Expected NULL birth year to be absent")
	}
}

func TestLoad_SQLiteMissingDatabase(t *testing.T) {
	loaderConfig := config.Default().Loader
	loaderConfig.DataDir = t.TempDir()
	loaderConfig.Cities = map[string]config.CityConfig{
		"chicago": {Source: "missing.db", Format: config.FormatSQLite, Table: "trips"},
	}

	_, err := NewLoader(loaderConfig).Load(context.Background(), "chicago")
	if !errors.Is(err, dataErrors.ErrDataSource) {
		t.Errorf("Expected a data source error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(loaderConfig.DataDir, "missing.db")); !os.IsNotExist(statErr) {
		t.Error("Loading a missing database must not create it")
	}
}

func TestLoadStations(t *testing.T) {
	loaderConfig := config.Default().Loader
	loaderConfig.DataDir = "testdata"
	chicago := loaderConfig.Cities["chicago"]
	chicago.Stations = "chicago_stations.csv"
	loaderConfig.Cities = map[string]config.CityConfig{
		"chicago":    chicago,
		"washington": loaderConfig.Cities["washington"],
	}
	loader := NewLoader(loaderConfig)

	directory, err := loader.LoadStations("chicago")
	if err != nil {
		t.Fatalf("LoadStations failed: %v", err)
	}
	if directory.Len() != 4 {
		t.Errorf("Expected 4 stations, got %d", directory.Len())
	}

	directory, err = loader.LoadStations("washington")
	if err != nil {
		t.Fatalf("LoadStations failed: %v", err)
	}
	if directory != nil {
		t.Error("Expected no directory for a city without stations file")
	}
}

func TestCities(t *testing.T) {
	loader := newTestLoader(t, "testdata")
	want := []string{"chicago", "new york city", "washington"}
	if got := loader.Cities(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cities() = %v, want %v", got, want)
	}
}
