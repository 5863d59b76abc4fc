package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"bikeshare/analysis"
	"bikeshare/domain/entities/trip"
	"bikeshare/stats"
)

const (
	dateLayout  = "2006-01-02 15:04:05"
	chartHeight = 6
)

var (
	primary = lipgloss.Color("205")
	subtle  = lipgloss.Color("240")
	warning = lipgloss.Color("220")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(subtle)

	warningStyle = lipgloss.NewStyle().
			Foreground(warning)
)

func renderEmptyReport(report *analysis.Report) string {
	var builder strings.Builder
	builder.WriteString("\n")
	builder.WriteString(warningStyle.Render(fmt.Sprintf("No trips found for month: %s, day: %s.", report.Month, report.Day)))
	if len(report.AvailableMonths) > 0 {
		months := make([]string, 0, len(report.AvailableMonths))
		for _, month := range report.AvailableMonths {
			months = append(months, time.Month(month).String())
		}
		builder.WriteString("\nThis city has trips in: " + strings.Join(months, ", "))
	}
	return builder.String()
}

func renderTemporal(temporalStats *stats.TemporalStats) string {
	lines := []string{
		fmt.Sprintf("\t Most common month: %s (n=%v)", time.Month(temporalStats.Month.Value), temporalStats.Month.Count),
		fmt.Sprintf("\t Most common day of week: %s", temporalStats.DayOfWeek.Value),
		fmt.Sprintf("\t Most common start hour: %v", temporalStats.Hour.Value),
		"",
		renderHourlyChart(temporalStats.TripsPerHour),
	}
	return strings.Join(lines, "\n")
}

// renderHourlyChart plots the amount of trips started at each hour
func renderHourlyChart(tripsPerHour [24]int) string {
	data := make([]float64, 0, len(tripsPerHour))
	for _, trips := range tripsPerHour {
		data = append(data, float64(trips))
	}
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Caption("trips per start hour, 0 to 23"),
	)
}

func renderStation(stationStats *stats.StationStats) string {
	route := fmt.Sprintf("\t Most common start-end station combination: %s (n=%v)", stationStats.Route.Value, stationStats.Route.Count)
	if stationStats.RouteDistance != nil {
		route += mutedStyle.Render(fmt.Sprintf(" %.2f km", *stationStats.RouteDistance))
	}

	lines := []string{
		fmt.Sprintf("\t Most common start station: %s (n=%v)", stationStats.StartStation.Value, stationStats.StartStation.Count),
		fmt.Sprintf("\t Most common end station: %s (n=%v)", stationStats.EndStation.Value, stationStats.EndStation.Count),
		route,
	}
	return strings.Join(lines, "\n")
}

func renderDuration(durationStats *stats.DurationStats) string {
	lines := []string{
		fmt.Sprintf("\t Total travel time: %v seconds", durationStats.Total),
		fmt.Sprintf("\t Average travel time: %s seconds", strconv.FormatFloat(durationStats.Mean, 'f', -1, 64)),
		fmt.Sprintf("\t Shortest trip: %v seconds", durationStats.Shortest),
		fmt.Sprintf("\t Longest trip: %v seconds", durationStats.Longest),
	}
	return strings.Join(lines, "\n")
}

func renderUser(userStats *stats.UserStats) string {
	var builder strings.Builder

	builder.WriteString("Count by user type:\n")
	builder.WriteString(renderCategories(userStats.UserTypes, "No user type data for this selection."))

	builder.WriteString("\n\nCount by user gender:\n")
	builder.WriteString(renderCategories(userStats.Genders, "No gender data for this selection."))

	builder.WriteString("\n\n")
	if userStats.BirthYears == nil {
		builder.WriteString(mutedStyle.Render("No birth year data for this selection."))
		return builder.String()
	}
	builder.WriteString(fmt.Sprintf("Earliest year of birth: %v\n", userStats.BirthYears.Earliest))
	builder.WriteString(fmt.Sprintf("Most recent year of birth: %v\n", userStats.BirthYears.MostRecent))
	builder.WriteString(fmt.Sprintf("Most common year of birth: %v", userStats.BirthYears.MostCommon.Value))
	return builder.String()
}

func renderCategories(categories []stats.CategoryCount, emptyMessage string) string {
	if len(categories) == 0 {
		return mutedStyle.Render(emptyMessage)
	}

	width := 0
	for _, category := range categories {
		width = max(width, len(category.Category))
	}

	lines := make([]string, 0, len(categories))
	for _, category := range categories {
		lines = append(lines, fmt.Sprintf("%-*s %v", width, category.Category, category.Count))
	}
	return strings.Join(lines, "\n")
}

// renderTrips draws a page of raw trips as a table, offset is the position of the first one
func renderTrips(offset int, records []trip.Record) string {
	rows := make([][]string, 0, len(records))
	for idx, record := range records {
		birthYear := ""
		if year, ok := record.GetBirthYear(); ok {
			birthYear = strconv.Itoa(year)
		}
		rows = append(rows, []string{
			strconv.Itoa(offset + idx),
			record.StartTime.Format(dateLayout),
			strconv.FormatInt(record.Duration, 10),
			record.StartStation,
			record.EndStation,
			record.UserType,
			record.Gender,
			birthYear,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("#", "Start Time", "Trip Duration", "Start Station", "End Station", "User Type", "Gender", "Birth Year").
		Rows(rows...).
		String()
}
