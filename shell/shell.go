package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"bikeshare/analysis"
	"bikeshare/browser"
	"bikeshare/filter"
	"bikeshare/utils"
)

const (
	shellStr  = "shell"
	separator = "----------------------------------------"
	answerYes = "yes"
)

// Shell asks a user for a city, a month and a day, prints the stats of the matching trips and
// lets the user browse them, until the user does not want to restart.
type Shell struct {
	service  *analysis.Service
	cities   []string
	pageSize int
	scanner  *bufio.Scanner
	out      io.Writer
}

func NewShell(service *analysis.Service, pageSize int, in io.Reader, out io.Writer) *Shell {
	if pageSize <= 0 {
		pageSize = browser.DefaultPageSize
	}
	return &Shell{
		service:  service,
		cities:   service.Cities(),
		pageSize: pageSize,
		scanner:  bufio.NewScanner(in),
		out:      out,
	}
}

func (s *Shell) getLogMessage(method string, city string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[%s][city: %s][method: %s][status: ERROR] %s: %s", shellStr, city, method, message, err.Error())
	}
	return fmt.Sprintf("[%s][city: %s][method: %s][status: OK] %s", shellStr, city, method, message)
}

// Run keeps the session going until the user declines to restart or the input ends.
// A city that cannot be loaded ends the session with its error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		err := s.runOnce(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		restart, err := s.ask("\nWould you like to restart? Enter yes or no.")
		if err != nil || strings.ToLower(restart) != answerYes {
			return nil
		}
	}
}

func (s *Shell) runOnce(ctx context.Context) error {
	city, criteria, err := s.getFilters()
	if err != nil {
		return err
	}

	selection, err := s.service.Select(ctx, city, criteria)
	if err != nil {
		log.Error(s.getLogMessage("runOnce", city, "error loading trips", err))
		fmt.Fprintf(s.out, "Sorry, the trips of %s could not be loaded: %s\n", displayName(city), err)
		return err
	}

	report, err := s.service.Report(ctx, selection)
	if err != nil {
		log.Error(s.getLogMessage("runOnce", city, "error building report", err))
		return err
	}

	s.printReport(report)
	if report.Empty {
		return nil
	}
	return s.showRawTrips(browser.NewCursor(selection.View, s.pageSize))
}

// getFilters asks for a city, a month and a day until each one is valid
func (s *Shell) getFilters() (string, filter.Criteria, error) {
	fmt.Fprintln(s.out, "Hello! Let's explore some US bikeshare data!")

	cityList := s.cityList()
	city, err := s.askUntil(
		fmt.Sprintf("Which city are you interested in, %s? Specify only one", cityList),
		func(answer string) bool { return utils.ContainsString(answer, s.cities) },
		func(answer string) string {
			return fmt.Sprintf("Sorry, I don't recognize city '%s'. Please specify %s", answer, cityList)
		},
	)
	if err != nil {
		return "", filter.Criteria{}, err
	}

	month, err := s.askUntil(
		"Which month are you interested in? E.g., January. If all, enter all",
		func(answer string) bool { _, err := filter.ParseMonth(answer); return err == nil },
		func(answer string) string {
			return fmt.Sprintf("Sorry, I don't recognize month '%s'. Format should be full name and is not case sensitive. E.g., January. Can you re-enter?", answer)
		},
	)
	if err != nil {
		return "", filter.Criteria{}, err
	}

	day, err := s.askUntil(
		"Which day of the week are you interested in? If all, enter all",
		func(answer string) bool { _, err := filter.ParseDay(answer); return err == nil },
		func(answer string) string {
			return fmt.Sprintf("Sorry, I don't recognize day '%s'. Format should be full name of day and is not case sensitive. E.g., Monday. Please re-enter", answer)
		},
	)
	if err != nil {
		return "", filter.Criteria{}, err
	}

	criteria, err := filter.ParseCriteria(month, day)
	if err != nil {
		return "", filter.Criteria{}, err
	}

	fmt.Fprintln(s.out, separator)
	return strings.ToLower(city), criteria, nil
}

// showRawTrips prints pages of trips while the user answers yes
func (s *Shell) showRawTrips(cursor *browser.Cursor) error {
	answer, err := s.ask(fmt.Sprintf("\nWould you like to see %v rows of data? Enter yes or no", s.pageSize))
	for err == nil && strings.ToLower(answer) == answerYes {
		fmt.Fprintln(s.out, renderTrips(cursor.Offset(), cursor.Next()))
		if !cursor.HasNext() {
			fmt.Fprintln(s.out, "No more trips to show.")
			return nil
		}
		answer, err = s.ask(fmt.Sprintf("\nWould you like %v more rows? Yes or no", s.pageSize))
	}
	return err
}

func (s *Shell) ask(prompt string) (string, error) {
	fmt.Fprintln(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

func (s *Shell) askUntil(prompt string, valid func(string) bool, retryPrompt func(string) string) (string, error) {
	answer, err := s.ask(prompt)
	for err == nil && !valid(answer) {
		answer, err = s.ask(retryPrompt(answer))
	}
	return answer, err
}

// cityList returns the cities as "Chicago, New York City, or Washington"
func (s *Shell) cityList() string {
	names := make([]string, 0, len(s.cities))
	for _, city := range s.cities {
		names = append(names, displayName(city))
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}

// displayName capitalizes every word of a city id, e.g. new york city -> New York City
func displayName(city string) string {
	words := strings.Fields(city)
	for idx, word := range words {
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func (s *Shell) printReport(report *analysis.Report) {
	if report.Empty {
		fmt.Fprintln(s.out, renderEmptyReport(report))
		fmt.Fprintln(s.out, separator)
		return
	}

	groups := []struct {
		title   string
		body    string
		elapsed time.Duration
	}{
		{"Calculating The Most Frequent Times of Travel...", renderTemporal(report.Temporal), report.Timings.Temporal},
		{"Calculating The Most Popular Stations and Trip...", renderStation(report.Station), report.Timings.Station},
		{"Calculating Trip Duration...", renderDuration(report.Duration), report.Timings.Duration},
		{"Calculating User Stats...", renderUser(report.User), report.Timings.User},
	}

	for _, group := range groups {
		fmt.Fprintf(s.out, "\n%s\n\n", titleStyle.Render(group.title))
		fmt.Fprintln(s.out, group.body)
		fmt.Fprintf(s.out, "\nThis took %v seconds.\n", group.elapsed.Seconds())
		fmt.Fprintln(s.out, separator)
	}
}
