// Package surveyclient loads the availability survey from a Google Forms
// CSV export. Each date the form asked about is a column whose header
// carries a bracketed date label, e.g. "des - ... [4. des]"; morning
// opt-in questions are separate per-date columns.
package surveyclient

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mhalland/barvakt/pkg/core/scheduler"
)

// Header fragments the form generator produces
const (
	nameColumnHeader    = "Navn og etternavn"
	morningColumnMarker = "kan du ha morgenvakt?"
	morningOptInAnswer  = "Ja"
)

// Survey is the structured form of one survey export
type Survey struct {
	// WorkDates are the day-of-month numbers the form asked about, in
	// column order
	WorkDates []int

	// MorningDates are the dates the form offered a morning shift
	MorningDates map[int]bool

	// Responses are the survey rows in input order
	Responses []Response
}

// Response is one respondent's row
type Response struct {
	// Name is the free-text name as typed into the form
	Name string

	// Cells maps day-of-month to the raw availability cell text
	Cells map[int]string

	// MorningOptIn maps day-of-month to the per-date morning answer
	MorningOptIn map[int]bool
}

// Client reads a survey CSV export for one scheduling month
type Client struct {
	path   string
	month  time.Month
	logger *zap.Logger
}

// NewClient creates a survey client for the given export file and month
func NewClient(path string, month time.Month, logger *zap.Logger) *Client {
	return &Client{path: path, month: month, logger: logger}
}

// LoadSurvey parses the export. Columns with unparseable date labels are
// skipped with a warning; a missing name column yields a survey with no
// responses rather than an error, so the run degrades to an all-no-reply
// roster instead of aborting.
func (c *Client) LoadSurvey(ctx context.Context) (*Survey, error) {
	file, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open survey file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse survey file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("survey file is empty")
	}

	headers := records[0]
	survey := &Survey{
		WorkDates:    []int{},
		MorningDates: make(map[int]bool),
		Responses:    []Response{},
	}

	monthAbbrev := scheduler.MonthAbbrev(c.month)

	nameIdx := -1
	dateColumns := make(map[int]int)    // day-of-month -> column index
	morningColumns := make(map[int]int) // day-of-month -> column index

	for idx, header := range headers {
		if strings.Contains(header, nameColumnHeader) {
			nameIdx = idx
			continue
		}

		if strings.Contains(header, morningColumnMarker) {
			day, err := parseDayLabel(header)
			if err != nil {
				c.logger.Warn("Could not parse date from morning column, skipping",
					zap.String("column", header), zap.Error(err))
				continue
			}
			morningColumns[day] = idx
			survey.MorningDates[day] = true
			continue
		}

		if strings.Contains(strings.ToLower(header), monthAbbrev+" -") {
			day, err := parseDayLabel(header)
			if err != nil {
				c.logger.Warn("Could not parse date from survey column, skipping",
					zap.String("column", header), zap.Error(err))
				continue
			}
			dateColumns[day] = idx
			survey.WorkDates = append(survey.WorkDates, day)
		}
	}

	if nameIdx < 0 {
		c.logger.Warn("Survey has no name column, treating all members as no-reply",
			zap.String("expected", nameColumnHeader))
		return survey, nil
	}

	for rowNum, record := range records[1:] {
		if nameIdx >= len(record) {
			c.logger.Warn("Survey row too short, skipping", zap.Int("row", rowNum+2))
			continue
		}
		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			c.logger.Warn("Survey row has empty name, skipping", zap.Int("row", rowNum+2))
			continue
		}

		response := Response{
			Name:         name,
			Cells:        make(map[int]string, len(dateColumns)),
			MorningOptIn: make(map[int]bool, len(morningColumns)),
		}
		for day, idx := range dateColumns {
			if idx < len(record) {
				response.Cells[day] = record[idx]
			}
		}
		for day, idx := range morningColumns {
			if idx < len(record) {
				response.MorningOptIn[day] = strings.TrimSpace(record[idx]) == morningOptInAnswer
			}
		}

		survey.Responses = append(survey.Responses, response)
	}

	return survey, nil
}

// parseDayLabel extracts the day-of-month from a bracketed date label
// like "[4. des]"
func parseDayLabel(header string) (int, error) {
	open := strings.LastIndex(header, "[")
	if open < 0 {
		return 0, fmt.Errorf("no bracketed date label in %q", header)
	}
	rest := header[open+1:]
	end := strings.Index(rest, "]")
	if end < 0 {
		return 0, fmt.Errorf("unterminated date label in %q", header)
	}
	label := strings.TrimSpace(rest[:end])

	dayPart, _, found := strings.Cut(label, ".")
	if !found {
		return 0, fmt.Errorf("no day number in label %q", label)
	}
	day, err := strconv.Atoi(strings.TrimSpace(dayPart))
	if err != nil {
		return 0, fmt.Errorf("invalid day number in label %q: %w", label, err)
	}
	return day, nil
}
