// Package render writes the finished schedule to an Excel workbook: a
// colored grid of members by days, summary count rows, a color legend and
// a manual-review sheet. It consumes the core's data structures verbatim
// and owns everything about colors, fonts and layout.
package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mhalland/barvakt/pkg/core/model"
	"github.com/mhalland/barvakt/pkg/core/scheduler"
	"github.com/mhalland/barvakt/pkg/core/services"
)

const (
	scheduleSheet = "Schedule"
	reviewSheet   = "Manual Review"

	weekendColor    = "808080"
	noReplyColor    = "404040"
	partialColor    = "D3D3D3"
	headerColor     = "E0E0E0"
	nameColumnColor = "F5F5F5"
)

// Row labels for the per-shift count rows
var countRowLabels = map[model.ShiftKind]string{
	model.ShiftMorning: "MORNING",
	model.ShiftOpening: "OPENING",
	model.ShiftMiddle:  "MIDDAY",
	model.ShiftClosing: "CLOSING",
}

// styles holds the style IDs built once per workbook
type styles struct {
	header      int
	name        int
	noReplyName int
	partialName int
	cell        int
	weekend     int
	totalLabel  int
	totalValue  int
	shift       map[model.ShiftKind]int
	legend      map[model.ShiftKind]int
}

// WriteSchedule writes the workbook for a finished generation run
func WriteSchedule(path string, res *services.GenerateScheduleResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scheduleSheet); err != nil {
		return fmt.Errorf("failed to rename schedule sheet: %w", err)
	}

	st, err := buildStyles(f)
	if err != nil {
		return fmt.Errorf("failed to build styles: %w", err)
	}

	days := res.Roster.Days()
	if err := writeGrid(f, st, res, days); err != nil {
		return err
	}
	if err := writeTotals(f, st, res, days); err != nil {
		return err
	}
	if err := writeLegend(f, st, len(days)); err != nil {
		return err
	}
	if err := applyLayout(f, res, days); err != nil {
		return err
	}

	if len(res.Review) > 0 {
		if err := writeReviewSheet(f, res); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeGrid(f *excelize.File, st *styles, res *services.GenerateScheduleResult, days []model.CalendarDay) error {
	// Header row: name column plus one column per calendar day
	if err := setCell(f, 1, 1, "Name", st.header); err != nil {
		return err
	}
	for i, day := range days {
		col := i + 2
		if day.IsWeekend {
			if err := setCell(f, col, 1, "WEEKEND", st.weekend); err != nil {
				return err
			}
			continue
		}
		if err := setCell(f, col, 1, scheduler.DateLabel(day.Day, res.Month), st.header); err != nil {
			return err
		}
	}

	totalCol := len(days) + 2
	if err := setCell(f, totalCol, 1, "Total Shifts", st.header); err != nil {
		return err
	}
	if err := setCell(f, totalCol+1, 1, "Available Days", st.header); err != nil {
		return err
	}

	noReply := make(map[string]bool, len(res.NoReply))
	for _, name := range res.NoReply {
		noReply[name] = true
	}
	partial := make(map[string]bool, len(res.Review))
	for _, record := range res.Review {
		if record.PossibleMatch != model.NoMatchFound {
			partial[record.PossibleMatch] = true
		}
	}

	for rowIdx, totals := range res.Totals {
		row := rowIdx + 2

		nameStyle := st.name
		if noReply[totals.Name] {
			nameStyle = st.noReplyName
		} else if partial[totals.Name] {
			nameStyle = st.partialName
		}
		if err := setCell(f, 1, row, totals.Name, nameStyle); err != nil {
			return err
		}

		for i, day := range days {
			col := i + 2
			style := st.cell
			if day.IsWeekend {
				style = st.weekend
			} else if kind, ok := assignedKind(res.Roster, day, totals.Name); ok {
				style = st.shift[kind]
			}
			if err := setCell(f, col, row, nil, style); err != nil {
				return err
			}
		}

		if err := setCell(f, totalCol, row, totals.Assigned, st.cell); err != nil {
			return err
		}
		if err := setCell(f, totalCol+1, row, totals.AvailableDays, st.cell); err != nil {
			return err
		}
	}

	return nil
}

// assignedKind finds the shift the member holds on the day, if any
func assignedKind(roster *model.Roster, day model.CalendarDay, name string) (model.ShiftKind, bool) {
	for _, kind := range model.AllShiftKinds {
		slot := roster.Slot(day.Day, kind)
		if slot != nil && slot.Contains(name) {
			return kind, true
		}
	}
	return "", false
}

func writeTotals(f *excelize.File, st *styles, res *services.GenerateScheduleResult, days []model.CalendarDay) error {
	sumRow := len(res.Totals) + 3
	if err := setCell(f, 1, sumRow, "SUM OF SHIFTS", st.totalLabel); err != nil {
		return err
	}
	for offset, kind := range model.AllShiftKinds {
		if err := setCell(f, 1, sumRow+1+offset, countRowLabels[kind], st.totalLabel); err != nil {
			return err
		}
	}

	for i, day := range days {
		col := i + 2
		if day.IsWeekend {
			continue
		}

		daySum := 0
		for offset, kind := range model.AllShiftKinds {
			count := res.Roster.Slot(day.Day, kind).Len()
			daySum += count
			if err := setCell(f, col, sumRow+1+offset, count, st.totalValue); err != nil {
				return err
			}
		}
		if err := setCell(f, col, sumRow, daySum, st.totalValue); err != nil {
			return err
		}
	}

	return nil
}

func writeLegend(f *excelize.File, st *styles, dayCount int) error {
	legendCol := dayCount + 5
	if err := setCell(f, legendCol, 1, "Shift Colors:", 0); err != nil {
		return err
	}
	for i, kind := range model.AllShiftKinds {
		label := fmt.Sprintf("%s (%s)", capitalize(string(kind)), model.ShiftSpecs[kind].TimeRange)
		if err := setCell(f, legendCol, i+2, label, st.legend[kind]); err != nil {
			return err
		}
	}
	return nil
}

func applyLayout(f *excelize.File, res *services.GenerateScheduleResult, days []model.CalendarDay) error {
	if err := f.SetPanes(scheduleSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	if err := f.SetColWidth(scheduleSheet, "A", "A", 30); err != nil {
		return err
	}
	for i, day := range days {
		name, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		width := 12.0
		if day.IsWeekend {
			width = 15.0
		}
		if err := f.SetColWidth(scheduleSheet, name, name, width); err != nil {
			return err
		}
	}

	for row := 1; row <= len(res.Totals)+7; row++ {
		if err := f.SetRowHeight(scheduleSheet, row, 22); err != nil {
			return err
		}
	}

	return nil
}

func writeReviewSheet(f *excelize.File, res *services.GenerateScheduleResult) error {
	if _, err := f.NewSheet(reviewSheet); err != nil {
		return fmt.Errorf("failed to create review sheet: %w", err)
	}

	headers := []string{"Input Name", "Possible Match", "Confidence"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reviewSheet, cell, header); err != nil {
			return err
		}
	}

	for i, record := range res.Review {
		row := i + 2
		values := []string{record.InputName, record.PossibleMatch, record.Confidence}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(reviewSheet, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func buildStyles(f *excelize.File) (*styles, error) {
	thinBorder := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center", Indent: 1}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}

	st := &styles{
		shift:  make(map[model.ShiftKind]int, len(model.AllShiftKinds)),
		legend: make(map[model.ShiftKind]int, len(model.AllShiftKinds)),
	}
	var err error

	if st.header, err = f.NewStyle(&excelize.Style{
		Fill: fill(headerColor), Border: thinBorder, Alignment: center,
		Font: &excelize.Font{Bold: true, Size: 11},
	}); err != nil {
		return nil, err
	}
	if st.name, err = f.NewStyle(&excelize.Style{
		Fill: fill(nameColumnColor), Border: thinBorder, Alignment: left,
		Font: &excelize.Font{Bold: true, Size: 11},
	}); err != nil {
		return nil, err
	}
	if st.noReplyName, err = f.NewStyle(&excelize.Style{
		Fill: fill(noReplyColor), Border: thinBorder, Alignment: left,
		Font: &excelize.Font{Color: "FFFFFF"},
	}); err != nil {
		return nil, err
	}
	if st.partialName, err = f.NewStyle(&excelize.Style{
		Fill: fill(partialColor), Border: thinBorder, Alignment: left,
	}); err != nil {
		return nil, err
	}
	if st.cell, err = f.NewStyle(&excelize.Style{
		Border: thinBorder, Alignment: center,
	}); err != nil {
		return nil, err
	}
	if st.weekend, err = f.NewStyle(&excelize.Style{
		Fill: fill(weekendColor), Border: thinBorder, Alignment: center,
	}); err != nil {
		return nil, err
	}
	if st.totalLabel, err = f.NewStyle(&excelize.Style{
		Fill: fill(headerColor), Border: thinBorder,
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      &excelize.Font{Bold: true},
	}); err != nil {
		return nil, err
	}
	if st.totalValue, err = f.NewStyle(&excelize.Style{
		Border: thinBorder, Alignment: center,
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return nil, err
	}

	for _, kind := range model.AllShiftKinds {
		if st.shift[kind], err = f.NewStyle(&excelize.Style{
			Fill: fill(model.ShiftSpecs[kind].Color), Border: thinBorder, Alignment: center,
		}); err != nil {
			return nil, err
		}
		if st.legend[kind], err = f.NewStyle(&excelize.Style{
			Fill: fill(model.ShiftSpecs[kind].Color),
		}); err != nil {
			return nil, err
		}
	}

	return st, nil
}

// setCell writes a value and style at 1-based coordinates; a nil value
// styles the cell without content, a zero style writes content only
func setCell(f *excelize.File, col, row int, value any, styleID int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if value != nil {
		if err := f.SetCellValue(scheduleSheet, cell, value); err != nil {
			return err
		}
	}
	if styleID != 0 {
		if err := f.SetCellStyle(scheduleSheet, cell, cell, styleID); err != nil {
			return err
		}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
