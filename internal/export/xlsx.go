// Package export renders a student's error history as an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"grammarbot/pkg/types"
)

const (
	logSheet     = "Errors"
	summarySheet = "Summary"
)

var logHeader = []any{"ID", "Submission", "Created", "Error Type", "Original Span", "Corrected Span", "Original Text", "Corrected Text"}

// WriteErrorLogs writes a workbook with one row per error log plus a summary
// sheet counting logs per error type.
func WriteErrorLogs(w io.Writer, student types.Student, logs []types.ErrorLog) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", logSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(logSheet, "A1", &logHeader); err != nil {
		return err
	}
	for i, l := range logs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{l.ID, l.SubmissionID, l.CreatedAt.UTC().Format("2006-01-02 15:04:05"), l.ErrorType, l.OriginalSpan, l.CorrectedSpan, l.OriginalText, l.CorrectedText}
		if err := f.SetSheetRow(logSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(logSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(summarySheet, "A1", &[]any{"Student", student.Name}); err != nil {
		return err
	}
	if err := f.SetSheetRow(summarySheet, "A2", &[]any{"Student ID", student.ID}); err != nil {
		return err
	}
	if err := f.SetSheetRow(summarySheet, "A4", &[]any{"Error Type", "Count"}); err != nil {
		return err
	}
	for i, c := range CountByType(logs) {
		cell, err := excelize.CoordinatesToCellName(1, i+5)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]any{c.ErrorType, c.Count}); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// TypeCount is the number of logs with one error type.
type TypeCount struct {
	ErrorType string
	Count     int
}

// CountByType counts logs per error type in order of first appearance.
func CountByType(logs []types.ErrorLog) []TypeCount {
	idx := map[string]int{}
	var out []TypeCount
	for _, l := range logs {
		i, ok := idx[l.ErrorType]
		if !ok {
			i = len(out)
			idx[l.ErrorType] = i
			out = append(out, TypeCount{ErrorType: l.ErrorType})
		}
		out[i].Count++
	}
	return out
}
