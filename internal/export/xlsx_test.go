package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"grammarbot/pkg/types"
)

func TestWriteErrorLogs_RowsAndSummary(t *testing.T) {
	logs := []types.ErrorLog{
		{ID: 1, SubmissionID: "s1", ErrorType: "Verb Tense Error", OriginalSpan: "go", CorrectedSpan: "goes", OriginalText: "She go", CorrectedText: "She goes"},
		{ID: 2, SubmissionID: "s1", ErrorType: "Determiner Error", OriginalSpan: "", CorrectedSpan: "the"},
		{ID: 3, SubmissionID: "s2", ErrorType: "Verb Tense Error", OriginalSpan: "run", CorrectedSpan: "ran"},
	}
	var buf bytes.Buffer
	if err := WriteErrorLogs(&buf, types.Student{ID: 7, Name: "Alice"}, logs); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(logSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][3] != "Error Type" || rows[1][3] != "Verb Tense Error" || rows[1][4] != "go" || rows[2][5] != "the" {
		t.Fatalf("unexpected rows: %v", rows)
	}

	sum, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum[0][1] != "Alice" || sum[4][0] != "Verb Tense Error" || sum[4][1] != "2" || sum[5][1] != "1" {
		t.Fatalf("unexpected summary: %v", sum)
	}
}

func TestWriteErrorLogs_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteErrorLogs(&buf, types.Student{ID: 1, Name: "Bob"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(logSheet)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestCountByType_FirstSeenOrder(t *testing.T) {
	got := CountByType([]types.ErrorLog{{ErrorType: "B"}, {ErrorType: "A"}, {ErrorType: "B"}})
	if len(got) != 2 || got[0].ErrorType != "B" || got[0].Count != 2 || got[1].Count != 1 {
		t.Fatalf("got %+v", got)
	}
}
