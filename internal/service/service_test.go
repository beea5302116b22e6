package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"grammarbot/internal/analyzer"
	"grammarbot/internal/feedback"
	"grammarbot/pkg/types"
)

var sheGo = analyzer.Result{
	CorrectedText: "She goes to the store.",
	Errors: []types.ErrorItem{
		{OriginalSpan: "go", CorrectedSpan: "goes", ErrorType: "Verb Tense Error"},
		{OriginalSpan: "", CorrectedSpan: "the", ErrorType: "Determiner Error"},
	},
}

func TestCreateStudent_TrimsAndRejectsDuplicate(t *testing.T) {
	svc, _ := newTestService(&fakePipeline{})
	ctx := context.Background()
	st, err := svc.CreateStudent(ctx, "  Alice ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.ID != 1 || st.Name != "Alice" {
		t.Fatalf("unexpected student: %+v", st)
	}
	_, err = svc.CreateStudent(ctx, "Alice")
	if !IsDuplicateName(err) {
		t.Fatalf("expected duplicate name, got %v", err)
	}
	if err.Error() != "Student with that name already exists." {
		t.Fatalf("message=%q", err.Error())
	}
}

func TestCreateStudent_EmptyName(t *testing.T) {
	svc, _ := newTestService(&fakePipeline{})
	if _, err := svc.CreateStudent(context.Background(), "   "); !IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestGetStudent_NotFound(t *testing.T) {
	svc, _ := newTestService(&fakePipeline{})
	_, err := svc.GetStudent(context.Background(), 42)
	if !IsStudentNotFound(err) || err.Error() != "Student not found." {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListStudents_EmptyIsNonNil(t *testing.T) {
	svc, _ := newTestService(&fakePipeline{})
	list, err := svc.ListStudents(context.Background())
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("list=%v err=%v", list, err)
	}
}

func TestAnalyze_PersistsOneRowPerError(t *testing.T) {
	p := &fakePipeline{results: map[string]analyzer.Result{"She go to store.": sheGo}}
	svc, logs := newTestService(p)
	ctx := context.Background()
	st, _ := svc.CreateStudent(ctx, "Alice")

	resp, err := svc.Analyze(ctx, st.ID, "She go to store.")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if resp.OriginalText != "She go to store." || resp.CorrectedText != sheGo.CorrectedText || len(resp.Errors) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.SubmissionID != "sub-1" {
		t.Fatalf("submission id=%q", resp.SubmissionID)
	}
	if len(logs.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(logs.rows))
	}
	for _, r := range logs.rows {
		if r.StudentID != st.ID || r.SubmissionID != "sub-1" || r.OriginalText != "She go to store." || r.CorrectedText != sheGo.CorrectedText {
			t.Fatalf("bad row: %+v", r)
		}
	}
	if logs.rows[0].ErrorType != "Verb Tense Error" || logs.rows[1].CorrectedSpan != "the" {
		t.Fatalf("row order not preserved: %+v", logs.rows)
	}
}

func TestAnalyze_NoErrorsStoresNothing(t *testing.T) {
	svc, logs := newTestService(&fakePipeline{})
	ctx := context.Background()
	st, _ := svc.CreateStudent(ctx, "Bob")
	resp, err := svc.Analyze(ctx, st.ID, "All good.")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if resp.Errors == nil || len(resp.Errors) != 0 {
		t.Fatalf("expected empty non-nil errors, got %#v", resp.Errors)
	}
	if len(logs.rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(logs.rows))
	}
}

func TestAnalyze_UnknownStudentSkipsPipeline(t *testing.T) {
	p := &fakePipeline{}
	svc, _ := newTestService(p)
	_, err := svc.Analyze(context.Background(), 99, "text")
	if !IsStudentNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("pipeline called %d times", p.calls)
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	svc, _ := newTestService(&fakePipeline{})
	ctx := context.Background()
	st, _ := svc.CreateStudent(ctx, "Carol")
	if _, err := svc.Analyze(ctx, st.ID, " \n "); !IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAnalyze_PipelineErrorPassesThrough(t *testing.T) {
	p := &fakePipeline{err: analyzer.ErrDependencyUnavailable("down")}
	svc, _ := newTestService(p)
	ctx := context.Background()
	st, _ := svc.CreateStudent(ctx, "Dan")
	_, err := svc.Analyze(ctx, st.ID, "x")
	if !analyzer.IsDependencyUnavailable(err) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}

func TestAnalyze_InsertFailureWrapped(t *testing.T) {
	p := &fakePipeline{results: map[string]analyzer.Result{"She go to store.": sheGo}}
	svc, logs := newTestService(p)
	logs.insertErr = errBoom
	ctx := context.Background()
	st, _ := svc.CreateStudent(ctx, "Eve")
	_, err := svc.Analyze(ctx, st.ID, "She go to store.")
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestStudentErrorsAndFeedback(t *testing.T) {
	p := &fakePipeline{results: map[string]analyzer.Result{
		"She go to store.": sheGo,
		"They runs.": {CorrectedText: "They run.", Errors: []types.ErrorItem{
			{OriginalSpan: "runs.", CorrectedSpan: "run.", ErrorType: "Verb Tense Error"},
		}},
	}}
	svc, _ := newTestService(p)
	ctx := context.Background()
	st, _ := svc.CreateStudent(ctx, "Frank")

	fb, err := svc.Feedback(ctx, st.ID)
	if err != nil || fb != feedback.NoErrors {
		t.Fatalf("feedback=%q err=%v", fb, err)
	}

	for _, txt := range []string{"She go to store.", "They runs."} {
		if _, err := svc.Analyze(ctx, st.ID, txt); err != nil {
			t.Fatalf("analyze: %v", err)
		}
	}
	logs, err := svc.StudentErrors(ctx, st.ID)
	if err != nil || len(logs) != 3 {
		t.Fatalf("logs=%d err=%v", len(logs), err)
	}
	fb, err = svc.Feedback(ctx, st.ID)
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if !strings.HasPrefix(fb, "Your most frequent error type is 'Verb Tense Error', occurring 2 times.\n") {
		t.Fatalf("feedback=%q", fb)
	}
}

func TestStudentErrors_UnknownStudent(t *testing.T) {
	svc, _ := newTestService(&fakePipeline{})
	if _, err := svc.StudentErrors(context.Background(), 5); !IsStudentNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Feedback(context.Background(), 5); !IsStudentNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExportErrors(t *testing.T) {
	p := &fakePipeline{results: map[string]analyzer.Result{"She go to store.": sheGo}}
	svc, _ := newTestService(p)
	ctx := context.Background()
	st, _ := svc.CreateStudent(ctx, "Gina")
	if _, err := svc.Analyze(ctx, st.ID, "She go to store."); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	if err := svc.ExportErrors(ctx, st.ID, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows("Errors")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	buf.Reset()
	if err := svc.ExportErrors(ctx, 77, &buf); !IsStudentNotFound(err) || buf.Len() != 0 {
		t.Fatalf("expected not found with empty output, err=%v len=%d", err, buf.Len())
	}
}

func TestReady(t *testing.T) {
	p := &fakePipeline{ready: true}
	svc := New(Options{Students: &memStudents{}, ErrorLogs: &memLogs{}, Pipeline: p, Pinger: pinger{}})
	if !svc.Ready(context.Background()) {
		t.Fatal("expected ready")
	}
	svc = New(Options{Students: &memStudents{}, ErrorLogs: &memLogs{}, Pipeline: p, Pinger: pinger{err: errBoom}})
	if svc.Ready(context.Background()) {
		t.Fatal("expected not ready when ping fails")
	}
	p.ready = false
	svc = New(Options{Students: &memStudents{}, ErrorLogs: &memLogs{}, Pipeline: p})
	if svc.Ready(context.Background()) {
		t.Fatal("expected not ready without backends")
	}
}

func TestDefaultIDIsULID(t *testing.T) {
	svc := New(Options{Pipeline: &fakePipeline{}})
	id := svc.newID()
	if len(id) != 26 {
		t.Fatalf("expected 26-char ULID, got %q", id)
	}
}
