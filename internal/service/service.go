// Package service ties the student store, the analysis pipeline and the
// feedback rules together behind the operations the HTTP API exposes.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"grammarbot/internal/analyzer"
	"grammarbot/internal/export"
	"grammarbot/internal/feedback"
	"grammarbot/internal/store"
	"grammarbot/pkg/types"
)

// StudentStore persists students.
type StudentStore interface {
	Create(ctx context.Context, name string) (types.Student, error)
	Get(ctx context.Context, id int64) (types.Student, error)
	List(ctx context.Context) ([]types.Student, error)
}

// ErrorLogStore persists error logs.
type ErrorLogStore interface {
	InsertBatch(ctx context.Context, logs []types.ErrorLog) error
	ListByStudent(ctx context.Context, studentID int64) ([]types.ErrorLog, error)
}

// Pipeline runs one analysis. *analyzer.Analyzer implements it.
type Pipeline interface {
	Analyze(ctx context.Context, text string) (analyzer.Result, error)
	Status() types.StatusResponse
	Ready() bool
}

// Options wires a Service.
type Options struct {
	Students  StudentStore
	ErrorLogs ErrorLogStore
	Pipeline  Pipeline
	// Pinger checks the database for readiness; nil skips the check.
	Pinger interface{ Ping(ctx context.Context) error }
	// NewID returns submission ids; defaults to a time-ordered ULID.
	NewID  func() string
	Logger *zerolog.Logger
}

// Service implements the operations behind the HTTP API.
type Service struct {
	students  StudentStore
	errorLogs ErrorLogStore
	pipeline  Pipeline
	pinger    interface{ Ping(ctx context.Context) error }
	newID     func() string
	log       zerolog.Logger
}

// New builds a Service.
func New(opts Options) *Service {
	s := &Service{
		students:  opts.Students,
		errorLogs: opts.ErrorLogs,
		pipeline:  opts.Pipeline,
		pinger:    opts.Pinger,
		newID:     opts.NewID,
		log:       zerolog.Nop(),
	}
	if s.newID == nil {
		s.newID = newSubmissionID
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	return s
}

// CreateStudent registers a new student. Names are trimmed and must be
// unique.
func (s *Service) CreateStudent(ctx context.Context, name string) (types.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Student{}, ErrInvalidInput("name is required")
	}
	st, err := s.students.Create(ctx, name)
	if errors.Is(err, store.ErrDuplicateName) {
		return types.Student{}, duplicateNameError{name: name}
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("create student: %w", err)
	}
	s.log.Info().Int64("student_id", st.ID).Str("name", st.Name).Msg("student created")
	return st, nil
}

// ListStudents returns all students ordered by id.
func (s *Service) ListStudents(ctx context.Context) ([]types.Student, error) {
	list, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if list == nil {
		list = []types.Student{}
	}
	return list, nil
}

// GetStudent looks a student up by id.
func (s *Service) GetStudent(ctx context.Context, id int64) (types.Student, error) {
	st, err := s.students.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return types.Student{}, ErrStudentNotFound(id)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return st, nil
}

// Analyze corrects text for a student, stores one error log per changed span
// and returns the analysis.
func (s *Service) Analyze(ctx context.Context, studentID int64, text string) (types.AnalyzeResponse, error) {
	if strings.TrimSpace(text) == "" {
		return types.AnalyzeResponse{}, ErrInvalidInput("text is required")
	}
	if _, err := s.GetStudent(ctx, studentID); err != nil {
		return types.AnalyzeResponse{}, err
	}
	res, err := s.pipeline.Analyze(ctx, text)
	if err != nil {
		return types.AnalyzeResponse{}, err
	}

	resp := types.AnalyzeResponse{
		SubmissionID:  s.newID(),
		OriginalText:  text,
		CorrectedText: res.CorrectedText,
		Errors:        res.Errors,
	}
	if resp.Errors == nil {
		resp.Errors = []types.ErrorItem{}
	}
	if len(resp.Errors) == 0 {
		return resp, nil
	}
	logs := make([]types.ErrorLog, len(resp.Errors))
	for i, e := range resp.Errors {
		logs[i] = types.ErrorLog{
			StudentID:     studentID,
			SubmissionID:  resp.SubmissionID,
			OriginalText:  text,
			CorrectedText: res.CorrectedText,
			ErrorType:     e.ErrorType,
			OriginalSpan:  e.OriginalSpan,
			CorrectedSpan: e.CorrectedSpan,
		}
	}
	if err := s.errorLogs.InsertBatch(ctx, logs); err != nil {
		return types.AnalyzeResponse{}, fmt.Errorf("store error logs: %w", err)
	}
	s.log.Debug().Int64("student_id", studentID).Str("submission_id", resp.SubmissionID).Int("errors", len(logs)).Msg("analysis stored")
	return resp, nil
}

// StudentErrors returns every error log for a student in id order.
func (s *Service) StudentErrors(ctx context.Context, studentID int64) ([]types.ErrorLog, error) {
	if _, err := s.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	logs, err := s.errorLogs.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list error logs: %w", err)
	}
	if logs == nil {
		logs = []types.ErrorLog{}
	}
	return logs, nil
}

// Feedback summarizes a student's most frequent error type.
func (s *Service) Feedback(ctx context.Context, studentID int64) (string, error) {
	logs, err := s.StudentErrors(ctx, studentID)
	if err != nil {
		return "", err
	}
	return feedback.Build(logs), nil
}

// ExportErrors writes the student's error logs as an XLSX workbook.
// Nothing is written when the student is unknown.
func (s *Service) ExportErrors(ctx context.Context, studentID int64, w io.Writer) error {
	st, err := s.GetStudent(ctx, studentID)
	if err != nil {
		return err
	}
	logs, err := s.errorLogs.ListByStudent(ctx, studentID)
	if err != nil {
		return fmt.Errorf("list error logs: %w", err)
	}
	return export.WriteErrorLogs(w, st, logs)
}

// Status reports the analysis pipeline state.
func (s *Service) Status() types.StatusResponse { return s.pipeline.Status() }

// Ready reports whether the database answers and both model backends are
// configured.
func (s *Service) Ready(ctx context.Context) bool {
	if s.pinger != nil {
		if err := s.pinger.Ping(ctx); err != nil {
			s.log.Warn().Err(err).Msg("database ping")
			return false
		}
	}
	return s.pipeline.Ready()
}

// newSubmissionID returns a ULID; ulid.Make is the fallback when reading
// entropy fails.
func newSubmissionID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}
