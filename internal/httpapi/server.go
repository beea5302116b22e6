package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grammarbot/internal/analyzer"
	"grammarbot/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	CreateStudent(ctx context.Context, name string) (types.Student, error)
	ListStudents(ctx context.Context) ([]types.Student, error)
	GetStudent(ctx context.Context, id int64) (types.Student, error)
	Analyze(ctx context.Context, studentID int64, text string) (types.AnalyzeResponse, error)
	StudentErrors(ctx context.Context, studentID int64) ([]types.ErrorLog, error)
	Feedback(ctx context.Context, studentID int64) (string, error)
	ExportErrors(ctx context.Context, studentID int64, w io.Writer) error
	Status() types.StatusResponse
	Ready(ctx context.Context) bool
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handlers struct{ svc Service }

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5, "application/json"))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}
	r.Post("/students", h.createStudent)
	r.Get("/students", h.listStudents)
	r.Get("/students/{id}", h.getStudent)
	r.Get("/students/{id}/errors", h.studentErrors)
	r.Get("/students/{id}/errors.xlsx", h.exportErrors)
	r.Get("/students/{id}/feedback", h.feedback)
	r.Post("/analyze", h.analyze)

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready(r.Context()) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// createStudent godoc
// @Summary      Register a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body      types.CreateStudentRequest  true  "Student"
// @Success      200   {object}  types.CreateStudentResponse
// @Failure      400   {object}  types.ErrorResponse
// @Router       /students [post]
func (h *handlers) createStudent(w http.ResponseWriter, r *http.Request) {
	var req types.CreateStudentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	start, lvl := time.Now(), requestLogLevel(r)
	st, err := h.svc.CreateStudent(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, lvl, "create_student", start, err)
		return
	}
	logEnd(r, lvl, "create_student", http.StatusOK, start, nil)
	writeJSON(w, http.StatusOK, types.CreateStudentResponse{StudentID: st.ID, Name: st.Name})
}

// listStudents godoc
// @Summary      List students
// @Tags         students
// @Produce      json
// @Success      200  {object}  types.StudentsResponse
// @Router       /students [get]
func (h *handlers) listStudents(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListStudents(r.Context())
	if err != nil {
		writeServiceError(w, r, requestLogLevel(r), "list_students", time.Now(), err)
		return
	}
	writeJSON(w, http.StatusOK, types.StudentsResponse{Students: list})
}

// getStudent godoc
// @Summary      Look up a student
// @Tags         students
// @Produce      json
// @Param        id   path      int  true  "Student ID"
// @Success      200  {object}  types.Student
// @Failure      404  {object}  types.ErrorResponse
// @Router       /students/{id} [get]
func (h *handlers) getStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	st, err := h.svc.GetStudent(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, requestLogLevel(r), "get_student", time.Now(), err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// studentErrors godoc
// @Summary      Error history of a student
// @Tags         students
// @Produce      json
// @Param        id   path      int  true  "Student ID"
// @Success      200  {array}   types.ErrorLog
// @Failure      404  {object}  types.ErrorResponse
// @Router       /students/{id}/errors [get]
func (h *handlers) studentErrors(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	logs, err := h.svc.StudentErrors(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, requestLogLevel(r), "student_errors", time.Now(), err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// exportErrors godoc
// @Summary      Error history as a spreadsheet
// @Tags         students
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      int  true  "Student ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  types.ErrorResponse
// @Router       /students/{id}/errors.xlsx [get]
func (h *handlers) exportErrors(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.ExportErrors(r.Context(), id, &buf); err != nil {
		writeServiceError(w, r, requestLogLevel(r), "export_errors", time.Now(), err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="student-%d-errors.xlsx"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// feedback godoc
// @Summary      Feedback on the most frequent error type
// @Tags         students
// @Produce      json
// @Param        id   path      int  true  "Student ID"
// @Success      200  {object}  types.FeedbackResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /students/{id}/feedback [get]
func (h *handlers) feedback(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	fb, err := h.svc.Feedback(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, requestLogLevel(r), "feedback", time.Now(), err)
		return
	}
	writeJSON(w, http.StatusOK, types.FeedbackResponse{Feedback: fb})
}

// analyze godoc
// @Summary      Correct a text and record its errors
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body      types.AnalyzeRequest  true  "Submission"
// @Success      200   {object}  types.AnalyzeResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      502   {object}  types.ErrorResponse
// @Failure      503   {object}  types.ErrorResponse
// @Router       /analyze [post]
func (h *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSONError(w, http.StatusBadRequest, "text is required")
		return
	}
	start, lvl := time.Now(), requestLogLevel(r)
	if lvl >= LevelInfo {
		ev := zlog.Info().Str("path", r.URL.Path).Int64("student_id", req.StudentID).Int("text_len", len(req.Text))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			ev = ev.Str("request_id", rid)
		}
		ev.Msg("analyze start")
	}

	ctx, cancel := analysisContext(r)
	defer cancel()

	resp, err := h.svc.Analyze(ctx, req.StudentID, req.Text)
	if err != nil {
		// Client went away or the server is shutting down.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		writeServiceError(w, r, lvl, "analyze", start, err)
		return
	}
	if lvl >= LevelDebug {
		zlog.Debug().Str("submission_id", resp.SubmissionID).Str("corrected_text", resp.CorrectedText).Int("errors", len(resp.Errors)).Msg("analyze result")
	}
	logEnd(r, lvl, "analyze", http.StatusOK, start, nil)
	writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps err to a status code, logs and writes the error body.
func writeServiceError(w http.ResponseWriter, r *http.Request, lvl LogLevel, op string, start time.Time, err error) {
	status := statusFor(err)
	if status == http.StatusTooManyRequests {
		IncrementBackpressure(analyzer.TooBusyReason(err))
	}
	logEnd(r, lvl, op, status, start, err)
	writeJSONError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

// decodeJSON enforces a JSON content type and the body size limit, then
// decodes into v. It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Oversized bodies also land here; report them as invalid JSON.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func studentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid student id")
		return 0, false
	}
	return id, true
}
