package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"grammarbot/internal/analyzer"
	"grammarbot/internal/store"
	"grammarbot/pkg/types"
)

type memStudents struct {
	mu   sync.Mutex
	list []types.Student
}

func (m *memStudents) Create(ctx context.Context, name string) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.list {
		if s.Name == name {
			return types.Student{}, store.ErrDuplicateName
		}
	}
	s := types.Student{ID: int64(len(m.list) + 1), Name: name, CreatedAt: time.Now()}
	m.list = append(m.list, s)
	return s, nil
}

func (m *memStudents) Get(ctx context.Context, id int64) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.list {
		if s.ID == id {
			return s, nil
		}
	}
	return types.Student{}, store.ErrNotFound
}

func (m *memStudents) List(ctx context.Context) ([]types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.Student(nil), m.list...), nil
}

type memLogs struct {
	mu        sync.Mutex
	rows      []types.ErrorLog
	insertErr error
}

func (m *memLogs) InsertBatch(ctx context.Context, logs []types.ErrorLog) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range logs {
		logs[i].ID = int64(len(m.rows) + 1)
		m.rows = append(m.rows, logs[i])
	}
	return nil
}

func (m *memLogs) ListByStudent(ctx context.Context, studentID int64) ([]types.ErrorLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.ErrorLog
	for _, r := range m.rows {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePipeline struct {
	results map[string]analyzer.Result
	err     error
	calls   int
	ready   bool
}

func (p *fakePipeline) Analyze(ctx context.Context, text string) (analyzer.Result, error) {
	p.calls++
	if p.err != nil {
		return analyzer.Result{}, p.err
	}
	if r, ok := p.results[text]; ok {
		return r, nil
	}
	return analyzer.Result{CorrectedText: text, Errors: []types.ErrorItem{}}, nil
}

func (p *fakePipeline) Status() types.StatusResponse { return types.StatusResponse{State: "ready"} }
func (p *fakePipeline) Ready() bool                  { return p.ready }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

var errBoom = errors.New("boom")

func newTestService(p *fakePipeline) (*Service, *memLogs) {
	logs := &memLogs{}
	n := 0
	svc := New(Options{
		Students:  &memStudents{},
		ErrorLogs: logs,
		Pipeline:  p,
		NewID: func() string {
			n++
			return "sub-" + string(rune('0'+n))
		},
	})
	return svc, logs
}
