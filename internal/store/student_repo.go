package store

import (
	"context"
	"database/sql"
	"errors"

	"grammarbot/pkg/types"
)

// StudentRepo reads and writes the students table.
type StudentRepo struct{ db *DB }

func NewStudentRepo(db *DB) *StudentRepo { return &StudentRepo{db: db} }

// Create inserts a student. A taken name yields ErrDuplicateName.
func (r *StudentRepo) Create(ctx context.Context, name string) (types.Student, error) {
	q := r.db.rebind(`insert into students (name, created_at) values (?, ?) returning id`)
	s := types.Student{Name: name, CreatedAt: now()}
	if err := r.db.SQL.QueryRowContext(ctx, q, s.Name, s.CreatedAt).Scan(&s.ID); err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, ErrDuplicateName
		}
		return types.Student{}, err
	}
	return s, nil
}

// Get returns the student with id or ErrNotFound.
func (r *StudentRepo) Get(ctx context.Context, id int64) (types.Student, error) {
	q := r.db.rebind(`select id, name, created_at from students where id = ?`)
	var s types.Student
	if err := r.db.SQL.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, ErrNotFound
		}
		return types.Student{}, err
	}
	return s, nil
}

// List returns all students ordered by id.
func (r *StudentRepo) List(ctx context.Context) ([]types.Student, error) {
	rows, err := r.db.SQL.QueryContext(ctx, `select id, name, created_at from students order by id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []types.Student{}
	for rows.Next() {
		var s types.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
