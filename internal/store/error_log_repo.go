package store

import (
	"context"
	"fmt"

	"grammarbot/pkg/types"
)

// ErrorLogRepo reads and writes the error_logs table.
type ErrorLogRepo struct{ db *DB }

func NewErrorLogRepo(db *DB) *ErrorLogRepo { return &ErrorLogRepo{db: db} }

// InsertBatch writes all logs of one analysis in a single transaction.
// IDs and timestamps are filled in on the passed slice.
func (r *ErrorLogRepo) InsertBatch(ctx context.Context, logs []types.ErrorLog) error {
	if len(logs) == 0 {
		return nil
	}
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	q := r.db.rebind(`
insert into error_logs (
  student_id, submission_id, original_text, corrected_text,
  error_type, original_span, corrected_span, created_at
) values (?, ?, ?, ?, ?, ?, ?, ?)
returning id`)
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()
	created := now()
	for i := range logs {
		l := &logs[i]
		l.CreatedAt = created
		if err := stmt.QueryRowContext(ctx,
			l.StudentID, l.SubmissionID, l.OriginalText, l.CorrectedText,
			l.ErrorType, l.OriginalSpan, l.CorrectedSpan, l.CreatedAt,
		).Scan(&l.ID); err != nil {
			return fmt.Errorf("insert error log %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ListByStudent returns a student's logs in insertion order.
func (r *ErrorLogRepo) ListByStudent(ctx context.Context, studentID int64) ([]types.ErrorLog, error) {
	q := r.db.rebind(`
select id, student_id, submission_id, original_text, corrected_text,
       error_type, original_span, corrected_span, created_at
from error_logs
where student_id = ?
order by id`)
	rows, err := r.db.SQL.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []types.ErrorLog{}
	for rows.Next() {
		var l types.ErrorLog
		if err := rows.Scan(&l.ID, &l.StudentID, &l.SubmissionID, &l.OriginalText, &l.CorrectedText,
			&l.ErrorType, &l.OriginalSpan, &l.CorrectedSpan, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
