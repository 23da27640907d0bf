package repositories

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

// recordingQuerier captures the last statement and its arguments and
// answers every QueryRow with a fixed ID.
type recordingQuerier struct {
	sql  string
	args []any
	id   int64
}

func (q *recordingQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql, q.args = sql, args
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql, q.args = sql, args
	return nil, pgx.ErrNoRows
}

func (q *recordingQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.sql, q.args = sql, args
	return idRow{id: q.id}
}

type idRow struct {
	id int64
}

func (r idRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if p, ok := dest[0].(*int64); ok {
			*p = r.id
		}
	}
	return nil
}

func TestCreateQuestionPersistsAnswerType(t *testing.T) {
	q := &recordingQuerier{id: 42}
	repo := NewLessonRepository(q)

	answerType := models.AnswerTypeFile
	id, err := repo.CreateQuestion(context.Background(), &models.Question{
		LessonID:   7,
		Statement:  "Envie o projeto final",
		AnswerType: &answerType,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if id != 42 {
		t.Fatalf("got id %d, want 42", id)
	}
	if !strings.Contains(q.sql, "answer_type") {
		t.Fatalf("insert does not persist answer_type: %s", q.sql)
	}
	if len(q.args) != 4 {
		t.Fatalf("got %d args, want 4", len(q.args))
	}
	got, ok := q.args[2].(*models.AnswerType)
	if !ok || *got != models.AnswerTypeFile {
		t.Fatalf("answer type arg = %v, want FILE", q.args[2])
	}
}

func TestUpsertSubjectiveAnswerKeysOnEnrollmentAndQuestion(t *testing.T) {
	q := &recordingQuerier{id: 9}
	repo := NewLessonRepository(q)

	text := "Minha resposta"
	id, err := repo.UpsertSubjectiveAnswer(context.Background(), &models.SubjectiveAnswer{
		QuestionID:   3,
		EnrollmentID: 11,
		AnswerText:   &text,
	})
	if err != nil {
		t.Fatalf("UpsertSubjectiveAnswer: %v", err)
	}
	if id != 9 {
		t.Fatalf("got id %d, want 9", id)
	}
	if !strings.Contains(q.sql, "ON CONFLICT (question_id, enrollment_id)") {
		t.Fatalf("resubmission must replace the stored answer: %s", q.sql)
	}
	if q.args[0] != int64(3) || q.args[1] != int64(11) {
		t.Fatalf("args = %v, want question 3 and enrollment 11", q.args)
	}
}
