package authlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func pgTestEvent() Event {
	return Event{
		ID:            "01J0000000000000000000TEST",
		UserID:        "u1",
		EventType:     "login",
		Provider:      "email",
		Timestamp:     "2026-08-30 10:00:00",
		TimestampUnix: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC).UnixMilli(),
	}
}

func TestPgArchiveAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	arc := NewPgArchive(db)

	e := pgTestEvent()

	mock.ExpectBegin()
	mock.ExpectExec(`insert into auth_events\(`).
		WithArgs(e.ID, e.UserID, e.EventType, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into auth_events_daily\(`).
		WithArgs(e.ID, "2026-08-30", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into auth_events_meta\(`).
		WithArgs(schemaVersion, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := arc.Append(context.Background(), e, []Event{e}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPgArchiveAppendRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	arc := NewPgArchive(db)

	e := pgTestEvent()
	boom := errors.New("daily insert failed")

	mock.ExpectBegin()
	mock.ExpectExec(`insert into auth_events\(`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into auth_events_daily\(`).
		WillReturnError(boom)
	mock.ExpectRollback()

	if err := arc.Append(context.Background(), e, []Event{e}); !errors.Is(err, boom) {
		t.Fatalf("expected daily insert error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPgArchiveCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	arc := NewPgArchive(db)

	mock.ExpectQuery(`select count\(\*\) from auth_events`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := arc.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 42 {
		t.Fatalf("count = %d", n)
	}
}

func TestArchiveFailureDoesNotRollBackMemory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("pg unreachable"))

	s := NewStore(nil, NewPgArchive(db))
	_, appendErr := s.Append(context.Background(), Event{UserID: "u1"}, "")
	if appendErr == nil {
		t.Fatal("expected archive failure to surface")
	}
	if s.Len() != 1 {
		t.Fatalf("in-memory append rolled back: len = %d", s.Len())
	}
}
