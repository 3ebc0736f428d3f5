package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"

	"ninlookup/internal/lookup/models"
	id "ninlookup/pkg/domain"
	"ninlookup/pkg/platform/sentinel"
	"ninlookup/pkg/requestcontext"
)

var columns = []string{
	"id", "ref", "created_at", "client_ip", "user_agent", "lookup_method", "consent",
	"input", "provider", "status", "result", "error", "completed_at",
}

type PostgresStoreSuite struct {
	suite.Suite
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store *PostgresStore
	ctx   context.Context
	now   time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.db, s.mock = db, mock
	s.store = NewPostgres(db)
	s.now = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now.Add(time.Second))
}

func (s *PostgresStoreSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *PostgresStoreSuite) record() *models.VerificationRequest {
	rec, err := models.NewVerificationRequest(id.NewVerificationID(), id.NewReference(), models.MethodNIN,
		models.Payload{models.FieldNIN: "00000000000"}, "mock", "", "curl", s.now)
	s.Require().NoError(err)
	return rec
}

func (s *PostgresStoreSuite) TestCreate() {
	rec := s.record()
	s.mock.ExpectExec(`INSERT INTO verification_requests`).
		WithArgs(uuid.UUID(rec.ID), rec.Ref.String(), s.now, sql.NullString{}, "curl", "nin", true,
			`{"nin":"00000000000"}`, "mock", "pending", `{}`, "", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.store.Create(s.ctx, rec))
}

func (s *PostgresStoreSuite) TestCreateUniqueViolationIsConflict() {
	s.mock.ExpectExec(`INSERT INTO verification_requests`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	s.ErrorIs(s.store.Create(s.ctx, s.record()), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestCompleteReturnsUpdatedRecord() {
	rec := s.record()
	completed := s.now.Add(time.Second)
	s.mock.ExpectQuery(`UPDATE verification_requests\s+SET status = \$2, result = \$3, error = \$4, completed_at = \$5\s+WHERE id = \$1 AND status = 'pending'`).
		WithArgs(uuid.UUID(rec.ID), "ipe", `{"status":"ipe"}`, "", completed).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			rec.ID.String(), rec.Ref.String(), s.now, nil, "curl", "nin", true,
			[]byte(`{"nin":"00000000000"}`), "mock", "ipe", []byte(`{"status":"ipe"}`), "", completed,
		))

	got, err := s.store.Complete(s.ctx, rec.ID, models.SuccessOutcome(map[string]any{"status": "ipe"}))
	s.Require().NoError(err)
	s.Equal(rec.ID, got.ID)
	s.Equal("ipe", got.Status)
	s.Equal(map[string]any{"status": "ipe"}, got.Result)
	s.Equal(models.Payload{"nin": "00000000000"}, got.Input)
	s.Empty(got.ClientIP)
	s.Require().NotNil(got.CompletedAt)
	s.Equal(completed, *got.CompletedAt)
}

func (s *PostgresStoreSuite) TestCompleteTwiceIsInvalidState() {
	vid := id.NewVerificationID()
	s.mock.ExpectQuery(`UPDATE verification_requests`).WillReturnError(sql.ErrNoRows)
	s.mock.ExpectQuery(`SELECT EXISTS`).WithArgs(uuid.UUID(vid)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := s.store.Complete(s.ctx, vid, models.FailureOutcome("late"))
	s.ErrorIs(err, sentinel.ErrInvalidState)
}

func (s *PostgresStoreSuite) TestCompleteUnknownIsNotFound() {
	s.mock.ExpectQuery(`UPDATE verification_requests`).WillReturnRows(sqlmock.NewRows(columns))
	s.mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := s.store.Complete(s.ctx, id.NewVerificationID(), models.FailureOutcome("x"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCompleteRejectsPendingStatus() {
	_, err := s.store.Complete(s.ctx, id.NewVerificationID(), models.Outcome{Status: models.StatusPending})
	s.ErrorIs(err, models.ErrEmptyStatus)
}

func (s *PostgresStoreSuite) TestFindByRef() {
	rec := s.record()
	s.mock.ExpectQuery(`SELECT .+ FROM verification_requests WHERE ref = \$1`).
		WithArgs(rec.Ref.String()).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			rec.ID.String(), rec.Ref.String(), s.now, "10.0.0.1", "curl", "nin", true,
			[]byte(`{"nin":"00000000000"}`), "mock", "error", []byte(`{}`), "Invalid phone number", nil,
		))

	got, err := s.store.FindByRef(s.ctx, rec.Ref)
	s.Require().NoError(err)
	s.Equal("10.0.0.1", got.ClientIP)
	s.Equal("Invalid phone number", got.Error)
	s.Empty(got.Result)
	s.Nil(got.CompletedAt)
}

func (s *PostgresStoreSuite) TestFindByRefNotFound() {
	s.mock.ExpectQuery(`FROM verification_requests WHERE ref`).WillReturnRows(sqlmock.NewRows(columns))

	_, err := s.store.FindByRef(s.ctx, id.NewReference())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestFindByRefWrapsDriverErrors() {
	s.mock.ExpectQuery(`FROM verification_requests WHERE ref`).WillReturnError(errors.New("connection reset"))

	_, err := s.store.FindByRef(s.ctx, id.NewReference())
	s.Require().Error(err)
	s.NotErrorIs(err, sentinel.ErrNotFound)
	s.Contains(err.Error(), "connection reset")
}

func (s *PostgresStoreSuite) TestListRecent() {
	rows := sqlmock.NewRows(columns)
	for i := range 3 {
		rows.AddRow(uuid.NewString(), id.NewReference().String(), s.now.Add(-time.Duration(i)*time.Minute), nil, "", "phone",
			true, []byte(`{}`), "mono", "matched", []byte(`{}`), "", nil)
	}
	s.mock.ExpectQuery(`ORDER BY created_at DESC, ref DESC\s+LIMIT \$1`).WithArgs(50).WillReturnRows(rows)

	got, err := s.store.ListRecent(s.ctx, 50)
	s.Require().NoError(err)
	s.Len(got, 3)
	s.Equal(models.MethodPhone, got[0].Method)
}

func (s *PostgresStoreSuite) TestRecordStatusCheck() {
	check := &models.StatusCheck{ID: id.NewStatusCheckID(), Ref: id.NewReference(), CheckedAt: s.now, ClientIP: "10.0.0.1", Found: true}
	s.mock.ExpectExec(`INSERT INTO status_checks`).
		WithArgs(uuid.UUID(check.ID), check.Ref.String(), s.now, sql.NullString{String: "10.0.0.1", Valid: true}, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.store.RecordStatusCheck(s.ctx, check))
}
