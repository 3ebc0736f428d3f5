package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"ninlookup/internal/lookup/models"
	id "ninlookup/pkg/domain"
	"ninlookup/pkg/platform/sentinel"
	"ninlookup/pkg/requestcontext"
)

const pgUniqueViolation = "23505"

// PostgresStore persists verification requests in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const recordColumns = `id, ref, created_at, client_ip, user_agent, lookup_method, consent,
		input, provider, status, result, error, completed_at`

func (s *PostgresStore) Create(ctx context.Context, r *models.VerificationRequest) error {
	if r == nil {
		return fmt.Errorf("verification request is required")
	}
	input, err := json.Marshal(r.Input)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	result, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	query := `
		INSERT INTO verification_requests (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(r.ID),
		r.Ref.String(),
		r.CreatedAt,
		nullString(r.ClientIP),
		r.UserAgent,
		r.Method.String(),
		r.Consent,
		string(input),
		r.Provider,
		r.Status,
		string(result),
		r.Error,
		r.CompletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create verification request: %w", err)
	}
	return nil
}

// Complete performs the pending -> terminal transition in a single conditional UPDATE,
// so concurrent completions cannot both win.
func (s *PostgresStore) Complete(ctx context.Context, vid id.VerificationID, o models.Outcome) (*models.VerificationRequest, error) {
	if o.Status == "" || o.Status == models.StatusPending {
		return nil, fmt.Errorf("complete verification request: %w", models.ErrEmptyStatus)
	}
	resultMap := o.Result
	if resultMap == nil {
		resultMap = map[string]any{}
	}
	result, err := json.Marshal(resultMap)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	query := `
		UPDATE verification_requests
		SET status = $2, result = $3, error = $4, completed_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + recordColumns
	rec, err := scanRecord(s.db.QueryRowContext(ctx, query,
		uuid.UUID(vid),
		o.Status,
		string(result),
		o.Error,
		requestcontext.Now(ctx),
	))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("complete verification request: %w", err)
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM verification_requests WHERE id = $1)`, uuid.UUID(vid),
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check verification request: %w", err)
	}
	if exists {
		return nil, sentinel.ErrInvalidState
	}
	return nil, sentinel.ErrNotFound
}

func (s *PostgresStore) FindByRef(ctx context.Context, ref id.Reference) (*models.VerificationRequest, error) {
	query := `SELECT ` + recordColumns + ` FROM verification_requests WHERE ref = $1`
	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, ref.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification request: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*models.VerificationRequest, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM verification_requests
		ORDER BY created_at DESC, ref DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list verification requests: %w", err)
	}
	defer rows.Close()

	var out []*models.VerificationRequest
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification request: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification requests: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) RecordStatusCheck(ctx context.Context, c *models.StatusCheck) error {
	if c == nil {
		return fmt.Errorf("status check is required")
	}
	query := `
		INSERT INTO status_checks (id, ref, checked_at, client_ip, found)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(c.ID),
		c.Ref.String(),
		c.CheckedAt,
		nullString(c.ClientIP),
		c.Found,
	)
	if err != nil {
		return fmt.Errorf("record status check: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.VerificationRequest, error) {
	var (
		rec       models.VerificationRequest
		rawID     uuid.UUID
		ref       string
		clientIP  sql.NullString
		method    string
		input     []byte
		result    []byte
		completed sql.NullTime
	)
	if err := row.Scan(
		&rawID, &ref, &rec.CreatedAt, &clientIP, &rec.UserAgent, &method, &rec.Consent,
		&input, &rec.Provider, &rec.Status, &result, &rec.Error, &completed,
	); err != nil {
		return nil, err
	}
	rec.ID = id.VerificationID(rawID)
	rec.Ref = id.Reference(ref)
	rec.ClientIP = clientIP.String
	rec.Method = models.Method(method)
	if completed.Valid {
		t := completed.Time
		rec.CompletedAt = &t
	}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &rec.Input); err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}
	}
	if rec.Input == nil {
		rec.Input = models.Payload{}
	}
	if len(result) > 0 {
		if err := json.Unmarshal(result, &rec.Result); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
	}
	if rec.Result == nil {
		rec.Result = map[string]any{}
	}
	return &rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
