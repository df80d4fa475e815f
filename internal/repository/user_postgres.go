package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opencensus.io/trace"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/tracing"
)

type userRepository struct {
	systemDB *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{systemDB: db}
}

const userColumns = `id, email, name, type, external_id, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var user domain.User
	var externalID sql.NullString
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Type, &externalID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	user.ExternalID = stringPtr(externalID)
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Type == "" {
		user.Type = domain.UserTypeUser
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, name, type, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.systemDB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Type,
		nullString(user.ExternalID),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("user %s already exists", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) getUserBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`
	user, err := scanUser(r.systemDB.QueryRowContext(ctx, query, value))
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUserBy(ctx, "email", email)
}

func (r *userRepository) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	return r.getUserBy(ctx, "external_id", externalID)
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "UserRepository", "GetUserByID")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("user.id", id))

	startTime := time.Now()
	user, err := r.getUserBy(ctx, "id", id)
	span.AddAttributes(trace.Int64Attribute("db.query_duration_ms", time.Since(startTime).Milliseconds()))

	if err == domain.ErrUserNotFound {
		span.SetStatus(trace.Status{Code: trace.StatusCodeNotFound, Message: "user not found"})
		return nil, err
	}
	if err != nil {
		span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()})
		return nil, err
	}
	return user, nil
}

// UpsertExternalUser links a hosted-auth identity to a user, matching on external_id then email.
func (r *userRepository) UpsertExternalUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Type == "" {
		user.Type = domain.UserTypeUser
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO users (id, email, name, type, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO UPDATE SET
			external_id = EXCLUDED.external_id,
			name = CASE WHEN users.name = '' THEN EXCLUDED.name ELSE users.name END,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`
	err := r.systemDB.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Name, user.Type, nullString(user.ExternalID), now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert external user: %w", err)
	}
	return nil
}

func (r *userRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now().UTC()
	session.ExpiresAt = session.ExpiresAt.UTC()
	if session.MagicCodeExpires != nil {
		t := session.MagicCodeExpires.UTC()
		session.MagicCodeExpires = &t
	}

	query := `
		INSERT INTO user_sessions (id, user_id, expires_at, created_at, magic_code, magic_code_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.systemDB.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.ExpiresAt,
		session.CreatedAt,
		session.MagicCode,
		session.MagicCodeExpires,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func scanSession(row interface{ Scan(...interface{}) error }) (*domain.Session, error) {
	var session domain.Session
	var code sql.NullString
	var codeExpires sql.NullTime
	if err := row.Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt, &code, &codeExpires); err != nil {
		return nil, err
	}
	session.MagicCode = stringPtr(code)
	session.MagicCodeExpires = timePtr(codeExpires)
	return &session, nil
}

func (r *userRepository) GetSessionByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at, magic_code, magic_code_expires_at
		FROM user_sessions
		WHERE id = $1
	`
	session, err := scanSession(r.systemDB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFound("session", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (r *userRepository) GetSessionsByUserID(ctx context.Context, userID string) ([]*domain.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at, magic_code, magic_code_expires_at
		FROM user_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.systemDB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *userRepository) UpdateSession(ctx context.Context, session *domain.Session) error {
	query := `
		UPDATE user_sessions
		SET expires_at = $1, magic_code = $2, magic_code_expires_at = $3
		WHERE id = $4
	`
	result, err := r.systemDB.ExecContext(ctx, query,
		session.ExpiresAt,
		session.MagicCode,
		session.MagicCodeExpires,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return rowsAffectedOrNotFound(result, "session", session.ID)
}

func (r *userRepository) DeleteAllSessionsByUserID(ctx context.Context, userID string) error {
	if _, err := r.systemDB.ExecContext(ctx, `DELETE FROM user_sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
