package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"boqportal/models"
	"boqportal/utils"

	_ "github.com/lib/pq"
)

// ErrSessionNotFound is returned when a session id is unknown, expired or its user is suspended.
var ErrSessionNotFound = errors.New("session not found")

// InitDB opens the lib/pq connection pool used for users, sessions and activity logs.
func InitDB(dsn string) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Set connection pool settings optimized for light server load
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	return db
}

const authSchema = `
CREATE TABLE IF NOT EXISTS users (
	id          SERIAL PRIMARY KEY,
	email       TEXT NOT NULL UNIQUE,
	password    TEXT NOT NULL,
	first_name  TEXT NOT NULL DEFAULT '',
	last_name   TEXT NOT NULL DEFAULT '',
	role_name   TEXT NOT NULL DEFAULT 'vendor',
	vendor_id   INTEGER,
	suspended   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS session (
	session_id  TEXT PRIMARY KEY,
	user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	host_name   TEXT NOT NULL DEFAULT '',
	ip_address  TEXT NOT NULL DEFAULT '',
	timestp     TIMESTAMPTZ NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL
);`

// EnsureAuthSchema creates the users and session tables when missing.
func EnsureAuthSchema(db *sql.DB) error {
	if _, err := db.Exec(authSchema); err != nil {
		return fmt.Errorf("failed to create auth schema: %w", err)
	}
	return nil
}

// SQLStore implements session, user and activity log storage on database/sql.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// SaveSession inserts a new session row.
func (s *SQLStore) SaveSession(ctx context.Context, session *models.Session) error {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (user_id, session_id, host_name, ip_address, timestp, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		session.UserID, session.SessionID, session.HostName, session.IPAddress, session.Timestamp, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert new session: %w", err)
	}
	return nil
}

// DeleteSession removes a session (logout).
func (s *SQLStore) DeleteSession(ctx context.Context, sessionID string) error {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CleanupExpiredSessions deletes sessions that expired more than a day ago.
func (s *SQLStore) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.DefaultQuery)
	defer cancel()

	threshold := time.Now().Add(-24 * time.Hour)
	result, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE expires_at < $1", threshold)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// GetUserByEmail looks a user up case-insensitively.
func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	query := `SELECT id, email, password, first_name, last_name, role_name, COALESCE(vendor_id, 0), suspended, created_at, updated_at
	          FROM users WHERE LOWER(email) = LOWER($1)`

	var user models.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.RoleName, &user.VendorID, &user.Suspended, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// GetUserBySessionID returns the user owning a live session.
func (s *SQLStore) GetUserBySessionID(ctx context.Context, sessionID string) (*models.User, *models.Session, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role_name, COALESCE(u.vendor_id, 0),
		       u.suspended, u.created_at, u.updated_at,
		       s.session_id, s.host_name, s.ip_address, s.timestp, s.expires_at
		FROM session s
		JOIN users u ON s.user_id = u.id
		WHERE s.session_id = $1 AND s.expires_at > NOW()`

	var user models.User
	var session models.Session
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.RoleName, &user.VendorID,
		&user.Suspended, &user.CreatedAt, &user.UpdatedAt,
		&session.SessionID, &session.HostName, &session.IPAddress, &session.Timestamp, &session.ExpiresAt,
	)
	if err == sql.ErrNoRows || (err == nil && user.Suspended) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	session.UserID = user.ID
	return &user, &session, nil
}

// SaveActivityLog inserts an audit row.
func (s *SQLStore) SaveActivityLog(ctx context.Context, entry models.ActivityLog) error {
	ctx, cancel := utils.QueryContext(ctx, utils.FastQuery)
	defer cancel()

	query := `
    INSERT INTO activity_logs (
        created_at, user_name, host_name, event_context, ip_address,
        description, event_name, affected_user_name, affected_user_email, project_id
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.db.ExecContext(ctx, query,
		entry.CreatedAt, entry.UserName, entry.HostName, entry.EventContext, entry.IPAddress,
		entry.Description, entry.EventName, entry.AffectedUserName, entry.AffectedUserEmail, entry.ProjectID,
	)
	return err
}

// ListActivityLogs pages through the audit trail, newest first.
func (s *SQLStore) ListActivityLogs(ctx context.Context, limit, offset int) ([]models.ActivityLog, int, error) {
	ctx, cancel := utils.QueryContext(ctx, utils.DefaultQuery)
	defer cancel()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, user_name, host_name, event_context, ip_address, description,
		       event_name, COALESCE(affected_user_name, ''), COALESCE(affected_user_email, ''), COALESCE(project_id, 0)
		FROM activity_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.ActivityLog, 0)
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.CreatedAt, &l.UserName, &l.HostName, &l.EventContext, &l.IPAddress,
			&l.Description, &l.EventName, &l.AffectedUserName, &l.AffectedUserEmail, &l.ProjectID); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
