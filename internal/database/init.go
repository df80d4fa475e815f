package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salesflow/crm/internal/database/schema"
	"github.com/salesflow/crm/internal/domain"
)

// InitializeDatabase creates all tables if they don't exist and seeds the root user.
func InitializeDatabase(db *sql.DB, rootEmail string) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if rootEmail == "" {
		return nil
	}

	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", rootEmail).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check root user existence: %w", err)
	}
	if exists {
		return nil
	}

	now := time.Now().UTC()
	root := &domain.User{
		ID:        uuid.New().String(),
		Email:     rootEmail,
		Name:      "Root User",
		Type:      domain.UserTypeUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = db.Exec(`
		INSERT INTO users (id, email, name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, root.ID, root.Email, root.Name, root.Type, root.CreatedAt, root.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create root user: %w", err)
	}
	return nil
}

// CleanDatabase drops all tables in reverse creation order. Used by dev resets and tests.
func CleanDatabase(db *sql.DB) error {
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", schema.TableNames[i])
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", schema.TableNames[i], err)
		}
	}
	return nil
}
