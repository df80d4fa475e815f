package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/salesflow/crm/config"
	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/pkg/logger"
)

// ErrRestartRequired is returned when a migration requires a server restart
var ErrRestartRequired = errors.New("migration completed successfully - server restart required")

// Manager applies registered migrations and records the schema version under
// the db_version setting.
type Manager struct {
	logger   logger.Logger
	settings domain.SettingRepository
	registry MigrationRegistry
}

func NewManager(log logger.Logger, settings domain.SettingRepository) *Manager {
	return &Manager{logger: log, settings: settings, registry: DefaultRegistry}
}

// CurrentVersion reports the recorded schema version; ok is false on a database
// that has never been versioned.
func (m *Manager) CurrentVersion(ctx context.Context) (version float64, ok bool, err error) {
	setting, err := m.settings.Get(ctx, domain.SettingDBVersion)
	var missing *domain.ErrSettingNotFound
	if errors.As(err, &missing) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read database version: %w", err)
	}

	version, err = strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid database version %q: %w", setting.Value, err)
	}
	return version, true, nil
}

func (m *Manager) SetVersion(ctx context.Context, version float64) error {
	if err := m.settings.Set(ctx, domain.SettingDBVersion, versionString(version)); err != nil {
		return fmt.Errorf("failed to record database version %s: %w", versionString(version), err)
	}
	return nil
}

// RunMigrations brings the schema up to the code version. A fresh install only
// records the version since InitializeDatabase already created the full schema.
func (m *Manager) RunMigrations(ctx context.Context, cfg *config.Config, db *sql.DB) error {
	codeVersion, err := GetCurrentCodeVersion()
	if err != nil {
		return err
	}

	dbVersion, ok, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	log := m.logger.WithField("code_version", versionString(codeVersion))

	if !ok {
		log.Info("Unversioned database, recording code version")
		return m.SetVersion(ctx, codeVersion)
	}

	log = log.WithField("db_version", versionString(dbVersion))
	pending := m.registry.Pending(dbVersion, codeVersion)
	if dbVersion >= codeVersion || len(pending) == 0 {
		log.Info("Database schema is up to date")
		return nil
	}

	log.WithField("count", len(pending)).Info("Applying schema migrations")
	restart := false
	for _, migration := range pending {
		if err := m.apply(ctx, cfg, db, migration); err != nil {
			return fmt.Errorf("migration v%s failed: %w", versionString(migration.GetMajorVersion()), err)
		}
		restart = restart || migration.ShouldRestartServer()
	}

	if err := m.SetVersion(ctx, codeVersion); err != nil {
		return err
	}
	log.Info("Schema migrations applied")

	if restart {
		return ErrRestartRequired
	}
	return nil
}

func (m *Manager) apply(ctx context.Context, cfg *config.Config, db *sql.DB, migration MajorMigrationInterface) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := migration.Up(ctx, cfg, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	m.logger.WithField("version", versionString(migration.GetMajorVersion())).Info("Migration applied")
	return nil
}

func versionString(version float64) string {
	return strconv.FormatFloat(version, 'f', 0, 64)
}
