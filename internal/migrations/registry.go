package migrations

import (
	"sort"
	"sync"
)

// Registry keeps schema migrations keyed by the major version they bring the database to.
type Registry struct {
	mu         sync.RWMutex
	migrations map[float64]MajorMigrationInterface
}

// DefaultRegistry receives the migrations that register themselves from init.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{migrations: make(map[float64]MajorMigrationInterface)}
}

// Register adds a migration, replacing any earlier one for the same version.
func (r *Registry) Register(migration MajorMigrationInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.migrations[migration.GetMajorVersion()] = migration
}

// GetMigrations returns every migration in ascending version order.
func (r *Registry) GetMigrations() []MajorMigrationInterface {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]MajorMigrationInterface, 0, len(r.migrations))
	for _, migration := range r.migrations {
		out = append(out, migration)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GetMajorVersion() < out[j].GetMajorVersion()
	})
	return out
}

func (r *Registry) GetMigration(version float64) (MajorMigrationInterface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	migration, ok := r.migrations[version]
	return migration, ok
}

// Pending returns the migrations with after < version <= upTo, oldest first.
func (r *Registry) Pending(after, upTo float64) []MajorMigrationInterface {
	var pending []MajorMigrationInterface
	for _, migration := range r.GetMigrations() {
		v := migration.GetMajorVersion()
		if v > after && v <= upTo {
			pending = append(pending, migration)
		}
	}
	return pending
}

func Register(migration MajorMigrationInterface) {
	DefaultRegistry.Register(migration)
}

func GetRegisteredMigrations() []MajorMigrationInterface {
	return DefaultRegistry.GetMigrations()
}

func GetRegisteredMigration(version float64) (MajorMigrationInterface, bool) {
	return DefaultRegistry.GetMigration(version)
}
