package migrations

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesflow/crm/config"
)

// mockMigration records whether Up ran and can fail or request a restart.
type mockMigration struct {
	version float64
	restart bool
	err     error
	ran     bool
}

func (m *mockMigration) GetMajorVersion() float64 {
	return m.version
}

func (m *mockMigration) ShouldRestartServer() bool {
	return m.restart
}

func (m *mockMigration) Up(ctx context.Context, cfg *config.Config, db DBExecutor) error {
	m.ran = true
	return m.err
}

func newRegistry(migrations ...MajorMigrationInterface) *Registry {
	r := NewRegistry()
	for _, m := range migrations {
		r.Register(m)
	}
	return r
}

func TestRegistry_GetMigrationsSorted(t *testing.T) {
	r := newRegistry(&mockMigration{version: 5}, &mockMigration{version: 2}, &mockMigration{version: 3})

	got := r.GetMigrations()
	require.Len(t, got, 3)
	assert.Equal(t, 2.0, got[0].GetMajorVersion())
	assert.Equal(t, 3.0, got[1].GetMajorVersion())
	assert.Equal(t, 5.0, got[2].GetMajorVersion())

	assert.Empty(t, newRegistry().GetMigrations())
}

func TestRegistry_GetMigration(t *testing.T) {
	first := &mockMigration{version: 2}
	replacement := &mockMigration{version: 2, restart: true}
	r := newRegistry(first)

	m, ok := r.GetMigration(2)
	require.True(t, ok)
	assert.Same(t, first, m)

	r.Register(replacement)
	m, _ = r.GetMigration(2)
	assert.Same(t, replacement, m)

	_, ok = r.GetMigration(9)
	assert.False(t, ok)
}

func TestRegistry_Pending(t *testing.T) {
	r := newRegistry(&mockMigration{version: 4}, &mockMigration{version: 2}, &mockMigration{version: 3})

	var versions []float64
	for _, m := range r.Pending(2, 4) {
		versions = append(versions, m.GetMajorVersion())
	}
	assert.Equal(t, []float64{3, 4}, versions)

	assert.Empty(t, r.Pending(4, 4))
	assert.Empty(t, r.Pending(5, 3))
}

func TestDefaultRegistry_ShipsSchemaMigrations(t *testing.T) {
	for _, v := range []float64{2, 3} {
		_, ok := GetRegisteredMigration(v)
		assert.True(t, ok, fmt.Sprintf("migration v%.0f registered", v))
	}

	code, err := GetCurrentCodeVersion()
	require.NoError(t, err)
	for _, m := range GetRegisteredMigrations() {
		assert.LessOrEqual(t, m.GetMajorVersion(), code)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := newRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(v float64) {
			defer wg.Done()
			r.Register(&mockMigration{version: v})
		}(float64(i))
		go func() {
			defer wg.Done()
			_ = r.GetMigrations()
		}()
	}
	wg.Wait()
	assert.Len(t, r.GetMigrations(), 20)
}
