package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resolvehub/issue-desk/internal/config"
)

func TestUpMigrations_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000002_b.up.sql", "000001_a.up.sql", "000001_a.down.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.up.sql"), 0o755))

	files, err := upMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a.up.sql", "000002_b.up.sql"}, files)
}

func TestUpMigrations_RepositoryMigrations(t *testing.T) {
	files, err := upMigrations(filepath.Join("..", "..", migrationsDir))
	require.NoError(t, err)
	assert.Contains(t, files, "000001_init.up.sql")
}

func TestRunMigrations_NoPoolIsNoop(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestSQLite_OpensAndPings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "desk.db")

	db, err := NewSQLite(path, 2, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping(context.Background()))
	assert.FileExists(t, path)
}

func TestSQLite_RequiresPath(t *testing.T) {
	_, err := NewSQLite("", 1, zap.NewNop())
	assert.Error(t, err)
}

func TestRedis_DisabledWithoutAddr(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())

	assert.False(t, r.Enabled())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrRedisDisabled)
	r.Close()
}

func TestPostgres_NoDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}
