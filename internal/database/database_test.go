package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilife/backend/config"
	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/testhelpers"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: config.Test,
		DBDriver:    "sqlite",
		SQLitePath:  filepath.Join(t.TempDir(), "nutrilife.db"),
	}
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(sqliteConfig(t), nil)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db, "does-not-matter", nil))

	user := models.User{Email: "test@example.com", Username: "tester", PasswordHash: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)

	for _, table := range []string{"users", "user_profiles", "bmi_records", "recipes", "meal_plans", "meal_logs", "calorie_summaries", "detection_records"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DBDriver = "mysql"
	_, err := Open(cfg, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrationFilesSkipsRollbacks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_more.sql", "0001_init.sql", "0001_init_rollback.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}

	files, err := MigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_more.sql"}, files)

	_, err = MigrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRepositoryMigrationsOnPostgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, RunMigrations(db, filepath.Join("..", "..", "migrations"), nil))
	// A second run is a no-op.
	require.NoError(t, RunMigrations(db, filepath.Join("..", "..", "migrations"), nil))

	var applied int64
	require.NoError(t, db.Table("migrations").Count(&applied).Error)
	assert.EqualValues(t, 1, applied)
}

func TestRedisOptions(t *testing.T) {
	opts, err := RedisOptions(&config.Config{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = RedisOptions(&config.Config{RedisHost: "ignored", RedisURL: "redis://:secret@redis.internal:6379/1"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 1, opts.DB)

	_, err = RedisOptions(&config.Config{RedisURL: "http://nope"})
	assert.Error(t, err)
}
