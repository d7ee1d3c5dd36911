package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ledgeranchor/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add anchor index", "add_anchor_index"},
		{"Add-Anchor-Index", "add_anchor_index"},
		{"add__anchor__index", "add_anchor_index"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"trailing_", "trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_Sequential(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "init ledger", "ledger tables")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_init_ledger.up.sql"), first.UpPath)

	second, err := CreateMigration(dir, "add anchor index", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: init ledger")
	assert.Contains(t, string(up), "-- ledger tables")

	down, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_b.up.sql", "000002_b.down.sql",
		"000001_a.up.sql", "000001_a.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a", "000002_b"}, names)

	missing, err := ListMigrations(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestRepositoryMigrationsArePaired(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "migrations")
	names, err := ListMigrations(dir)
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		_, err := os.Stat(filepath.Join(dir, name+".down.sql"))
		assert.NoError(t, err, "missing down migration for %s", name)
		_, ok := versionOf(name)
		assert.True(t, ok, "unversioned migration %s", name)
	}
}

func TestDatabaseURL(t *testing.T) {
	url := DatabaseURL(&config.DatabaseConfig{
		Host: "db", Port: 5432, User: "ledger", Password: "p@ss word", DBName: "ledger", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://ledger:p%40ss%20word@db:5432/ledger?sslmode=disable", url)
}
