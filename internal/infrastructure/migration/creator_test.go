package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erp/reseller/migrations"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add commission fields", "add_commission_fields"},
		{"Add-Commission-Fields", "add_commission_fields"},
		{"ADD_COMMISSION_FIELDS", "add_commission_fields"},
		{"add__party__flags", "add_party_flags"},
		{"Rates 2026", "rates_2026"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "init", "Base tables")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_init.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_init.down.sql"), first.DownPath)

	second, err := CreateMigration(dir, "Commission Fields", "Agent and principal columns")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)
	assert.True(t, strings.HasSuffix(second.UpPath, "000002_commission_fields.up.sql"))

	upContent, err := os.ReadFile(second.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "commission_fields")
	assert.Contains(t, string(upContent), "Agent and principal columns")

	downContent, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		list, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("orders by version and ignores stray files", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000002_commission_fields.up.sql",
			"000002_commission_fields.down.sql",
			"000001_init.up.sql",
			"README.md",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

		list, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []MigrationInfo{
			{Version: 1, Name: "init", HasDown: false},
			{Version: 2, Name: "commission_fields", HasDown: true},
		}, list)
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	versions, err := sourceVersions(src)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, versions)

	for _, v := range versions {
		up, _, err := src.ReadUp(v)
		require.NoError(t, err)
		_ = up.Close()

		down, _, err := src.ReadDown(v)
		require.NoError(t, err, "version %d has no down migration", v)
		_ = down.Close()
	}
}

func TestStatus_UpToDate(t *testing.T) {
	assert.True(t, Status{Version: 2, Latest: 2}.UpToDate())
	assert.False(t, Status{Version: 1, Latest: 2, Pending: []uint{2}}.UpToDate())
	assert.False(t, Status{Version: 2, Latest: 2, Dirty: true}.UpToDate())
}
