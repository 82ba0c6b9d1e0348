package database

import (
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/config"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name:     "postgres from parts",
			cfg:      DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Name: "foodgram", SSLMode: "disable"},
			expected: "host=db user=u password=p dbname=foodgram port=5432 sslmode=disable",
		},
		{
			name:     "postgres url wins",
			cfg:      DatabaseConfig{Driver: "postgresql", URL: "postgres://u:p@db:5432/foodgram", Host: "ignored"},
			expected: "postgres://u:p@db:5432/foodgram",
		},
		{
			name:     "sqlite gets pragmas",
			cfg:      DatabaseConfig{Driver: "sqlite", Path: "foodgram.sqlite"},
			expected: "foodgram.sqlite?_foreign_keys=on&_busy_timeout=5000",
		},
		{
			name:     "sqlite keeps explicit params",
			cfg:      DatabaseConfig{Driver: "", Path: "file::memory:?cache=shared"},
			expected: "file::memory:?cache=shared",
		},
		{
			name:     "unknown driver",
			cfg:      DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DSN())
		})
	}
}

func TestStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "hunter2"}
	assert.NotContains(t, cfg.String(), "hunter2")
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(&config.Config{DBDriver: "postgres", DBHost: "db", DatabaseURL: "postgres://x"})
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, "postgres://x", cfg.URL)
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	_, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := Open(DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasTable("recipe_tags"))

	user := &models.User{Email: "cook@example.com", Username: "cook", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	// Subscribing to oneself is rejected by the schema as well
	err = db.Create(&models.Subscription{UserID: user.ID, AuthorID: user.ID}).Error
	assert.Error(t, err)

	// Relation rows must point at an existing user
	err = db.Create(&models.Subscription{UserID: 9999, AuthorID: user.ID}).Error
	assert.Error(t, err)
}

func TestMigrateBackfillsIngredientSearchNames(t *testing.T) {
	db, err := Open(DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Exec("INSERT INTO ingredients (name, measurement_unit) VALUES (?, ?)", "Перец", "г").Error)
	require.NoError(t, Migrate(db))

	var ingredient models.Ingredient
	require.NoError(t, db.Where("name = ?", "Перец").First(&ingredient).Error)
	assert.Equal(t, "перец", ingredient.NameLower)
}
