package database

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookingHub/internal/config"
)

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, URL: "file:database_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db, &widget{}))
	require.True(t, db.Migrator().HasTable(&widget{}))
	require.NoError(t, db.Create(&widget{Name: "first"}).Error)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql", URL: "x"})
	require.Error(t, err)
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	db, err := open(
		config.DatabaseConfig{Driver: config.DriverSQLite, URL: "file:database_logger_test?mode=memory&cache=shared"},
		slog.New(slog.NewTextHandler(&buf, nil)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db, &widget{}))
	buf.Reset()

	var missing widget
	err = db.Where("name = ?", "absent").First(&missing).Error
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Empty(t, buf.String())

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), "component=gorm")
	assert.Contains(t, buf.String(), "no_such_table")
}
