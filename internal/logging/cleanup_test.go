package logging

import (
	"os"
	"testing"
	"time"

	"github.com/diagnoai/diagno-backend/internal/database"
	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeDeletesOnlyOlderLogs(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := database.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Exec("TRUNCATE system_logs").Error)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	now := time.Now().UTC()
	require.NoError(t, NewGormLogWriter(db).WriteLogs([]models.SystemLog{
		{Timestamp: now.AddDate(0, 0, -40), Level: "ERROR", Message: "old"},
		{Timestamp: now.Add(-time.Hour), Level: "ERROR", Message: "recent"},
	}))

	deleted, err := Purge(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var left []models.SystemLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "recent", left[0].Message)
}
