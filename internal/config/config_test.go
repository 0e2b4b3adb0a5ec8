package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "JWT_EXPIRY", "PREDICTION_API_URL", "PREDICTION_TIMEOUT", "REPORT_ACCESS_MODE", "PORT", "LOG_RETENTION_DAYS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.PredictionAPIURL)
	assert.Equal(t, 10*time.Second, cfg.PredictionTimeout)
	assert.Equal(t, "owner_relatives", cfg.ReportAccessMode)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 30, cfg.LogRetentionDays)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("PREDICTION_TIMEOUT", "3s")
	t.Setenv("JWT_EXPIRY", "not-a-duration")
	t.Setenv("LOG_RETENTION_DAYS", "7")

	cfg := Load()

	assert.False(t, cfg.UsesPostgres())
	assert.Equal(t, 3*time.Second, cfg.PredictionTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 7, cfg.LogRetentionDays)
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{DBDriver: DriverMemory}).Validate())
	assert.Error(t, (&Config{DBDriver: DriverPostgres, JWTSecret: "s"}).Validate())
	assert.Error(t, (&Config{DBDriver: "sqlite", JWTSecret: "s"}).Validate())
	assert.NoError(t, (&Config{DBDriver: DriverMemory, JWTSecret: "s"}).Validate())
	assert.NoError(t, (&Config{DBDriver: DriverPostgres, JWTSecret: "s", DBPassword: "p"}).Validate())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
