package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":8181"
storage:
  driver: postgres
booking:
  strict_return_date: true
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "MAD", cfg.Booking.DefaultCurrency)
	assert.Equal(t, 48*time.Hour, cfg.Booking.UrgentWindow())
	assert.True(t, cfg.Booking.StrictReturnDate)
	assert.Equal(t, "02/01/2006", cfg.Report.DateLayout)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Drafts.APIKeyEnv)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o600))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestReportConfig_LocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, ReportConfig{Timezone: "Nowhere/Unknown"}.Location())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: 5432, User: "agent", Password: "pw", Name: "travelpro", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=agent password=pw dbname=travelpro sslmode=disable", d.DSN())
}
