package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 7, cfg.Campaign.CooldownDays)
	assert.Equal(t, 20, cfg.Campaign.ScoreFloor)
	assert.Equal(t, 30, cfg.Campaign.MinBatch)
	assert.Equal(t, 40, cfg.Campaign.MaxBatch)
	assert.Equal(t, "09:00", cfg.Campaign.DailyTrigger)
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
listen_addr: ":9090"
campaign:
  cooldown_days: 10
  send_delay_max: 8s
store:
  driver: sqlite
  sqlite_path: /tmp/x.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CAMPAIGN_COOLDOWN_DAYS", "14")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 14, cfg.Campaign.CooldownDays)
	assert.Equal(t, 8*time.Second, cfg.Campaign.SendDelayMax)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 40, cfg.Campaign.MaxBatch)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Campaign, cfg.Campaign)
}

func TestValidateFailsFast(t *testing.T) {
	cases := map[string]func(*Config){
		"inverted batch bounds": func(c *Config) { c.Campaign.MinBatch = 50 },
		"bad trigger":           func(c *Config) { c.Campaign.DailyTrigger = "9am" },
		"inverted delays":       func(c *Config) { c.Campaign.SendDelayMin = 10 * time.Second },
		"postgres without url":  func(c *Config) { c.Store.Driver = "postgres" },
		"unknown sender":        func(c *Config) { c.Sender.Driver = "smtp" },
		"bad timezone":          func(c *Config) { c.Campaign.Timezone = "Mars/Olympus" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseTrigger(t *testing.T) {
	h, m, err := ParseTrigger("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)
	_, _, err = ParseTrigger("25:00")
	assert.Error(t, err)
}
