package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when present.
const DefaultFile = "config.yaml"

type Config struct {
	Env            string `yaml:"env" env:"APP_ENV"`
	ListenAddr     string `yaml:"listen_addr" env:"LISTEN_ADDR"`
	MaxConnections int    `yaml:"max_connections" env:"MAX_CONNECTIONS"`

	Log        LogConfig        `yaml:"log" envPrefix:"LOG_"`
	Store      StoreConfig      `yaml:"store" envPrefix:"STORE_"`
	Population PopulationConfig `yaml:"population" envPrefix:"POPULATION_"`
	Sender     SenderConfig     `yaml:"sender" envPrefix:"SENDER_"`
	Kafka      KafkaConfig      `yaml:"kafka" envPrefix:"KAFKA_"`
	Campaign   CampaignConfig   `yaml:"campaign" envPrefix:"CAMPAIGN_"`
}

type LogConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

type StoreConfig struct {
	// Driver is sqlite or postgres.
	Driver      string `yaml:"driver" env:"DRIVER"`
	SQLitePath  string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
}

type PopulationConfig struct {
	MySQLDSN string `yaml:"mysql_dsn" env:"MYSQL_DSN"`
	Table    string `yaml:"table" env:"TABLE"`
	Retries  uint64 `yaml:"retries" env:"RETRIES"`
	// RetryDelay is the constant backoff between fetch attempts.
	RetryDelay time.Duration `yaml:"retry_delay" env:"RETRY_DELAY"`
}

type SenderConfig struct {
	// Driver is waha or log.
	Driver  string        `yaml:"driver" env:"DRIVER"`
	BaseURL string        `yaml:"waha_url" env:"WAHA_URL"`
	APIKey  string        `yaml:"api_key" env:"API_KEY"`
	Session string        `yaml:"session" env:"SESSION"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

type KafkaConfig struct {
	// Brokers empty disables event publishing.
	Brokers []string `yaml:"brokers" env:"BROKERS" envSeparator:","`
	Topic   string   `yaml:"topic" env:"TOPIC"`
}

type CampaignConfig struct {
	CooldownDays          int           `yaml:"cooldown_days" env:"COOLDOWN_DAYS"`
	ScoreFloor            int           `yaml:"score_floor" env:"SCORE_FLOOR"`
	TightScoreFloor       int           `yaml:"tight_score_floor" env:"TIGHT_SCORE_FLOOR"`
	MinBatch              int           `yaml:"min_batch" env:"MIN_BATCH"`
	MaxBatch              int           `yaml:"max_batch" env:"MAX_BATCH"`
	DailyTrigger          string        `yaml:"daily_trigger" env:"DAILY_TRIGGER"`
	Timezone              string        `yaml:"timezone" env:"TIMEZONE"`
	SendDelayMin          time.Duration `yaml:"send_delay_min" env:"SEND_DELAY_MIN"`
	SendDelayMax          time.Duration `yaml:"send_delay_max" env:"SEND_DELAY_MAX"`
	Unattended            bool          `yaml:"unattended" env:"UNATTENDED"`
	ReinforcementAfter    time.Duration `yaml:"reinforcement_after" env:"REINFORCEMENT_AFTER"`
	UrgencyAfter          time.Duration `yaml:"urgency_after" env:"URGENCY_AFTER"`
	FollowupPoll          time.Duration `yaml:"followup_poll" env:"FOLLOWUP_POLL"`
	FollowupBatch         int           `yaml:"followup_batch" env:"FOLLOWUP_BATCH"`
	StageRetryDelay       time.Duration `yaml:"stage_retry_delay" env:"STAGE_RETRY_DELAY"`
	MaxStageAttempts      int           `yaml:"max_stage_attempts" env:"MAX_STAGE_ATTEMPTS"`
	ExperimentID          string        `yaml:"experiment_id" env:"EXPERIMENT_ID"`
	PerformanceWindowDays int           `yaml:"performance_window_days" env:"PERFORMANCE_WINDOW_DAYS"`
	// RandomSeed of zero draws a fresh seed at startup.
	RandomSeed int64 `yaml:"random_seed" env:"RANDOM_SEED"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Env:            "development",
		ListenAddr:     ":8080",
		MaxConnections: 256,
		Log:            LogConfig{Level: "info"},
		Store: StoreConfig{
			Driver:     "sqlite",
			SQLitePath: "data/reactivation.db",
		},
		Population: PopulationConfig{
			Table:      "inativos",
			Retries:    3,
			RetryDelay: 2 * time.Second,
		},
		Sender: SenderConfig{
			Driver:  "log",
			BaseURL: "http://localhost:3000",
			Session: "default",
			Timeout: 15 * time.Second,
		},
		Kafka: KafkaConfig{Topic: "reactivation-events"},
		Campaign: CampaignConfig{
			CooldownDays:          7,
			ScoreFloor:            20,
			TightScoreFloor:       30,
			MinBatch:              30,
			MaxBatch:              40,
			DailyTrigger:          "09:00",
			Timezone:              "America/Cuiaba",
			SendDelayMin:          2 * time.Second,
			SendDelayMax:          5 * time.Second,
			ReinforcementAfter:    48 * time.Hour,
			UrgencyAfter:          72 * time.Hour,
			FollowupPoll:          time.Minute,
			FollowupBatch:         50,
			StageRetryDelay:       time.Hour,
			MaxStageAttempts:      3,
			PerformanceWindowDays: 7,
		},
	}
}

// Load layers defaults, the optional YAML file and the environment, then
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	cc := c.Campaign
	if cc.MinBatch < 0 || cc.MaxBatch < 0 {
		errs = append(errs, errors.New("campaign batch bounds must not be negative"))
	}
	if cc.MinBatch > cc.MaxBatch {
		errs = append(errs, fmt.Errorf("campaign min_batch %d exceeds max_batch %d", cc.MinBatch, cc.MaxBatch))
	}
	if cc.CooldownDays < 0 {
		errs = append(errs, errors.New("campaign cooldown_days must not be negative"))
	}
	if cc.ScoreFloor < 0 || cc.ScoreFloor > 100 || cc.TightScoreFloor < 0 || cc.TightScoreFloor > 100 {
		errs = append(errs, errors.New("campaign score floors must be within 0..100"))
	}
	if cc.SendDelayMin < 0 || cc.SendDelayMax < cc.SendDelayMin {
		errs = append(errs, fmt.Errorf("campaign send delay bounds %s..%s are invalid", cc.SendDelayMin, cc.SendDelayMax))
	}
	if _, _, err := ParseTrigger(cc.DailyTrigger); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.LoadLocation(cc.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("campaign timezone: %w", err))
	}
	if cc.ReinforcementAfter <= 0 || cc.UrgencyAfter <= 0 {
		errs = append(errs, errors.New("campaign follow-up offsets must be positive"))
	}
	if cc.FollowupPoll <= 0 {
		errs = append(errs, errors.New("campaign followup_poll must be positive"))
	}
	if cc.MaxStageAttempts < 1 {
		errs = append(errs, errors.New("campaign max_stage_attempts must be at least 1"))
	}
	switch c.Store.Driver {
	case "sqlite":
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("store sqlite_path is required"))
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("STORE_DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	switch c.Sender.Driver {
	case "log":
	case "waha":
		if c.Sender.BaseURL == "" {
			errs = append(errs, errors.New("sender waha_url is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown sender driver %q", c.Sender.Driver))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka topic is required when brokers are set"))
	}
	return errors.Join(errs...)
}

// ParseTrigger parses an HH:MM daily trigger.
func ParseTrigger(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("daily trigger %q must be HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

// Location resolves the campaign timezone; Validate has already checked it.
func (c CampaignConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
