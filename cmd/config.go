package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
)

const (
	defaultHTTPPort         = "8082"
	defaultDBHost           = "localhost"
	defaultDBPort           = "5432"
	defaultDBSslMode        = "disable"
	defaultSweepSchedule    = "*/30 * * * * *"
	defaultSweepConcurrency = 4
	defaultAMQPExchange     = "dispatch.events"
)

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	DBAutoMigrate    bool
	SweepSchedule    string
	SweepConcurrency int
	AMQPURL          string
	AMQPExchange     string
}

// LoadConfig reads configuration in order: .env (if present), environment, then flags from args.
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn(".env not loaded", "error", err)
	}

	cfg := Config{
		HTTPPort:      envOr("HTTP_PORT", defaultHTTPPort),
		DBHost:        envOr("DB_HOST", defaultDBHost),
		DBPort:        envOr("DB_PORT", defaultDBPort),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     envOr("DB_SSLMODE", defaultDBSslMode),
		SweepSchedule: envOr("SWEEP_SCHEDULE", defaultSweepSchedule),
		AMQPURL:       os.Getenv("AMQP_URL"),
		AMQPExchange:  envOr("AMQP_EXCHANGE", defaultAMQPExchange),
	}

	var err error
	if cfg.SweepConcurrency, err = envInt("SWEEP_CONCURRENCY", defaultSweepConcurrency); err != nil {
		return Config{}, err
	}
	if cfg.DBAutoMigrate, err = envBool("DB_AUTO_MIGRATE", true); err != nil {
		return Config{}, err
	}

	flags := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	flags.StringVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "HTTP port to listen on")
	flags.StringVar(&cfg.SweepSchedule, "sweep-schedule", cfg.SweepSchedule, "cron schedule (with seconds) of the pending-order sweep")
	flags.IntVar(&cfg.SweepConcurrency, "sweep-concurrency", cfg.SweepConcurrency, "parallel assignment attempts per sweep")
	flags.BoolVar(&cfg.DBAutoMigrate, "db-auto-migrate", cfg.DBAutoMigrate, "create or update tables on startup")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid HTTP port: %q", c.HTTPPort)
	}
	if c.SweepConcurrency < 1 {
		return fmt.Errorf("invalid sweep concurrency: %d", c.SweepConcurrency)
	}
	if _, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(c.SweepSchedule); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", c.SweepSchedule, err)
	}
	if c.AMQPURL != "" && c.AMQPExchange == "" {
		return errors.New("AMQP_EXCHANGE is required when AMQP_URL is set")
	}
	return nil
}

// DSN returns the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
