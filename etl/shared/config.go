package shared

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

//Config represents service configuration, built once and never mutated afterwards
type Config struct {
	Debug bool `yaml:"debug"`

	SourceDriver     string `yaml:"sourceDriver"`
	SourceDescriptor string `yaml:"sourceDescriptor"`
	SourceTable      string `yaml:"sourceTable"`
	SourceSchema     string `yaml:"sourceSchema"`

	TargetDriver     string `yaml:"targetDriver"`
	TargetDescriptor string `yaml:"targetDescriptor"`
	TargetTable      string `yaml:"targetTable"`
	TargetSchema     string `yaml:"targetSchema"`

	Mode           string `yaml:"mode"`
	BatchSize      int    `yaml:"batchSize"`
	Workers        int    `yaml:"workers"`
	Splits         int    `yaml:"splits"`
	InternalSchema string `yaml:"internalSchema"`

	//ScheduleURL location with schedulable transfer request documents
	ScheduleURL          string `yaml:"scheduleURL"`
	MaxHistory           int    `yaml:"maxHistory"`
	ScheduleCheckFreqMs  int    `yaml:"scheduleCheckFreqMs"`
	ConnectionPoolSize   int    `yaml:"connectionPoolSize"`
	ConnectionMaxPoolMax int    `yaml:"connectionPoolMax"`
}

//Init fills defaults
func (c *Config) Init() {
	if c.Mode == "" {
		c.Mode = ModeDirect
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Splits == 0 {
		c.Splits = DefaultSplits
	}
	if c.InternalSchema == "" {
		c.InternalSchema = DefaultInternalSchema
	}
	if c.MaxHistory == 0 {
		c.MaxHistory = 10
	}
	if c.ScheduleCheckFreqMs == 0 {
		c.ScheduleCheckFreqMs = 1000
	}
	if c.ConnectionPoolSize == 0 {
		c.ConnectionPoolSize = 5
	}
	if c.ConnectionMaxPoolMax == 0 {
		c.ConnectionMaxPoolMax = 10
	}
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envIntOr(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

//NewConfigFromEnv builds config from environment variables, loading .env first when present
func NewConfigFromEnv() *Config {
	_ = godotenv.Load()
	result := &Config{
		Debug:            os.Getenv("DEBUG") == "true",
		SourceDriver:     envOr("SOURCE_DRIVER", "postgres"),
		SourceDescriptor: os.Getenv("SOURCE_DSN"),
		SourceTable:      os.Getenv("SOURCE_TABLE"),
		SourceSchema:     envOr("SOURCE_SCHEMA", "public"),
		TargetDriver:     envOr("TARGET_DRIVER", "postgres"),
		TargetDescriptor: os.Getenv("TARGET_DSN"),
		TargetTable:      os.Getenv("TARGET_TABLE"),
		TargetSchema:     envOr("TARGET_SCHEMA", "etl"),
		Mode:             os.Getenv("TRANSFER_MODE"),
		BatchSize:        envIntOr("BATCH_SIZE", 0),
		Workers:          envIntOr("MAX_WORKERS", 0),
		Splits:           envIntOr("NUMBER_OF_SPLITS", 0),
		InternalSchema:   os.Getenv("ETL_INTERNAL_SCHEMA"),
		ScheduleURL:      os.Getenv("SCHEDULE_URL"),
	}
	result.Init()
	return result
}

//NewConfigFromURL loads config document from supplied URL
func NewConfigFromURL(URL string) (*Config, error) {
	service := afs.New()
	data, err := service.DownloadWithURL(context.Background(), URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download config: %v", URL)
	}
	result := &Config{}
	if err = yaml.Unmarshal(data, result); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config: %v", URL)
	}
	result.Init()
	return result, nil
}
