// Package config resolves server settings with precedence
// defaults < config file < .env < THIRDPLACE_* environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	GrpcPort string
	HttpPort string
	// Compression names the codec for new blog content.
	Compression string
	Upload      UploadConfig
	MaxWords    int
	Jobs        JobsConfig
	AuthToken   string
}

type DBConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

type UploadConfig struct {
	Dir     string
	BaseURL string
}

type JobsConfig struct {
	RelationshipSync string
	ViewFlush        string
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns every key with its default and meaning.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "db.driver", Default: "sqlite", Comment: "sqlite or postgres"},
		{Key: "db.dsn", Default: filepath.Join(".thirdplace", "thirdplace.db"), Comment: "sqlite file or postgres dsn"},
		{Key: "redis.addr", Default: "", Comment: "redis address; empty keeps caches in process"},
		{Key: "redis.password", Default: "", Comment: "redis password"},
		{Key: "redis.db", Default: 0, Comment: "redis database index"},
		{Key: "kafka.brokers", Default: "", Comment: "kafka bootstrap servers; empty uses an in-process queue"},
		{Key: "kafka.topic", Default: "venue.updated", Comment: "topic for venue update events"},
		{Key: "kafka.group", Default: "thirdplace", Comment: "consumer group for venue sync"},
		{Key: "grpc.port", Default: "4020", Comment: "gRPC listen port"},
		{Key: "http.port", Default: "4021", Comment: "REST listen port"},
		{Key: "content.compression", Default: "gzip", Comment: "none, gzip, brotli or lz4"},
		{Key: "upload.dir", Default: filepath.Join(".thirdplace", "uploads"), Comment: "directory for uploaded images"},
		{Key: "upload.base_url", Default: "http://localhost:4021/uploads", Comment: "public url prefix of upload.dir"},
		{Key: "editor.max_words", Default: 5000, Comment: "word count warning threshold"},
		{Key: "jobs.relationship_sync", Default: "@every 5m", Comment: "cron schedule of the venue cache sweep"},
		{Key: "jobs.view_flush", Default: "@every 1m", Comment: "cron schedule of the view count flush"},
		{Key: "auth.token", Default: "", Comment: "bearer token required by the api; empty disables auth"},
	}
}

// LoadConfig reads .env, an optional config file and the environment.
func LoadConfig() *Config {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("failed to load .env: %v", err)
	}

	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}

	v.SetConfigName("thirdplace")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "thirdplace"))
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.Warnf("failed to read config file: %v", err)
		}
	}

	v.SetEnvPrefix("thirdplace")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		DB: DBConfig{
			Driver: v.GetString("db.driver"),
			DSN:    v.GetString("db.dsn"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Kafka: KafkaConfig{
			Brokers: v.GetString("kafka.brokers"),
			Topic:   v.GetString("kafka.topic"),
			GroupID: v.GetString("kafka.group"),
		},
		GrpcPort:    v.GetString("grpc.port"),
		HttpPort:    v.GetString("http.port"),
		Compression: v.GetString("content.compression"),
		Upload: UploadConfig{
			Dir:     v.GetString("upload.dir"),
			BaseURL: v.GetString("upload.base_url"),
		},
		MaxWords: v.GetInt("editor.max_words"),
		Jobs: JobsConfig{
			RelationshipSync: v.GetString("jobs.relationship_sync"),
			ViewFlush:        v.GetString("jobs.view_flush"),
		},
		AuthToken: v.GetString("auth.token"),
	}
}

// OpenDb opens the configured database.
func OpenDb(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DB.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DB.DSN), gormConfig)
	case "sqlite", "":
		if dir := filepath.Dir(cfg.DB.DSN); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, err
			}
		}
		return gorm.Open(sqlite.Open(cfg.DB.DSN), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
}

// GetDb is OpenDb for commands that cannot continue without a database.
func GetDb(cfg *Config) *gorm.DB {
	db, err := OpenDb(cfg)
	if err != nil {
		logrus.Fatalf("failed to open %s database: %v", cfg.DB.Driver, err)
	}
	return db
}
