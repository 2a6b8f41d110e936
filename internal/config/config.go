package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"couriertrack/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Courier  CourierConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LogConfig struct {
	Level string
}

type CourierConfig struct {
	TxTimeout        time.Duration
	DeliveredComment string
}

// KafkaConfig with no brokers disables status event publishing.
type KafkaConfig struct {
	Brokers     []string
	StatusTopic string
}

type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string
}

// Load reads configuration in order of increasing precedence: defaults,
// optional config file, .env, environment, command line flags.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	flags := pflag.NewFlagSet("couriertrack", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to a YAML config file")
	flags.IntP("port", "p", 0, "HTTP port to listen on")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if flags.Changed("port") {
		if err := v.BindPFlag("SERVER_PORT", flags.Lookup("port")); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-level") {
		if err := v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level")); err != nil {
			return nil, err
		}
	}

	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "courier")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "courier_management")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("COURIER_TX_TIMEOUT", "5s")
	v.SetDefault("COURIER_DELIVERED_COMMENT", domain.DeliveredCommentText)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_STATUS_TOPIC", "courier-status-changed")
	v.SetDefault("AUTH_ADMIN_USERNAME", "admin")
	v.SetDefault("AUTH_ADMIN_PASSWORD_HASH", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	durations := map[string]time.Duration{}
	for _, key := range []string{"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	txTimeout, err := time.ParseDuration(v.GetString("COURIER_TX_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing COURIER_TX_TIMEOUT: %w", err)
	}
	if txTimeout <= 0 {
		return nil, fmt.Errorf("COURIER_TX_TIMEOUT must be positive, got %s", txTimeout)
	}

	port := v.GetInt("SERVER_PORT")
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT: %d", port)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     durations["SERVER_READ_TIMEOUT"],
			WriteTimeout:    durations["SERVER_WRITE_TIMEOUT"],
			ShutdownTimeout: durations["SERVER_SHUTDOWN_TIMEOUT"],
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Courier: CourierConfig{
			TxTimeout:        txTimeout,
			DeliveredComment: v.GetString("COURIER_DELIVERED_COMMENT"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			StatusTopic: v.GetString("KAFKA_STATUS_TOPIC"),
		},
		Auth: AuthConfig{
			AdminUsername:     v.GetString("AUTH_ADMIN_USERNAME"),
			AdminPasswordHash: v.GetString("AUTH_ADMIN_PASSWORD_HASH"),
		},
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
