package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-MentorBookingService/internal/timezone"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Booking     BookingConfig     `toml:"booking"`
	Migrations  MigrationsConfig  `toml:"migrations"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig правила бронирования, общие для всех менторов
type BookingConfig struct {
	DefaultTimezone        string `toml:"default_timezone"`
	DefaultDurationMinutes int    `toml:"default_duration_minutes"`
	AdvanceBookingDays     int    `toml:"advance_booking_days"` // 0 = без ограничения
	MinNoticeMinutes       int    `toml:"min_notice_minutes"`
	SerializableRetries    int    `toml:"serializable_retries"`
}

type MigrationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load читает конфигурацию из TOML файла и переопределяет значения
// переменными окружения (.env подхватывается, если есть)
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logs.Level = v
	}
	if v := os.Getenv("USER_SERVICE_URL"); v != "" {
		c.UserService.URL = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "mentor-booking-service"
	}

	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = 5
	}

	if c.Booking.DefaultTimezone == "" {
		c.Booking.DefaultTimezone = timezone.DefaultTimezone
	}
	if c.Booking.DefaultDurationMinutes == 0 {
		c.Booking.DefaultDurationMinutes = 60
	}
	if c.Booking.SerializableRetries == 0 {
		c.Booking.SerializableRetries = 3
	}
}

// Validate проверяет значения после применения умолчаний
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.UserService.URL == "" {
		return fmt.Errorf("%w: user_service.url is required", ErrInvalidConfig)
	}
	if !timezone.IsValid(c.Booking.DefaultTimezone) {
		return fmt.Errorf("%w: booking.default_timezone %q is not an IANA zone", ErrInvalidConfig, c.Booking.DefaultTimezone)
	}
	if c.Booking.DefaultDurationMinutes < 0 {
		return fmt.Errorf("%w: booking.default_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: booking.advance_booking_days must not be negative", ErrInvalidConfig)
	}
	if c.Booking.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.min_notice_minutes must not be negative", ErrInvalidConfig)
	}
	if c.Booking.SerializableRetries < 0 {
		return fmt.Errorf("%w: booking.serializable_retries must not be negative", ErrInvalidConfig)
	}
	return nil
}
