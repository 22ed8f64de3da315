package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Log    LogConfig
	Seed   SeedConfig
}

type ServerConfig struct {
	Address string
	Mode    string // gin mode: debug, release, test
}

type DBConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	User     string
	Password string
	Name     string
	Port     int
	DSN      string // sqlite file, or a full postgres DSN overriding the fields above
}

// RedisConfig enables the redis token store when Address is set
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type SeedConfig struct {
	Enabled bool
}

// Load reads config.yaml from the default locations
func Load() (*Config, error) {
	return LoadFrom("./pkg/config", ".")
}

// LoadFrom reads an optional config.yaml from the first of paths that has one,
// then applies .env and RECORDS_* environment variables on top
func LoadFrom(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("records")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.JWT.Secret == "" {
		return nil, errors.New("jwt.secret must be set")
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "academic_records")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("seed.enabled", false)
}
