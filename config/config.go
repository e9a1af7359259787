package config

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Storefront/models"
)

const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	TrustedProxies []string `yaml:"trustedProxies"`
	SecureCookies  bool     `yaml:"secureCookies"`
}

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type SessionConfig struct {
	// redis 或 memory
	Driver     string        `yaml:"driver"`
	CookieName string        `yaml:"cookieName"`
	TTL        time.Duration `yaml:"ttl"`
}

type JWTConfig struct {
	PrivateKeyPath string        `yaml:"privateKeyPath"`
	PublicKeyPath  string        `yaml:"publicKeyPath"`
	TTL            time.Duration `yaml:"ttl"`
}

type CatalogConfig struct {
	PageSize     int           `yaml:"pageSize"`
	MenuCacheTTL time.Duration `yaml:"menuCacheTTL"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	JWT      JWTConfig      `yaml:"jwt"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Log      LogConfig      `yaml:"log"`
}

// Default 未設定的欄位使用的預設值
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":3000",
		},
		Database: DatabaseConfig{
			Host: "127.0.0.1",
			Port: "3306",
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Session: SessionConfig{
			Driver:     "redis",
			CookieName: "storefront_session",
			TTL:        2 * time.Hour,
		},
		JWT: JWTConfig{
			PrivateKeyPath: "jwt/private_key.pem",
			PublicKeyPath:  "jwt/public_key.pem",
			TTL:            24 * time.Hour,
		},
		Catalog: CatalogConfig{
			PageSize:     6,
			MenuCacheTTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func LoadConfig(filename string) (Config, error) {
	config := Default()
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("decode %s: %w", filename, err)
	}

	if config.Catalog.PageSize <= 0 {
		config.Catalog.PageSize = Default().Catalog.PageSize
	}

	return config, nil
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

func SetupMySQLConnection(config Config, log *logrus.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info
	}

	db, err := gorm.Open(mysql.Open(config.Database.DSN()), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      level,
		}),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.Category{},
		&models.Product{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func SetupRedisConnection(config Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.Database,
	})
}
