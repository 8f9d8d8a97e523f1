package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

const (
	DefaultConfigPath = "config/config.yaml"
	envPrefixConfig   = "SHAREIT_CONFIG"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql | sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Path     string `yaml:"path"` // sqlite のファイルパス
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	JWTSecret  string `yaml:"jwt_secret"`
	UserHeader string `yaml:"user_header"`
}

type Config struct {
	Version     string         `yaml:"version"`
	Mode        string         `yaml:"mode"`
	Server      ServerConfig   `yaml:"server"`
	DB          DatabaseConfig `yaml:"database"`
	Certificate Certs          `yaml:"certificate"`
	Auth        AuthConfig     `yaml:"auth"`
}

// 環境変数による上書き。未設定の項目は YAML の値を残す
type envOverrides struct {
	Mode       string `envconfig:"SHAREIT_MODE"`
	Addr       string `envconfig:"SHAREIT_ADDR"`
	LogLevel   string `envconfig:"SHAREIT_LOG_LEVEL"`
	DBDriver   string `envconfig:"SHAREIT_DB_DRIVER"`
	DBHost     string `envconfig:"SHAREIT_DB_HOST"`
	DBPort     int    `envconfig:"SHAREIT_DB_PORT"`
	DBUser     string `envconfig:"SHAREIT_DB_USER"`
	DBPassword string `envconfig:"SHAREIT_DB_PASSWORD"`
	DBName     string `envconfig:"SHAREIT_DB_NAME"`
	DBPath     string `envconfig:"SHAREIT_DB_PATH"`
	JWTSecret  string `envconfig:"SHAREIT_JWT_SECRET"`
}

// ConfigPath は SHAREIT_CONFIG があればそれを、なければ既定パスを返す
func ConfigPath() string {
	if p := os.Getenv(envPrefixConfig); p != "" {
		return p
	}
	return DefaultConfigPath
}

func LoadConfig(path string) (*Config, error) {
	// .env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.applyEnv(env)
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv(e envOverrides) {
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setStr(&c.Mode, e.Mode)
	setStr(&c.Server.Addr, e.Addr)
	setStr(&c.Server.LogLevel, e.LogLevel)
	setStr(&c.DB.Driver, e.DBDriver)
	setStr(&c.DB.Host, e.DBHost)
	setStr(&c.DB.Username, e.DBUser)
	setStr(&c.DB.Password, e.DBPassword)
	setStr(&c.DB.DBName, e.DBName)
	setStr(&c.DB.Path, e.DBPath)
	setStr(&c.Auth.JWTSecret, e.JWTSecret)
	if e.DBPort != 0 {
		c.DB.Port = e.DBPort
	}
}

func (c *Config) setDefaults() {
	if c.Mode == "" {
		c.Mode = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.DB.Driver == "" {
		c.DB.Driver = string(MySQL)
	}
	if c.Auth.UserHeader == "" {
		c.Auth.UserHeader = "X-Sharer-User-Id"
	}
}

func Connect(c DatabaseConfig) (*sqlx.DB, error) {
	d := Dialect(strings.ToLower(c.Driver))
	var dsn string
	switch d {
	case MySQL:
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&tls=false&timeout=3s&readTimeout=5s&writeTimeout=5s&loc=UTC",
			c.Username, c.Password, c.Host, c.Port, c.DBName)
	case SQLite:
		if err := ensureDir(c.Path); err != nil {
			return nil, err
		}
		dsn = SQLiteDSN(c.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", c.Driver)
	}

	db, err := sqlx.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	configurePool(db, d)
	return db, nil
}

// ensureDir: ファイル DB の置き場所を作る。インメモリなら何もしない
func ensureDir(path string) error {
	if path == "" || strings.Contains(path, "mode=memory") || strings.HasPrefix(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(strings.SplitN(path, "?", 2)[0])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// SQLiteDSN: 書き込みトランザクションは BEGIN IMMEDIATE で直列化する
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"
}

func configurePool(db *sqlx.DB, d Dialect) {
	if d == SQLite {
		// 単一ライタ。:memory: の場合は接続が切れると DB ごと消える
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	// 接続プール（合算がMySQLの max_connections を超えないよう配分する）
	db.SetMaxOpenConns(80)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
}
