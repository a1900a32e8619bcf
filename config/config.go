package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	State   StateConfig   `mapstructure:"state"`
	DB      DBConfig      `mapstructure:"db"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Drive   DriveConfig   `mapstructure:"drive"`
	Export  ExportConfig  `mapstructure:"export"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Port comes from hosting platforms (PORT) and wins over Addr when set
	Port string `mapstructure:"port"`
}

// ListenAddr returns the address the HTTP server binds to
func (s ServerConfig) ListenAddr() string {
	if s.Port == "" {
		return s.Addr
	}
	// Render and friends hand out a bare port without the colon
	return "0.0.0.0:" + strings.TrimPrefix(s.Port, ":")
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// CatalogConfig selects where the item catalog is loaded from
type CatalogConfig struct {
	Source string `mapstructure:"source"` // file | postgres
	Path   string `mapstructure:"path"`
}

// StateConfig selects the key-value store used to remember view state
type StateConfig struct {
	Store   string        `mapstructure:"store"` // memory | postgres | redis
	Timeout time.Duration `mapstructure:"timeout"`
}

type DBConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type DriveConfig struct {
	Credentials     string `mapstructure:"credentials"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	FolderID        string `mapstructure:"folder_id"`
}

// Enabled reports whether Drive image sync is configured
func (d DriveConfig) Enabled() bool {
	return d.FolderID != "" && (d.Credentials != "" || d.CredentialsJSON != "")
}

type ExportConfig struct {
	ChromePath string        `mapstructure:"chrome_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxItems   int           `mapstructure:"max_items"`
	ThumbSize  int           `mapstructure:"thumb_size"`
	OutputDir  string        `mapstructure:"output_dir"`
	CacheDir   string        `mapstructure:"cache_dir"` // empty disables the thumbnail cache
}

// legacyEnv maps config keys to the unprefixed variables deployments already set
var legacyEnv = map[string]string{
	"server.port":            "PORT",
	"db.url":                 "DATABASE_URL",
	"db.host":                "DB_HOST",
	"db.port":                "DB_PORT",
	"db.user":                "DB_USER",
	"db.password":            "DB_PASSWORD",
	"db.name":                "DB_NAME",
	"db.sslmode":             "DB_SSLMODE",
	"drive.credentials":      "GOOGLE_APPLICATION_CREDENTIALS",
	"drive.credentials_json": "GOOGLE_APPLICATION_CREDENTIALS_JSON",
	"app.env":                "ENV",
}

// Load reads configuration from SKORPIK_* environment variables and, when
// path is non-empty, a YAML file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SKORPIK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.port", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "data/items.json")
	v.SetDefault("state.store", "memory")
	v.SetDefault("state.timeout", "2s")
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "skorpik:")
	v.SetDefault("drive.credentials", "")
	v.SetDefault("drive.credentials_json", "")
	v.SetDefault("drive.folder_id", "")
	v.SetDefault("export.chrome_path", "")
	v.SetDefault("export.timeout", "30s")
	v.SetDefault("export.max_items", 8)
	v.SetDefault("export.thumb_size", 60)
	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.cache_dir", ".cache/thumbs")

	for key, env := range legacyEnv {
		prefixed := "SKORPIK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return Config{}, errors.Wrapf(err, "bind env %s", env)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}
