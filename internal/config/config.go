package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath      = "config/config.yaml"
	defaultAddress         = ":4001"
	defaultAccessTTL       = 20 * time.Hour
	defaultRefreshTTL      = 30 * 24 * time.Hour
	defaultTopCacheTTL     = 5 * time.Minute
	defaultTopRefreshEvery = 5 * time.Minute
	defaultS3Region        = "us-east-1"
	defaultS3Folder        = "portfolio"
)

type Config struct {
	Server struct {
		Address        string   `yaml:"address"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		SecureCookies  bool     `yaml:"secure_cookies"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	JWT struct {
		Secret     string        `yaml:"secret"`
		AccessTTL  time.Duration `yaml:"access_ttl"`
		RefreshTTL time.Duration `yaml:"refresh_ttl"`
	} `yaml:"jwt"`
	S3 struct {
		Endpoint  string `yaml:"endpoint"`
		Region    string `yaml:"region"`
		Bucket    string `yaml:"bucket"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		PublicURL string `yaml:"public_url"`
		Folder    string `yaml:"folder"`
	} `yaml:"s3"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
	Top struct {
		CacheTTL     time.Duration `yaml:"cache_ttl"`
		RefreshEvery time.Duration `yaml:"refresh_every"`
	} `yaml:"top"`
}

// Path returns CONFIG_PATH or the default location.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultConfigPath
}

// LoadConfig reads the YAML file at path, applies defaults and then the
// environment overrides. A missing file is not an error; the defaults and
// environment still apply.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	applyDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = defaultAddress
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = defaultAccessTTL
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = defaultRefreshTTL
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = defaultS3Region
	}
	if cfg.S3.Folder == "" {
		cfg.S3.Folder = defaultS3Folder
	}
	if cfg.Top.CacheTTL == 0 {
		cfg.Top.CacheTTL = defaultTopCacheTTL
	}
	if cfg.Top.RefreshEvery == 0 {
		cfg.Top.RefreshEvery = defaultTopRefreshEvery
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Address = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse COOKIE_SECURE: %w", err)
		}
		cfg.Server.SecureCookies = b
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v, err := readIntEnv("REDIS_DB"); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	} else if v != nil {
		cfg.Redis.DB = *v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v, err := readSecondsEnv("JWT_ACCESS_TTL_SECONDS"); err != nil {
		return fmt.Errorf("parse JWT_ACCESS_TTL_SECONDS: %w", err)
	} else if v != nil {
		cfg.JWT.AccessTTL = *v
	}
	if v, err := readSecondsEnv("JWT_REFRESH_TTL_SECONDS"); err != nil {
		return fmt.Errorf("parse JWT_REFRESH_TTL_SECONDS: %w", err)
	} else if v != nil {
		cfg.JWT.RefreshTTL = *v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}
	if v := os.Getenv("FIREBASE_CREDENTIALS_FILE"); v != "" {
		cfg.Firebase.CredentialsFile = v
	}
	if v, err := readSecondsEnv("TOP_CACHE_TTL_SECONDS"); err != nil {
		return fmt.Errorf("parse TOP_CACHE_TTL_SECONDS: %w", err)
	} else if v != nil {
		cfg.Top.CacheTTL = *v
	}
	if v, err := readSecondsEnv("TOP_REFRESH_SECONDS"); err != nil {
		return fmt.Errorf("parse TOP_REFRESH_SECONDS: %w", err)
	} else if v != nil {
		cfg.Top.RefreshEvery = *v
	}
	return nil
}

func readIntEnv(key string) (*int, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func readSecondsEnv(key string) (*time.Duration, error) {
	n, err := readIntEnv(key)
	if err != nil || n == nil {
		return nil, err
	}
	if *n <= 0 {
		return nil, fmt.Errorf("must be positive, got %d", *n)
	}
	d := time.Duration(*n) * time.Second
	return &d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
