package config

import "time"

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	Environment    string        `yaml:"environment"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// IsProduction reports whether cookies must carry the Secure flag and
// secrets must stay out of the logs.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	Migrate         bool          `yaml:"migrate"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	ListTTL  time.Duration `yaml:"list_ttl"`
}

type S3Config struct {
	Enabled  bool   `yaml:"enabled"`
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
	// Static credentials for a local S3-compatible endpoint such as MinIO.
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type SessionConfig struct {
	SecretKey  string        `yaml:"secret_key"`
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
}

type UploadConfig struct {
	MaxSizeBytes  int64    `yaml:"max_size_bytes"`
	AllowedTypes  []string `yaml:"allowed_types"`
	VerifyContent bool     `yaml:"verify_content"`
}

type PasswordResetConfig struct {
	TTL time.Duration `yaml:"ttl"`
}
