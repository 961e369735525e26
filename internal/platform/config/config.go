package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultMaxOpenConns    = 10
	defaultConnectTimeout  = 10 * time.Second
	defaultTimeZone        = "UTC"
	defaultClientEncoding  = "UTF8"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig は HTTP サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr         string        `yaml:"listen_addr"`
	Mode               string        `yaml:"mode"`
	ReadTimeout        time.Duration `yaml:"-"`
	WriteTimeout       time.Duration `yaml:"-"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ReadTimeoutRaw     string        `yaml:"read_timeout"`
	WriteTimeoutRaw    string        `yaml:"write_timeout"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	TimeZone           string        `yaml:"timezone"`
	ClientEncoding     string        `yaml:"client_encoding"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnectTimeout     time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
	ConnectTimeoutRaw  string        `yaml:"connect_timeout"`
}

// AuthConfig は認証トークンとパスワードハッシュに関する設定です。
type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	BcryptCost  int           `yaml:"bcrypt_cost"`
	TokenTTL    time.Duration `yaml:"-"`
	TokenTTLRaw string        `yaml:"token_ttl"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
// カレントディレクトリに .env があれば先に読み込み、環境変数で秘密情報を上書きします。
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv は環境変数による上書きを適用します。
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("DB_HOST"); ok && v != "" {
		c.Database.Host = v
	}
	if v, ok := lookup("DB_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	if v, ok := lookup("DB_USER"); ok && v != "" {
		c.Database.User = v
	}
	if v, ok := lookup("DB_PASSWORD"); ok && v != "" {
		c.Database.Password = v
	}
	if v, ok := lookup("DB_NAME"); ok && v != "" {
		c.Database.Name = v
	}
	if v, ok := lookup("JWT_SECRET"); ok && v != "" {
		c.Auth.JWTSecret = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LISTEN_ADDR"); ok && v != "" {
		c.Server.ListenAddr = v
	}
	return nil
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Auth.validateAndNormalize(); err != nil {
		return err
	}

	c.Log.normalize()
	return nil
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	readTimeout, err := parseDurationAllowEmpty(s.ReadTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.read_timeout: %w", err)
	}
	s.ReadTimeout = readTimeout

	writeTimeout, err := parseDurationAllowEmpty(s.WriteTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.write_timeout: %w", err)
	}
	s.WriteTimeout = writeTimeout

	shutdownTimeout, err := parseDurationAllowEmpty(s.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if shutdownTimeout == 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	s.ShutdownTimeout = shutdownTimeout

	switch s.Mode {
	case "":
		s.Mode = "release"
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode must be one of debug, release, test")
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = defaultMaxOpenConns
	}
	if d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("config: database.max_idle_conns must not exceed max_open_conns")
	}
	if d.TimeZone == "" {
		d.TimeZone = defaultTimeZone
	}
	if d.ClientEncoding == "" {
		d.ClientEncoding = defaultClientEncoding
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	connectTimeout, err := parseDurationAllowEmpty(d.ConnectTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: database.connect_timeout: %w", err)
	}
	if connectTimeout == 0 {
		connectTimeout = defaultConnectTimeout
	}
	d.ConnectTimeout = connectTimeout

	return nil
}

func (a *AuthConfig) validateAndNormalize() error {
	if a.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret must be set")
	}

	ttl, err := parseDurationAllowEmpty(a.TokenTTLRaw)
	if err != nil {
		return fmt.Errorf("config: auth.token_ttl: %w", err)
	}
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	a.TokenTTL = ttl

	if a.BcryptCost < 0 {
		return fmt.Errorf("config: auth.bcrypt_cost must not be negative")
	}

	return nil
}

func (l *LogConfig) normalize() {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。ユーザー名とパスワードはエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
