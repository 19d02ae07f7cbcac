package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Guestbook GuestbookConfig `mapstructure:"guestbook"`
	Assets    []AssetRoute    `mapstructure:"assets"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
}

// PostgresConfig PostgreSQL 配置
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// MySQLConfig MySQL 配置
type MySQLConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	DBName    string `mapstructure:"dbname"`
	Charset   string `mapstructure:"charset"`
	ParseTime bool   `mapstructure:"parse_time"`
	Loc       string `mapstructure:"loc"`
}

// RedisConfig Redis 配置
// Enabled 为 false 时跳过连接，公开列表缓存降级为直读数据库
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// AdminConfig 管理员配置
// 凭据可通过环境变量 GUESTBOOK_ADMIN_USERNAME / GUESTBOOK_ADMIN_PASSWORD 覆盖
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Realm    string `mapstructure:"realm"`
}

// GuestbookConfig 留言板配置
type GuestbookConfig struct {
	SiteTitle          string   `mapstructure:"site_title"`
	EntriesLimit       int      `mapstructure:"entries_limit"`
	ModerationRequired bool     `mapstructure:"moderation_required"`
	BannedWords        []string `mapstructure:"banned_words"`
}

// AssetRoute 代理静态资源路由
// 路径精确匹配，内容从上游 URL 原样转发
type AssetRoute struct {
	Path         string `mapstructure:"path"`
	UpstreamURL  string `mapstructure:"upstream_url"`
	ContentType  string `mapstructure:"content_type"`
	CacheControl string `mapstructure:"cache_control"`
}

var global *Config

// Load 加载配置
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	return load(true)
}

// LoadFromFile 从指定文件加载配置
func LoadFromFile(path string) (*Config, error) {
	viper.Reset()
	viper.SetConfigFile(path)

	return load(false)
}

// Get 获取全局配置
func Get() *Config {
	return global
}

func load(allowMissing bool) (*Config, error) {
	// 支持环境变量覆盖
	viper.SetEnvPrefix("GUESTBOOK")
	viper.AutomaticEnv()

	// 敏感配置显式绑定环境变量
	viper.BindEnv("admin.username", "GUESTBOOK_ADMIN_USERNAME")
	viper.BindEnv("admin.password", "GUESTBOOK_ADMIN_PASSWORD")

	// 设置默认值
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// 配置文件不存在时使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || !allowMissing {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	global = &cfg
	return &cfg, nil
}

// setDefaults 设置默认值
func setDefaults() {
	// 服务器默认配置
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")

	// 数据库默认配置
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("database.postgres.host", "localhost")
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("database.postgres.user", "postgres")
	viper.SetDefault("database.postgres.password", "")
	viper.SetDefault("database.postgres.dbname", "guestbook")
	viper.SetDefault("database.postgres.sslmode", "disable")

	// Redis 默认配置
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.cache_ttl", "60s")

	// 管理员默认配置
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "admin")
	viper.SetDefault("admin.realm", "Guestbook Admin")

	// 留言板默认配置
	viper.SetDefault("guestbook.site_title", "Guestbook")
	viper.SetDefault("guestbook.entries_limit", 50)
	viper.SetDefault("guestbook.moderation_required", true)
	viper.SetDefault("guestbook.banned_words", []string{})
}
