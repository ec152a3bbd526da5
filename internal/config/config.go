package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Cache           Cache           `mapstructure:",squash"`
	RateLimit       RateLimit       `mapstructure:",squash"`
	WhatsApp        WhatsApp        `mapstructure:",squash"`
	Business        Business        `mapstructure:",squash"`
	SessionReminder SessionReminder `mapstructure:",squash"`
	TrialExpiration TrialExpiration `mapstructure:",squash"`
	BusinessRanking BusinessRanking `mapstructure:",squash"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Auth struct {
	SecretKey string        `mapstructure:"secret_key"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type Cache struct {
	Driver          string        `mapstructure:"cache_driver"`
	DefaultTTL      time.Duration `mapstructure:"cache_default_ttl"`
	MaxEntries      int           `mapstructure:"cache_max_entries"`
	OwnerDashTTL    time.Duration `mapstructure:"cache_owner_dashboard_ttl"`
	BusinessDashTTL time.Duration `mapstructure:"cache_business_dashboard_ttl"`
	RulesTTL        time.Duration `mapstructure:"cache_rules_ttl"`
	PermissionsTTL  time.Duration `mapstructure:"cache_permissions_ttl"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
}

type RateLimit struct {
	LoginRequestsPerSecond float64 `mapstructure:"login_rate_limit_rps"`
	LoginBurst             int     `mapstructure:"login_rate_limit_burst"`
}

type WhatsApp struct {
	BaseURL       string `mapstructure:"whatsapp_base_url"`
	Version       string `mapstructure:"whatsapp_version"`
	URL           string `mapstructure:"-"`
	PhoneNumberID string `mapstructure:"whatsapp_phone_number_id"`
	AccessToken   string `mapstructure:"whatsapp_access_token"`
	Enabled       bool   `mapstructure:"whatsapp_enabled"`
}

type Business struct {
	TrialDays int `mapstructure:"business_trial_days"`
}

type SessionReminder struct {
	CronSchedule string `mapstructure:"session_reminder_cron"`
	HoursAhead   int    `mapstructure:"session_reminder_hours_ahead"`
	Enabled      bool   `mapstructure:"session_reminder_enabled"`
}

type TrialExpiration struct {
	CronSchedule string `mapstructure:"trial_expiration_cron"`
	Enabled      bool   `mapstructure:"trial_expiration_enabled"`
}

type BusinessRanking struct {
	CronSchedule string `mapstructure:"business_ranking_cron"`
	Enabled      bool   `mapstructure:"business_ranking_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/beauty_control?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("TOKEN_TTL", "24h")

	viper.SetDefault("CACHE_DRIVER", "memory")
	viper.SetDefault("CACHE_DEFAULT_TTL", "5m")
	viper.SetDefault("CACHE_MAX_ENTRIES", 1000)
	viper.SetDefault("CACHE_OWNER_DASHBOARD_TTL", "5m")
	viper.SetDefault("CACHE_BUSINESS_DASHBOARD_TTL", "2m")
	viper.SetDefault("CACHE_RULES_TTL", "10m")
	viper.SetDefault("CACHE_PERMISSIONS_TTL", "10m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LOGIN_RATE_LIMIT_RPS", 1)
	viper.SetDefault("LOGIN_RATE_LIMIT_BURST", 5)

	viper.SetDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("WHATSAPP_VERSION", "v22.0")
	viper.SetDefault("WHATSAPP_PHONE_NUMBER_ID", "")
	viper.SetDefault("WHATSAPP_ACCESS_TOKEN", "") // ONLY LOCAL
	viper.SetDefault("WHATSAPP_ENABLED", false)

	viper.SetDefault("BUSINESS_TRIAL_DAYS", 30)

	viper.SetDefault("SESSION_REMINDER_CRON", "0 * * * *") // De hora em hora
	viper.SetDefault("SESSION_REMINDER_HOURS_AHEAD", 24)   // Sessões das próximas 24h
	viper.SetDefault("SESSION_REMINDER_ENABLED", false)

	viper.SetDefault("TRIAL_EXPIRATION_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("TRIAL_EXPIRATION_ENABLED", false)

	viper.SetDefault("BUSINESS_RANKING_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("BUSINESS_RANKING_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.WhatsApp.URL = fmt.Sprintf("%s/%s", config.WhatsApp.BaseURL, config.WhatsApp.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate confere as expressões cron e os limites numéricos antes de subir os agendadores
func (c *Config) Validate() error {
	schedules := map[string]string{
		"SESSION_REMINDER_CRON": c.SessionReminder.CronSchedule,
		"TRIAL_EXPIRATION_CRON": c.TrialExpiration.CronSchedule,
		"BUSINESS_RANKING_CRON": c.BusinessRanking.CronSchedule,
	}

	for name, expr := range schedules {
		if _, err := cron.ParseStandard(expr); err != nil {
			return errors.Wrapf(err, "expressão cron inválida em %s", name)
		}
	}

	if c.Auth.SecretKey == "" {
		return errors.New("SECRET_KEY não configurada")
	}

	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}

	if c.Business.TrialDays < 0 {
		return errors.New("BUSINESS_TRIAL_DAYS não pode ser negativo")
	}

	if c.SessionReminder.HoursAhead <= 0 {
		c.SessionReminder.HoursAhead = 24
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
